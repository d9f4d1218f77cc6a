package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeIllegalSelection, "illegal selection")
	detailed := Detail(sentinel, "number 3 not possible", map[string]string{"Number": "3"})

	if !errors.Is(detailed, sentinel) {
		t.Fatal("expected detailed error to match sentinel")
	}
	if errors.Is(detailed, New(CodeChoiceParse, "parse")) {
		t.Fatal("expected code mismatch to fail")
	}
	if detailed.Error() != "illegal selection: number 3 not possible" {
		t.Fatalf("message = %q", detailed.Error())
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeInvariantViolation, "round aborted", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "round aborted: boom" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestCodeOfAndMetadataOf(t *testing.T) {
	inner := WithMetadata(CodeChoiceParse, "bad token", map[string]string{"Input": "x"})
	wrapped := fmt.Errorf("prompt: %w", inner)

	if got := CodeOf(wrapped); got != CodeChoiceParse {
		t.Fatalf("CodeOf = %s, want %s", got, CodeChoiceParse)
	}
	if got := MetadataOf(wrapped)["Input"]; got != "x" {
		t.Fatalf("metadata Input = %q, want x", got)
	}
	if got := CodeOf(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf plain = %s, want %s", got, CodeUnknown)
	}
}

func TestFatalClassification(t *testing.T) {
	tests := []struct {
		code  Code
		fatal bool
	}{
		{CodeIllegalSelection, false},
		{CodeChoiceParse, false},
		{CodeRulesInvalid, false},
		{CodeSkipLimitExceeded, true},
		{CodeInvariantViolation, true},
		{CodeUnknown, true},
	}
	for _, tt := range tests {
		if got := tt.code.Fatal(); got != tt.fatal {
			t.Errorf("%s.Fatal() = %v, want %v", tt.code, got, tt.fatal)
		}
	}
	if IsFatal(nil) {
		t.Fatal("nil error must not be fatal")
	}
	if !IsFatal(New(CodeSkipLimitExceeded, "cap")) {
		t.Fatal("expected skip limit error to be fatal")
	}
}
