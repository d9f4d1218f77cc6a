package config

import (
	"errors"
	"flag"
	"fmt"
	"testing"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "help", err: flag.ErrHelp, want: ExitOK},
		{name: "rules", err: fmt.Errorf("build: %w", apperrors.New(apperrors.CodeRulesInvalid, "bad")), want: ExitConfig},
		{name: "config", err: apperrors.Wrap(apperrors.CodeConfigInvalid, "bots", errors.New("seat 9")), want: ExitConfig},
		{name: "invariant", err: apperrors.New(apperrors.CodeInvariantViolation, "bad"), want: ExitFatal},
		{name: "plain", err: errors.New("boom"), want: ExitFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
