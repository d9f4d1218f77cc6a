package dice

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mode   Mode
		want   string
		reason string
	}{
		{name: "empty acting is skip", text: "", mode: ModeActing, want: ""},
		{name: "blank reactive is skip", text: "   ", mode: ModeReactive, want: ""},
		{name: "white sum", text: "wr", mode: ModeActing, want: "wr"},
		{name: "white then color", text: "WY 1b", mode: ModeActing, want: "wy 1b"},
		{name: "plus separator", text: "wg+2g", mode: ModeActing, want: "wg 2g"},
		{name: "comma separator", text: "wb,1r", mode: ModeActing, want: "wb 1r"},
		{name: "color only", text: "2y", mode: ModeActing, want: "2y"},
		{name: "reactive white", text: "wg", mode: ModeReactive, want: "wg"},
		{name: "unknown token", text: "xr", mode: ModeActing, reason: "unknown token xr"},
		{name: "unknown color", text: "wp", mode: ModeActing, reason: "unknown token wp"},
		{name: "long token", text: "wrr", mode: ModeActing, reason: "unknown token wrr"},
		{name: "reactive color", text: "1r", mode: ModeReactive, reason: "only the white dice may be used"},
		{name: "reactive twice", text: "wr wy", mode: ModeReactive, reason: "the white dice may be used once"},
		{name: "color before white", text: "1r wy", mode: ModeActing, reason: "the white dice come before the colored die"},
		{name: "white twice", text: "wr wy", mode: ModeActing, reason: "the white dice may be used once"},
		{name: "white die reused", text: "1r 1b", mode: ModeActing, reason: "a white die was already consumed"},
		{name: "both whites with colors", text: "1r 2r", mode: ModeActing, reason: "a white die was already consumed"},
		{name: "too many", text: "wr 1r 2g", mode: ModeActing, reason: "at most one white and one colored selection"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choice, err := Parse(tt.text, tt.mode)
			if tt.reason != "" {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.text, err, ErrParse)
				}
				meta := apperrors.MetadataOf(err)
				if meta["Reason"] != tt.reason || meta["Input"] != tt.text {
					t.Fatalf("metadata = %v, want reason %q", meta, tt.reason)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}
			if got := choice.String(); got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if choice.Skip() != (tt.want == "") {
				t.Fatalf("Skip() = %v for %q", choice.Skip(), tt.text)
			}
		})
	}
}

func TestTokenNumber(t *testing.T) {
	f := Faces{White1: 2, White2: 5}
	f.Colors[board.Blue] = 6
	tests := []struct {
		tok  Token
		want int
	}{
		{Token{Kind: WhiteSum, Color: board.Blue}, 7},
		{Token{Kind: WhiteOne, Color: board.Blue}, 8},
		{Token{Kind: WhiteTwo, Color: board.Blue}, 11},
	}
	for _, tt := range tests {
		if got := tt.tok.Number(f); got != tt.want {
			t.Errorf("%s.Number() = %d, want %d", tt.tok, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeActing.String() != "acting" || ModeReactive.String() != "reactive" {
		t.Fatalf("mode strings = %q/%q", ModeActing, ModeReactive)
	}
}
