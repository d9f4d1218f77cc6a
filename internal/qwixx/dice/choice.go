package dice

import (
	"strings"
	"unicode"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
)

// ErrParse indicates dice-choice text outside the grammar or the mode.
var ErrParse = apperrors.New(apperrors.CodeChoiceParse, "invalid dice choice")

// Mode tells the parser who is choosing.
type Mode int

const (
	// ModeActing is the active player: white sum, then optionally one white
	// die with a color die.
	ModeActing Mode = iota
	// ModeReactive is any other player: the white sum only.
	ModeReactive
)

func (m Mode) String() string {
	if m == ModeReactive {
		return "reactive"
	}
	return "acting"
}

// Kind is the dice combination a token stands for.
type Kind int

const (
	// WhiteSum strikes both white dice added together ("w").
	WhiteSum Kind = iota
	// WhiteOne strikes the first white die plus the color die ("1").
	WhiteOne
	// WhiteTwo strikes the second white die plus the color die ("2").
	WhiteTwo
)

// Token is one lexed element of a choice, e.g. "wr" or "2g".
type Token struct {
	Kind  Kind
	Color board.Color
}

func (t Token) String() string {
	prefix := "w"
	switch t.Kind {
	case WhiteOne:
		prefix = "1"
	case WhiteTwo:
		prefix = "2"
	}
	return prefix + strings.ToLower(t.Color.Letter())
}

// Number resolves the token against rolled faces.
func (t Token) Number(f Faces) int {
	switch t.Kind {
	case WhiteOne:
		return f.White1 + f.Die(t.Color)
	case WhiteTwo:
		return f.White2 + f.Die(t.Color)
	default:
		return f.White()
	}
}

// Choice is a parsed selection. An empty choice means skip.
type Choice struct {
	Tokens []Token
}

// Skip reports whether the choice takes nothing.
func (c Choice) Skip() bool {
	return len(c.Tokens) == 0
}

// WhiteSumColor returns the lane the white sum goes to, if any.
func (c Choice) WhiteSumColor() (board.Color, bool) {
	for _, t := range c.Tokens {
		if t.Kind == WhiteSum {
			return t.Color, true
		}
	}
	return 0, false
}

// ColorToken returns the white-plus-color token, if any.
func (c Choice) ColorToken() (Token, bool) {
	for _, t := range c.Tokens {
		if t.Kind != WhiteSum {
			return t, true
		}
	}
	return Token{}, false
}

// Picks resolves every token into a lane strike, in order.
func (c Choice) Picks(f Faces) ([]board.Pick, error) {
	if !f.Rolled() {
		return nil, ErrNotRolled
	}
	picks := make([]board.Pick, 0, len(c.Tokens))
	for _, t := range c.Tokens {
		picks = append(picks, board.Pick{Color: t.Color, Number: t.Number(f)})
	}
	return picks, nil
}

func (c Choice) String() string {
	parts := make([]string, len(c.Tokens))
	for i, t := range c.Tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Parse reads a dice choice.
//
// Grammar (case-insensitive, tokens separated by spaces, commas or '+'):
//
//	choice   = "" | white [ colored ] | colored     (acting)
//	choice   = "" | white                          (reactive)
//	white    = "w" color
//	colored  = ( "1" | "2" ) color
//	color    = "r" | "y" | "g" | "b"
func Parse(text string, mode Mode) (Choice, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '+'
	})
	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		tok, ok := lex(field)
		if !ok {
			return Choice{}, parseError(text, "unknown token "+field)
		}
		tokens = append(tokens, tok)
	}
	if reason := violation(tokens, mode); reason != "" {
		return Choice{}, parseError(text, reason)
	}
	return Choice{Tokens: tokens}, nil
}

func lex(field string) (Token, bool) {
	field = strings.ToLower(field)
	if len(field) != 2 {
		return Token{}, false
	}
	var kind Kind
	switch field[0] {
	case 'w':
		kind = WhiteSum
	case '1':
		kind = WhiteOne
	case '2':
		kind = WhiteTwo
	default:
		return Token{}, false
	}
	color, err := board.ParseColor(field[1:])
	if err != nil {
		return Token{}, false
	}
	return Token{Kind: kind, Color: color}, true
}

// violation returns why tokens break the grammar for mode, or "" when they fit.
func violation(tokens []Token, mode Mode) string {
	if mode == ModeReactive {
		for _, t := range tokens {
			if t.Kind != WhiteSum {
				return "only the white dice may be used"
			}
		}
		if len(tokens) > 1 {
			return "the white dice may be used once"
		}
		return ""
	}

	if len(tokens) > 2 {
		return "at most one white and one colored selection"
	}
	whites, colored := 0, 0
	for _, t := range tokens {
		if t.Kind == WhiteSum {
			if colored > 0 {
				return "the white dice come before the colored die"
			}
			whites++
			continue
		}
		colored++
	}
	switch {
	case whites > 1:
		return "the white dice may be used once"
	case colored > 1:
		return "a white die was already consumed"
	}
	return ""
}

func parseError(input, reason string) error {
	return apperrors.Detail(ErrParse, reason, map[string]string{
		"Input":  input,
		"Reason": reason,
	})
}
