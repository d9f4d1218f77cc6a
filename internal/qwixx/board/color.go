package board

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
)

// ErrUnknownColor indicates a color outside the four lanes.
var ErrUnknownColor = apperrors.New(apperrors.CodeUnknownColor, "unknown color")

// Direction is the order a lane is traversed in.
type Direction int8

const (
	Ascending Direction = iota
	Descending
)

// Step returns +1 for ascending lanes and -1 for descending lanes.
func (d Direction) Step() int {
	if d == Descending {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Color identifies one lane on every board.
type Color uint8

const (
	Red Color = iota
	Yellow
	Green
	Blue
	colorCount
)

// Colors lists the lanes in board order.
var Colors = [...]Color{Red, Yellow, Green, Blue}

// Valid reports whether c is one of the four lane colors.
func (c Color) Valid() bool {
	return c < colorCount
}

// Direction returns the fixed traversal direction: red and yellow ascend,
// green and blue descend.
func (c Color) Direction() Direction {
	switch c {
	case Green, Blue:
		return Descending
	default:
		return Ascending
	}
}

// Letter returns the single-letter name used in rendering and choice input.
func (c Color) Letter() string {
	switch c {
	case Red:
		return "R"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	default:
		return "?"
	}
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// ParseColor accepts a color letter or name in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "y", "yellow":
		return Yellow, nil
	case "g", "green":
		return Green, nil
	case "b", "blue":
		return Blue, nil
	}
	return 0, apperrors.Detail(ErrUnknownColor, s, map[string]string{"Color": s})
}

// Pick is one strike request: a number on the lane of a color.
type Pick struct {
	Color  Color
	Number int
}

func (p Pick) String() string {
	return fmt.Sprintf("%s%02d", p.Color.Letter(), p.Number)
}

// Options maps each color to the two numbers obtainable by adding its die to
// either white die.
type Options map[Color][2]int
