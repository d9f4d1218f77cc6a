// Package dice holds the six shared dice of a round: two white dice and one
// die per lane color.
package dice

import (
	"fmt"
	"strings"

	coredice "github.com/louisbranch/qwixx/internal/core/dice"
	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
	"github.com/louisbranch/qwixx/internal/qwixx/rules"
)

// ErrNotRolled indicates dice read before the first roll.
var ErrNotRolled = apperrors.New(apperrors.CodeDiceNotRolled, "dice must be rolled at least once")

// Sides is the face count of every die.
const Sides = 6

// faceOrder is the canonical column order: white1, white2, red, yellow, blue, green.
var faceOrder = [...]board.Color{board.Red, board.Yellow, board.Blue, board.Green}

// Faces is the rolled state of one round. The zero value is unrolled.
type Faces struct {
	White1 int
	White2 int
	Colors [rules.ColorCount]int
}

// Rolled reports whether the faces come from a roll.
func (f Faces) Rolled() bool {
	return f.White1 > 0
}

// White returns the sum of both white dice.
func (f Faces) White() int {
	return f.White1 + f.White2
}

// Die returns the face of the color die c.
func (f Faces) Die(c board.Color) int {
	if !c.Valid() {
		return 0
	}
	return f.Colors[c]
}

// Options returns, per color, the die added to the first and to the second white die.
func (f Faces) Options() board.Options {
	options := make(board.Options, len(board.Colors))
	for _, c := range board.Colors {
		options[c] = [2]int{f.Colors[c] + f.White1, f.White2 + f.Colors[c]}
	}
	return options
}

// Render returns the fixed-width table of faces in canonical column order.
func (f Faces) Render() (string, error) {
	if !f.Rolled() {
		return "", ErrNotRolled
	}
	values := []int{f.White1, f.White2}
	for _, c := range faceOrder {
		values = append(values, f.Colors[c])
	}
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmt.Sprintf("%02d", v)
	}
	return "w1\tw2\tr\ty\tb\tg\n" + strings.Join(cells, "\t"), nil
}

// Dice rolls Faces from a random source. Each roll fully replaces the
// previous faces.
type Dice struct {
	src   coredice.Source
	faces Faces
}

// New returns unrolled dice drawing from src.
func New(src coredice.Source) *Dice {
	return &Dice{src: src}
}

// Roll draws six independent faces in [1, 6].
func (d *Dice) Roll() error {
	result, err := coredice.RollWithSource(d.src, []coredice.Spec{
		{Sides: Sides, Count: 2},
		{Sides: Sides, Count: len(faceOrder)},
	})
	if err != nil {
		return fmt.Errorf("roll dice: %w", err)
	}
	faces := result.Faces()
	next := Faces{White1: faces[0], White2: faces[1]}
	for i, c := range faceOrder {
		next.Colors[c] = faces[2+i]
	}
	d.faces = next
	return nil
}

// Faces returns a snapshot of the current roll.
func (d *Dice) Faces() Faces {
	return d.faces
}

// White returns the white dice sum of the current roll.
func (d *Dice) White() int {
	return d.faces.White()
}

// Options returns the color options of the current roll.
func (d *Dice) Options() board.Options {
	return d.faces.Options()
}

// String renders the current roll; see Faces.Render.
func (d *Dice) String() string {
	s, err := d.faces.Render()
	if err != nil {
		return err.Error()
	}
	return s
}

// ParseChoice parses text in mode and resolves it against the current roll.
func (d *Dice) ParseChoice(text string, mode Mode) (Choice, []board.Pick, error) {
	choice, err := Parse(text, mode)
	if err != nil {
		return Choice{}, nil, err
	}
	picks, err := choice.Picks(d.faces)
	if err != nil {
		return Choice{}, nil, err
	}
	return choice, picks, nil
}
