// Package board models a player's score sheet: four colored lanes and a miss
// counter.
package board

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/rules"
)

// ErrSkipLimitExceeded indicates a miss recorded on a board already at the cap.
var ErrSkipLimitExceeded = apperrors.New(apperrors.CodeSkipLimitExceeded, "skip limit exceeded")

// Board aggregates one lane per color plus the miss counter.
// Copying a Board yields an independent snapshot.
type Board struct {
	lanes       [rules.ColorCount]Lane
	skips       int
	skipCap     int
	skipPenalty int
}

// New returns an empty board for the rule variant r.
func New(r rules.Rules) *Board {
	b := &Board{
		skipCap:     r.SkipCap,
		skipPenalty: r.SkipPenalty,
	}
	for _, c := range Colors {
		b.lanes[c] = NewLane(c, r)
	}
	return b
}

// Lane returns a copy of the lane of color c.
func (b *Board) Lane(c Color) Lane {
	if !c.Valid() {
		return Lane{}
	}
	return b.lanes[c]
}

// Possible returns the selectable numbers of every lane.
func (b *Board) Possible() map[Color][]int {
	possible := make(map[Color][]int, len(Colors))
	for _, c := range Colors {
		possible[c] = b.lanes[c].Possible()
	}
	return possible
}

// Select strikes number on the lane of color.
func (b *Board) Select(color Color, number int) error {
	if !color.Valid() {
		return apperrors.Detail(ErrUnknownColor, color.String(), map[string]string{"Color": color.String()})
	}
	next, err := b.lanes[color].Select(number)
	if err != nil {
		return err
	}
	b.lanes[color] = next
	return nil
}

// Apply strikes a composite selection atomically: either every pick lands or
// the board is left untouched.
func (b *Board) Apply(picks []Pick) error {
	next := *b
	for _, p := range picks {
		if err := next.Select(p.Color, p.Number); err != nil {
			return err
		}
	}
	*b = next
	return nil
}

// IsSelectPossible reports whether picks can be applied. Picks sharing a color
// are checked as a sequence on that lane, in the given order; picks on
// different colors are checked independently on their own lanes.
func (b *Board) IsSelectPossible(picks []Pick) bool {
	groups, ok := groupByColor(picks)
	if !ok {
		return false
	}
	for _, c := range Colors {
		if !b.lanes[c].IsSelectPossible(groups[c]...) {
			return false
		}
	}
	return true
}

// WouldClose reports whether picks are legal and close at least one lane.
// Grouping follows IsSelectPossible.
func (b *Board) WouldClose(picks []Pick) bool {
	if len(picks) == 0 || !b.IsSelectPossible(picks) {
		return false
	}
	groups, _ := groupByColor(picks)
	for _, c := range Colors {
		if len(groups[c]) > 0 && b.lanes[c].WouldClose(groups[c]...) {
			return true
		}
	}
	return false
}

// IsDicePossible reports whether at least one rolled color option is
// selectable on its lane.
func (b *Board) IsDicePossible(options Options) bool {
	for c, numbers := range options {
		if !c.Valid() {
			continue
		}
		for _, n := range numbers {
			if b.lanes[c].IsSelectPossible(n) {
				return true
			}
		}
	}
	return false
}

// IsWhitePossible reports whether any lane accepts the white dice sum.
func (b *Board) IsWhitePossible(white int) bool {
	for _, c := range Colors {
		if b.lanes[c].IsSelectPossible(white) {
			return true
		}
	}
	return false
}

// Skip records a miss. A board at the cap rejects further misses; its lanes
// stay selectable.
func (b *Board) Skip() error {
	if b.skips >= b.skipCap {
		return apperrors.Detail(ErrSkipLimitExceeded,
			"board already has "+strconv.Itoa(b.skips)+" misses",
			map[string]string{"Cap": strconv.Itoa(b.skipCap)})
	}
	b.skips++
	return nil
}

// Skips returns the recorded misses.
func (b *Board) Skips() int {
	return b.skips
}

// ClosedBySkips reports whether the miss counter reached the cap.
func (b *Board) ClosedBySkips() bool {
	return b.skips >= b.skipCap
}

// ClosedColors returns the colors whose lane is closed, in board order.
func (b *Board) ClosedColors() []Color {
	var closed []Color
	for _, c := range Colors {
		if b.lanes[c].IsClosed() {
			closed = append(closed, c)
		}
	}
	return closed
}

// Score sums the lane scores minus the penalty for every miss.
func (b *Board) Score() int {
	score := 0
	for _, c := range Colors {
		score += b.lanes[c].Score()
	}
	return score - b.skips*b.skipPenalty
}

// String renders the lanes in board order, one per line.
func (b *Board) String() string {
	lines := make([]string, 0, len(Colors))
	for _, c := range Colors {
		lines = append(lines, b.lanes[c].String())
	}
	return strings.Join(lines, "\n")
}

func groupByColor(picks []Pick) ([rules.ColorCount][]int, bool) {
	var groups [rules.ColorCount][]int
	for _, p := range picks {
		if !p.Color.Valid() {
			return groups, false
		}
		groups[p.Color] = append(groups[p.Color], p.Number)
	}
	return groups, true
}
