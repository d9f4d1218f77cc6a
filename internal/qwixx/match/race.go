package match

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
	"github.com/louisbranch/qwixx/internal/qwixx/dice"
)

// closingRace offers every seat a last chance to close a lane that another
// seat closes with the white sum this round. Every color closeable this way
// gets its own offers, in board order. A seat answers each color at most once
// and receives no further offers after accepting one.
func (m *Match) closingRace(ctx context.Context, faces dice.Faces, turns []*Turn) error {
	white := faces.White()
	if white != m.rules.LaneMin && white != m.rules.LaneMax {
		return nil
	}
	colors, err := m.closingColors(white, turns)
	if err != nil {
		return err
	}
	span := trace.SpanFromContext(ctx)
	accepted := make(map[int]bool, len(turns))
	for _, c := range colors {
		for _, t := range turns {
			if accepted[t.Seat] {
				continue
			}
			if current, ok := t.Choice.WhiteSumColor(); ok && current == c {
				continue
			}
			proposed, picks, ok := m.proposal(t, c, faces)
			if !ok {
				continue
			}
			switched, err := m.players[t.Seat-1].Switch(ctx, Offer{
				Round:    m.round,
				Seat:     t.Seat,
				Color:    c,
				White:    white,
				Current:  t.Choice,
				Proposed: proposed,
				Board:    *m.boards[t.Seat-1],
			})
			if err != nil {
				return fmt.Errorf("player %d switch: %w", t.Seat, err)
			}
			span.AddEvent("switch offered", trace.WithAttributes(
				attribute.Int("qwixx.seat", t.Seat),
				attribute.String("qwixx.color", c.String()),
				attribute.Bool("qwixx.accepted", switched),
			))
			m.log.WithFields(logrus.Fields{
				"round":    m.round,
				"seat":     t.Seat,
				"color":    c.String(),
				"accepted": switched,
			}).Info("closing switch answered")
			if switched {
				t.Choice, t.Picks, t.Switched = proposed, picks, true
				accepted[t.Seat] = true
			}
		}
	}
	return nil
}

// closingColors returns, in board order, the lanes some seat closes with its
// white-sum pick this round.
func (m *Match) closingColors(white int, turns []*Turn) ([]board.Color, error) {
	var closing [len(board.Colors)]bool
	for _, t := range turns {
		c, ok := t.Choice.WhiteSumColor()
		if !ok {
			continue
		}
		lane := m.boards[t.Seat-1].Lane(c)
		if !lane.WouldClose(white) {
			continue
		}
		if lane.Top() != white {
			reason := fmt.Sprintf("white sum %d closes %s whose closing number is %d", white, c, lane.Top())
			return nil, apperrors.Detail(ErrInvariantViolation, reason,
				map[string]string{"Seat": seatString(t.Seat), "Color": c.String(), "Reason": reason})
		}
		closing[c] = true
	}
	var colors []board.Color
	for _, c := range board.Colors {
		if closing[c] {
			colors = append(colors, c)
		}
	}
	return colors, nil
}

// proposal builds the switched choice for t closing c with the white sum.
// The active seat keeps its colored strike when the board still allows it; the
// kept strike goes first so the closing strike is the lane's last.
func (m *Match) proposal(t *Turn, c board.Color, faces dice.Faces) (dice.Choice, []board.Pick, bool) {
	b := m.boards[t.Seat-1]
	white := faces.White()
	if !b.Lane(c).WouldClose(white) {
		return dice.Choice{}, nil, false
	}
	closing := dice.Token{Kind: dice.WhiteSum, Color: c}
	closingPick := board.Pick{Color: c, Number: white}
	if t.Mode == dice.ModeActing {
		if colored, ok := t.Choice.ColorToken(); ok {
			kept := []board.Pick{{Color: colored.Color, Number: colored.Number(faces)}, closingPick}
			if b.IsSelectPossible(kept) {
				return dice.Choice{Tokens: []dice.Token{closing, colored}}, kept, true
			}
		}
	}
	alone := []board.Pick{closingPick}
	if !b.IsSelectPossible(alone) {
		return dice.Choice{}, nil, false
	}
	return dice.Choice{Tokens: []dice.Token{closing}}, alone, true
}
