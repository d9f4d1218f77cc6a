package match

import (
	"context"
	"strconv"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/board"
	"github.com/louisbranch/qwixx/internal/qwixx/dice"
)

// Player answers the match on behalf of one seat. Calls are synchronous; a
// player waiting on a human simply blocks until the answer is known.
type Player interface {
	// Choose returns the raw choice text for p. Empty text means skip.
	Choose(ctx context.Context, p Prompt) (string, error)
	// Switch answers a closing-race offer. The answer is final.
	Switch(ctx context.Context, o Offer) (bool, error)
}

// Prompt is what a seat sees when asked for a choice.
type Prompt struct {
	Round int
	Seat  int
	Mode  dice.Mode
	Faces dice.Faces
	// Board is a snapshot of the seat's board; changing it has no effect.
	Board board.Board
	// Attempt counts asks for this answer, starting at 1.
	Attempt int
	// Rejected explains why the previous answer was refused.
	Rejected error
}

// Check parses text and validates it against the prompt's board, the same
// way the match will.
func (p Prompt) Check(text string) (dice.Choice, []board.Pick, error) {
	return resolve(&p.Board, p.Faces, p.Mode, text)
}

// Offer is a closing-race proposal: replace Current with Proposed so the seat
// closes Color with the white dice too.
type Offer struct {
	Round    int
	Seat     int
	Color    board.Color
	White    int
	Current  dice.Choice
	Proposed dice.Choice
	Board    board.Board
}

func resolve(b *board.Board, faces dice.Faces, mode dice.Mode, text string) (dice.Choice, []board.Pick, error) {
	choice, err := dice.Parse(text, mode)
	if err != nil {
		return dice.Choice{}, nil, err
	}
	picks, err := choice.Picks(faces)
	if err != nil {
		return dice.Choice{}, nil, err
	}
	if !b.IsSelectPossible(picks) {
		return dice.Choice{}, nil, apperrors.Detail(board.ErrIllegalSelection,
			"selection "+choice.String()+" can not be applied to board",
			map[string]string{"Input": text, "Picks": picksString(picks)})
	}
	return choice, picks, nil
}

func picksString(picks []board.Pick) string {
	s := ""
	for i, p := range picks {
		if i > 0 {
			s += " "
		}
		s += p.String()
	}
	return s
}

func seatString(seat int) string {
	return strconv.Itoa(seat)
}
