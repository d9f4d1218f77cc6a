package match

import (
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/qwixx/internal/qwixx/board"
	"github.com/louisbranch/qwixx/internal/qwixx/dice"
)

// Turn is what one seat did in a round.
type Turn struct {
	Seat   int
	Mode   dice.Mode
	Choice dice.Choice
	// Picks are the strikes applied, in application order. After a closing
	// switch the closing strike comes last even though Choice lists it first.
	Picks []board.Pick
	// Forced is set when the active seat had nothing legal to take.
	Forced bool
	// Missed is set when the active seat recorded a miss.
	Missed   bool
	Switched bool
}

// RoundReport summarizes a played round.
type RoundReport struct {
	Round  int
	Active int
	Faces  dice.Faces
	Turns  []Turn
	// Closed lists the lanes closed for the first time this round.
	Closed []board.Color
}

// Ranking orders final standings by score.
type Ranking int

const (
	// RankAscending lists the lowest score first.
	RankAscending Ranking = iota
	// RankDescending lists the highest score first.
	RankDescending
)

func (r Ranking) String() string {
	if r == RankDescending {
		return "desc"
	}
	return "asc"
}

// ParseRanking reads "asc" or "desc" (or their long forms).
func ParseRanking(s string) (Ranking, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return RankAscending, nil
	case "desc", "descending":
		return RankDescending, nil
	default:
		return RankAscending, fmt.Errorf("unknown ranking %q", s)
	}
}

// Standing is one seat's final result.
type Standing struct {
	Seat   int
	Score  int
	Skips  int
	Closed []board.Color
}

// Standings scores every board and sorts them by the match ranking. Ties keep
// seat order.
func (m *Match) Standings() []Standing {
	standings := make([]Standing, len(m.boards))
	for i, b := range m.boards {
		standings[i] = Standing{
			Seat:   i + 1,
			Score:  b.Score(),
			Skips:  b.Skips(),
			Closed: b.ClosedColors(),
		}
	}
	slices.SortStableFunc(standings, func(a, b Standing) int {
		if m.ranking == RankDescending {
			return b.Score - a.Score
		}
		return a.Score - b.Score
	})
	return standings
}
