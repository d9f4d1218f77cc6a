// Package rules holds the rule-variant constants a match is built with.
//
// Every count the lanes, boards and match rely on lives on Rules so tests and
// alternate variants inject their own values instead of sharing globals.
package rules

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
)

// MaxLaneCells bounds the numbered cells of a lane; lanes track strikes in a
// 64-bit mask with one bit reserved.
const MaxLaneCells = 62

// ColorCount is the number of lanes on every board.
const ColorCount = 4

// ErrInvalidRules indicates a rule variant that cannot produce a playable game.
var ErrInvalidRules = apperrors.New(apperrors.CodeRulesInvalid, "invalid rules")

// Rules configures lane ranges, closing thresholds, miss limits and match size.
type Rules struct {
	LaneMin            int `env:"LANE_MIN" envDefault:"2"`
	LaneMax            int `env:"LANE_MAX" envDefault:"12"`
	MinCloseSelections int `env:"MIN_CLOSE_SELECTIONS" envDefault:"5"`
	SkipCap            int `env:"SKIP_CAP" envDefault:"4"`
	SkipPenalty        int `env:"SKIP_PENALTY" envDefault:"5"`
	ClosedLanesToEnd   int `env:"CLOSED_LANES_TO_END" envDefault:"2"`
	MinPlayers         int `env:"MIN_PLAYERS" envDefault:"2"`
	MaxPlayers         int `env:"MAX_PLAYERS" envDefault:"4"`
	// MaxPromptAttempts bounds re-prompts for one answer; 0 means unlimited.
	MaxPromptAttempts int `env:"MAX_PROMPT_ATTEMPTS" envDefault:"10"`
}

// Default returns the canonical rule variant (lanes 2..12).
func Default() Rules {
	return Rules{
		LaneMin:            2,
		LaneMax:            12,
		MinCloseSelections: 5,
		SkipCap:            4,
		SkipPenalty:        5,
		ClosedLanesToEnd:   2,
		MinPlayers:         2,
		MaxPlayers:         4,
		MaxPromptAttempts:  10,
	}
}

// Cells returns the count of numbered cells on each lane.
func (r Rules) Cells() int {
	return r.LaneMax - r.LaneMin + 1
}

// Validate rejects variants that cannot be played.
func (r Rules) Validate() error {
	switch {
	case r.LaneMin < 1:
		return invalid("lane minimum must be at least 1")
	case r.LaneMax <= r.LaneMin:
		return invalid("lane maximum must exceed lane minimum")
	case r.Cells() > MaxLaneCells:
		return invalid("lane has more than " + strconv.Itoa(MaxLaneCells) + " cells")
	case r.MinCloseSelections < 1 || r.MinCloseSelections >= r.Cells():
		return invalid(fmt.Sprintf("minimum close selections must be in [1, %d)", r.Cells()))
	case r.SkipCap < 1:
		return invalid("skip cap must be at least 1")
	case r.SkipPenalty < 0:
		return invalid("skip penalty must not be negative")
	case r.ClosedLanesToEnd < 1 || r.ClosedLanesToEnd > ColorCount:
		return invalid(fmt.Sprintf("closed lanes to end must be in [1, %d]", ColorCount))
	case r.MinPlayers < 1 || r.MaxPlayers < r.MinPlayers:
		return invalid("player bounds are inconsistent")
	case r.MaxPromptAttempts < 0:
		return invalid("max prompt attempts must not be negative")
	}
	return nil
}

func invalid(reason string) error {
	return apperrors.Detail(ErrInvalidRules, reason, map[string]string{"Reason": reason})
}
