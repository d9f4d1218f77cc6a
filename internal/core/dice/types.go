package dice

import apperrors "github.com/louisbranch/qwixx/internal/platform/errors"

var (
	// ErrMissingDice indicates that no dice were provided.
	ErrMissingDice = apperrors.New(apperrors.CodeDiceMissing, "at least one die must be specified")
	// ErrInvalidDiceSpec indicates a die with non-positive sides or count.
	ErrInvalidDiceSpec = apperrors.New(apperrors.CodeDiceInvalidSpec, "dice must have positive sides and count")
)

// Source is the randomness provider for dice rolls. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Spec describes Count dice with Sides faces each.
type Spec struct {
	Sides int
	Count int
}

// Roll holds the faces rolled for one Spec.
type Roll struct {
	Sides   int
	Results []int
	Total   int
}

// Result holds every Roll of a request.
type Result struct {
	Rolls []Roll
	Total int
}

// Faces flattens the rolled faces of every Roll in request order.
func (r Result) Faces() []int {
	faces := make([]int, 0, len(r.Rolls))
	for _, roll := range r.Rolls {
		faces = append(faces, roll.Results...)
	}
	return faces
}
