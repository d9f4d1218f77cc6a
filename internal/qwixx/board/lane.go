package board

import (
	"fmt"
	"math/bits"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/qwixx/internal/platform/errors"
	"github.com/louisbranch/qwixx/internal/qwixx/rules"
)

// ErrIllegalSelection indicates a strike outside the lane's possible numbers.
var ErrIllegalSelection = apperrors.New(apperrors.CodeIllegalSelection, "illegal selection")

// Lane tracks the struck cells of one color.
//
// Cells are indexed in travel order: ascending lanes map a number n to
// n-LaneMin, descending lanes to LaneMax-n. The bonus cell sits after the last
// numbered cell regardless of direction. Lane is a value: copies never alias,
// so speculative selections run on a copy and are simply dropped.
type Lane struct {
	color    Color
	min      int
	max      int
	minClose int
	marks    uint64
}

// NewLane returns an empty lane of color for the rule variant r.
func NewLane(color Color, r rules.Rules) Lane {
	return Lane{
		color:    color,
		min:      r.LaneMin,
		max:      r.LaneMax,
		minClose: r.MinCloseSelections,
	}
}

// Color returns the lane color.
func (l Lane) Color() Color {
	return l.color
}

// Cells returns the count of numbered cells, excluding the bonus cell.
func (l Lane) Cells() int {
	return l.max - l.min + 1
}

// Numbers returns the numbered cells in travel order.
func (l Lane) Numbers() []int {
	numbers := make([]int, l.Cells())
	for i := range numbers {
		numbers[i] = l.numberAt(i)
	}
	return numbers
}

// Top returns the closing number, the last numbered cell in travel order.
func (l Lane) Top() int {
	return l.numberAt(l.Cells() - 1)
}

// Struck reports whether the cell of number n is struck.
func (l Lane) Struck(n int) bool {
	i, ok := l.index(n)
	return ok && l.marks&(1<<i) != 0
}

// Count returns the struck cells, the bonus cell included.
func (l Lane) Count() int {
	return bits.OnesCount64(l.marks)
}

// IsClosed reports whether the bonus cell is struck.
func (l Lane) IsClosed() bool {
	return l.marks&l.bonusBit() != 0
}

// CanClose reports whether enough numbered cells are struck for a strike on the
// closing number to close the lane.
func (l Lane) CanClose() bool {
	return bits.OnesCount64(l.marks&^l.bonusBit()) >= l.minClose
}

// Possible returns the numbers selectable right now, nearest to closing first.
// Only cells beyond the furthest strike qualify. The bonus cell never does.
func (l Lane) Possible() []int {
	possible := []int{}
	if l.IsClosed() {
		return possible
	}
	last := l.Cells() - 1
	furthest := bits.Len64(l.marks) - 1
	for i := last; i > furthest; i-- {
		possible = append(possible, l.numberAt(i))
	}
	return possible
}

// Select strikes n and returns the updated lane. Striking the closing number
// once the lane can close also strikes the bonus cell in the same update; before
// that it strikes the number alone. The receiver is unchanged.
func (l Lane) Select(n int) (Lane, error) {
	possible := l.Possible()
	if !slices.Contains(possible, n) {
		return l, apperrors.Detail(ErrIllegalSelection,
			fmt.Sprintf("number %d not in possible options: %v", n, possible),
			map[string]string{
				"Color":    l.color.String(),
				"Number":   strconv.Itoa(n),
				"Possible": fmt.Sprint(possible),
			})
	}
	closing := l.CanClose() && n == l.Top()
	i, _ := l.index(n)
	l.marks |= 1 << i
	if closing {
		l.marks |= l.bonusBit()
	}
	return l, nil
}

// WouldClose reports whether striking numbers in order is legal and leaves the
// lane closed. It never mutates the receiver.
func (l Lane) WouldClose(numbers ...int) bool {
	if len(numbers) == 0 {
		return false
	}
	next, err := l.Select(numbers[0])
	if err != nil {
		return false
	}
	if len(numbers) == 1 {
		return next.IsClosed()
	}
	return next.WouldClose(numbers[1:]...)
}

// IsSelectPossible reports whether striking numbers in order raises no error.
// An empty sequence is trivially possible.
func (l Lane) IsSelectPossible(numbers ...int) bool {
	if len(numbers) == 0 {
		return true
	}
	next, err := l.Select(numbers[0])
	if err != nil {
		return false
	}
	return next.IsSelectPossible(numbers[1:]...)
}

// Gap returns how many open cells striking n would pass over for good, or -1
// when n is not selectable.
func (l Lane) Gap(n int) int {
	if !slices.Contains(l.Possible(), n) {
		return -1
	}
	i, _ := l.index(n)
	furthest := bits.Len64(l.marks) - 1
	return i - furthest - 1
}

// Score returns the triangular number of struck cells: 1+2+...+k.
func (l Lane) Score() int {
	k := l.Count()
	return k * (k + 1) / 2
}

// String renders the lane as "R ( 02 | 03 | ... | 12 | 13 )" with struck cells
// shown as "><" and the bonus cell labelled by the number beyond the lane end.
func (l Lane) String() string {
	cells := make([]string, 0, l.Cells()+1)
	for i := 0; i <= l.Cells(); i++ {
		if l.marks&(1<<i) != 0 {
			cells = append(cells, "><")
			continue
		}
		cells = append(cells, fmt.Sprintf("%02d", l.numberAt(i)))
	}
	return l.color.Letter() + " ( " + strings.Join(cells, " | ") + " )"
}

func (l Lane) numberAt(i int) int {
	if l.color.Direction() == Descending {
		return l.max - i
	}
	return l.min + i
}

func (l Lane) index(n int) (int, bool) {
	if n < l.min || n > l.max {
		return 0, false
	}
	if l.color.Direction() == Descending {
		return l.max - n, true
	}
	return n - l.min, true
}

func (l Lane) bonusBit() uint64 {
	return 1 << l.Cells()
}
