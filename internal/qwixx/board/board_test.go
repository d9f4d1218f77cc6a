package board

import (
	"errors"
	"slices"
	"testing"

	"github.com/louisbranch/qwixx/internal/qwixx/rules"
)

const emptyBoard = "R ( 02 | 03 | 04 | 05 | 06 | 07 | 08 | 09 | 10 | 11 | 12 | 13 )\n" +
	"Y ( 02 | 03 | 04 | 05 | 06 | 07 | 08 | 09 | 10 | 11 | 12 | 13 )\n" +
	"G ( 12 | 11 | 10 | 09 | 08 | 07 | 06 | 05 | 04 | 03 | 02 | 01 )\n" +
	"B ( 12 | 11 | 10 | 09 | 08 | 07 | 06 | 05 | 04 | 03 | 02 | 01 )"

const markedBoard = "R ( >< | 03 | 04 | 05 | 06 | 07 | 08 | 09 | 10 | >< | 12 | 13 )\n" +
	"Y ( 02 | 03 | 04 | 05 | 06 | >< | 08 | 09 | 10 | 11 | 12 | 13 )\n" +
	"G ( 12 | 11 | 10 | 09 | 08 | 07 | 06 | 05 | 04 | >< | 02 | 01 )\n" +
	"B ( >< | 11 | 10 | 09 | 08 | 07 | 06 | 05 | 04 | >< | 02 | 01 )"

func mustSelect(t *testing.T, b *Board, picks ...Pick) {
	t.Helper()
	for _, p := range picks {
		if err := b.Select(p.Color, p.Number); err != nil {
			t.Fatalf("select %s: %v", p, err)
		}
	}
}

func closeableRed(t *testing.T) *Board {
	t.Helper()
	b := New(rules.Default())
	mustSelect(t, b, Pick{Red, 2}, Pick{Red, 3}, Pick{Red, 4}, Pick{Red, 5}, Pick{Red, 6})
	return b
}

func TestBoardString(t *testing.T) {
	b := New(rules.Default())
	if got := b.String(); got != emptyBoard {
		t.Fatalf("String() =\n%s\nwant\n%s", got, emptyBoard)
	}

	mustSelect(t, b,
		Pick{Red, 2}, Pick{Blue, 12}, Pick{Red, 11},
		Pick{Blue, 3}, Pick{Green, 3}, Pick{Yellow, 7},
	)
	if got := b.String(); got != markedBoard {
		t.Fatalf("String() =\n%s\nwant\n%s", got, markedBoard)
	}
}

func TestBoardSelectTouchesOnlyItsLane(t *testing.T) {
	b := New(rules.Default())
	mustSelect(t, b, Pick{Red, 2})

	if got := b.Possible()[Red]; !slices.Equal(got, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}) {
		t.Fatalf("red possible = %v", got)
	}
	if got := b.Possible()[Yellow]; !slices.Equal(got, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2}) {
		t.Fatalf("yellow possible = %v", got)
	}

	if err := b.Select(Red, 2); !errors.Is(err, ErrIllegalSelection) {
		t.Fatalf("reselect error = %v, want %v", err, ErrIllegalSelection)
	}
	if err := b.Select(Color(9), 2); !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("unknown color error = %v, want %v", err, ErrUnknownColor)
	}
}

func TestBoardIsSelectPossible(t *testing.T) {
	tests := []struct {
		name  string
		picks []Pick
		want  bool
	}{
		{"single", []Pick{{Red, 5}}, true},
		{"same color ascending", []Pick{{Red, 3}, {Red, 5}}, true},
		{"same color reversed", []Pick{{Red, 5}, {Red, 3}}, false},
		{"same color same number", []Pick{{Red, 5}, {Red, 5}}, false},
		{"different colors independent", []Pick{{Red, 11}, {Yellow, 3}}, true},
		{"different colors one illegal", []Pick{{Red, 5}, {Blue, 2}}, false},
		{"closing number before the lane can close", []Pick{{Yellow, 12}}, true},
		{"early closing number ends the lane", []Pick{{Yellow, 12}, {Yellow, 11}}, false},
		{"unknown color", []Pick{{Color(7), 5}}, false},
		{"empty", nil, true},
	}
	b := New(rules.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsSelectPossible(tt.picks); got != tt.want {
				t.Fatalf("IsSelectPossible(%v) = %v, want %v", tt.picks, got, tt.want)
			}
		})
	}
}

func TestBoardWouldClose(t *testing.T) {
	b := closeableRed(t)
	tests := []struct {
		name  string
		picks []Pick
		want  bool
	}{
		{"closing number", []Pick{{Red, 12}}, true},
		{"other lane", []Pick{{Yellow, 12}}, false},
		{"white then color closes", []Pick{{Red, 11}, {Red, 12}}, true},
		{"close then strike more", []Pick{{Red, 12}, {Red, 11}}, false},
		{"mixed colors", []Pick{{Red, 12}, {Yellow, 5}}, true},
		{"mixed colors illegal", []Pick{{Red, 12}, {Yellow, 12}}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.WouldClose(tt.picks); got != tt.want {
				t.Fatalf("WouldClose(%v) = %v, want %v", tt.picks, got, tt.want)
			}
		})
	}
	if b.Lane(Red).IsClosed() {
		t.Fatal("WouldClose mutated the board")
	}
}

func TestBoardApplyIsAtomic(t *testing.T) {
	b := New(rules.Default())
	if err := b.Apply([]Pick{{Red, 3}, {Red, 2}}); !errors.Is(err, ErrIllegalSelection) {
		t.Fatalf("Apply error = %v, want %v", err, ErrIllegalSelection)
	}
	if b.String() != emptyBoard {
		t.Fatalf("failed Apply changed the board:\n%s", b)
	}

	if err := b.Apply([]Pick{{Red, 3}, {Green, 10}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !b.Lane(Red).Struck(3) || !b.Lane(Green).Struck(10) {
		t.Fatal("expected both picks applied")
	}
}

func TestBoardIsDicePossible(t *testing.T) {
	b := New(rules.Default())
	if !b.IsDicePossible(Options{Red: {5, 7}}) {
		t.Fatal("expected fresh board to accept options")
	}

	mustSelect(t, b, Pick{Red, 12}, Pick{Yellow, 12}, Pick{Green, 2}, Pick{Blue, 2})
	options := Options{Red: {5, 7}, Yellow: {6, 8}, Green: {9, 10}, Blue: {4, 12}}
	if b.IsDicePossible(options) {
		t.Fatal("expected no option to fit dead-ended lanes")
	}
	if b.IsWhitePossible(7) {
		t.Fatal("expected white sum to fit no lane")
	}
}

func TestBoardIsWhitePossible(t *testing.T) {
	b := New(rules.Default())
	if !b.IsWhitePossible(12) {
		t.Fatal("12 is the first cell of the descending lanes")
	}
	mustSelect(t, b, Pick{Green, 12}, Pick{Blue, 12})
	if b.IsWhitePossible(12) {
		t.Fatal("12 cannot be struck once the descending lanes moved past it")
	}
	if !b.IsWhitePossible(2) {
		t.Fatal("2 is the first cell of the ascending lanes")
	}
}

func TestBoardSkip(t *testing.T) {
	b := New(rules.Default())
	for i := 0; i < 4; i++ {
		if b.ClosedBySkips() {
			t.Fatalf("closed by skips after %d misses", i)
		}
		if err := b.Skip(); err != nil {
			t.Fatalf("skip %d: %v", i+1, err)
		}
	}
	if !b.ClosedBySkips() {
		t.Fatal("expected board closed by skips at the cap")
	}
	if err := b.Skip(); !errors.Is(err, ErrSkipLimitExceeded) {
		t.Fatalf("skip beyond cap error = %v, want %v", err, ErrSkipLimitExceeded)
	}
	if b.Skips() != 4 {
		t.Fatalf("skips = %d, want 4", b.Skips())
	}
	if err := b.Select(Red, 2); err != nil {
		t.Fatalf("capped board must stay selectable: %v", err)
	}
}

func TestBoardScoreAndClosedColors(t *testing.T) {
	b := closeableRed(t)
	if b.Score() != 15 {
		t.Fatalf("score = %d, want 15", b.Score())
	}
	if err := b.Skip(); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if err := b.Skip(); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if b.Score() != 5 {
		t.Fatalf("score with two misses = %d, want 5", b.Score())
	}

	if len(b.ClosedColors()) != 0 {
		t.Fatalf("closed colors = %v, want none", b.ClosedColors())
	}
	mustSelect(t, b, Pick{Red, 12}, Pick{Blue, 12})
	if got := b.ClosedColors(); !slices.Equal(got, []Color{Red}) {
		t.Fatalf("closed colors = %v, want [red]", got)
	}
	// 7 red cells (28) + 1 blue (1) - 10
	if b.Score() != 19 {
		t.Fatalf("score = %d, want 19", b.Score())
	}
}

func TestBoardCopyIsSnapshot(t *testing.T) {
	b := New(rules.Default())
	snapshot := *b
	mustSelect(t, b, Pick{Red, 2})
	if snapshot.Lane(Red).Struck(2) {
		t.Fatal("snapshot aliased the live board")
	}
}
