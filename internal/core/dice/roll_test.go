package dice

import (
	"errors"
	"math/rand"
	"testing"
)

// sequenceSource replays fixed draws, cycling when exhausted.
type sequenceSource struct {
	draws []int
	next  int
}

func (s *sequenceSource) Intn(n int) int {
	v := s.draws[s.next%len(s.draws)] % n
	s.next++
	return v
}

func TestRollWithSource_Validation(t *testing.T) {
	tests := []struct {
		name    string
		specs   []Spec
		wantErr error
	}{
		{name: "single d6", specs: []Spec{{Sides: 6, Count: 1}}},
		{name: "2d6 + 4d6", specs: []Spec{{Sides: 6, Count: 2}, {Sides: 6, Count: 4}}},
		{name: "no dice", specs: nil, wantErr: ErrMissingDice},
		{name: "invalid sides", specs: []Spec{{Sides: 0, Count: 1}}, wantErr: ErrInvalidDiceSpec},
		{name: "invalid count", specs: []Spec{{Sides: 6, Count: 1}, {Sides: 6, Count: 0}}, wantErr: ErrInvalidDiceSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RollWithSource(rand.New(rand.NewSource(42)), tt.specs)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RollWithSource() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(result.Rolls) != len(tt.specs) {
				t.Fatalf("got %d rolls, want %d", len(result.Rolls), len(tt.specs))
			}

			total := 0
			for i, roll := range result.Rolls {
				if len(roll.Results) != tt.specs[i].Count {
					t.Errorf("roll %d has %d faces, want %d", i, len(roll.Results), tt.specs[i].Count)
				}
				sum := 0
				for _, face := range roll.Results {
					if face < 1 || face > roll.Sides {
						t.Errorf("roll %d face %d outside [1, %d]", i, face, roll.Sides)
					}
					sum += face
				}
				if roll.Total != sum {
					t.Errorf("roll %d total = %d, want %d", i, roll.Total, sum)
				}
				total += sum
			}
			if result.Total != total {
				t.Errorf("total = %d, want %d", result.Total, total)
			}
		})
	}
}

func TestRollWithSource_SameSeedSameFaces(t *testing.T) {
	specs := []Spec{{Sides: 6, Count: 2}, {Sides: 6, Count: 4}}
	first, err := RollWithSource(rand.New(rand.NewSource(12345)), specs)
	if err != nil {
		t.Fatalf("RollWithSource() error = %v", err)
	}
	second, err := RollWithSource(rand.New(rand.NewSource(12345)), specs)
	if err != nil {
		t.Fatalf("RollWithSource() error = %v", err)
	}

	a, b := first.Faces(), second.Faces()
	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("faces = %v / %v, want six each", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("face %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestRollWithSource_ExactFaces(t *testing.T) {
	src := &sequenceSource{draws: []int{3, 3, 0, 2, 4, 3}}
	result, err := RollWithSource(src, []Spec{{Sides: 6, Count: 2}, {Sides: 6, Count: 4}})
	if err != nil {
		t.Fatalf("RollWithSource() error = %v", err)
	}

	want := []int{4, 4, 1, 3, 5, 4}
	got := result.Faces()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("faces = %v, want %v", got, want)
		}
	}
	if result.Rolls[0].Total != 8 {
		t.Fatalf("white total = %d, want 8", result.Rolls[0].Total)
	}
}

func TestRollWithSource_ValidatesBeforeDrawing(t *testing.T) {
	src := &sequenceSource{draws: []int{0}}
	if _, err := RollWithSource(src, []Spec{{Sides: 6, Count: 1}, {Sides: -1, Count: 1}}); !errors.Is(err, ErrInvalidDiceSpec) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidDiceSpec)
	}
	if src.next != 0 {
		t.Fatalf("source drawn %d times before validation failed", src.next)
	}
}

func TestRollWithSource_RandSatisfiesSource(t *testing.T) {
	var src Source = rand.New(rand.NewSource(42))
	result, err := RollWithSource(src, []Spec{{Sides: 6, Count: 2}})
	if err != nil {
		t.Fatalf("RollWithSource() error = %v", err)
	}
	if len(result.Rolls[0].Results) != 2 {
		t.Errorf("Roll[0] got %d results, want 2", len(result.Rolls[0].Results))
	}
}
