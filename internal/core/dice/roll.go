package dice

// RollWithSource rolls every spec in order, drawing from src.
//
// All specs are validated before the first draw, so a rejected request
// leaves src untouched. Rolls in the result follow the order of specs.
// A caller that keeps one source for a whole match gets fresh values each
// round while the sequence stays reproducible from the source's seed.
func RollWithSource(src Source, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}
	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}
	}

	result := Result{Rolls: make([]Roll, len(specs))}
	for i, spec := range specs {
		roll := Roll{Sides: spec.Sides, Results: make([]int, spec.Count)}
		for j := range roll.Results {
			roll.Results[j] = src.Intn(spec.Sides) + 1
			roll.Total += roll.Results[j]
		}
		result.Rolls[i] = roll
		result.Total += roll.Total
	}
	return result, nil
}
