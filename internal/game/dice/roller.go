package dice

import "sort"

// Roll evaluates expr with src.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count, or expr.KeepHighest when set.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}

	kept := rolled
	if expr.KeepHighest > 0 {
		sort.Sort(sort.Reverse(sort.IntSlice(rolled)))
		kept = rolled[:expr.KeepHighest]
	}

	return RollResult{
		Expression: expr.String(),
		Dice:       kept,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses expr and rolls it.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// Percentile draws a d100.
//
// Postcondition: 1 <= result <= 100.
func Percentile(src Source) int {
	return src.Intn(100) + 1
}

// Coinflip reports true with probability 1/2.
func Coinflip(src Source) bool {
	return src.Intn(2) == 1
}

// Pick returns a uniformly random element of items.
//
// Precondition: len(items) > 0.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
