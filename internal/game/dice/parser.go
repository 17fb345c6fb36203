package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression.
//
// Invariant: 1 <= Count <= MaxDice, 2 <= Sides <= MaxSides,
// 0 <= KeepHighest < Count.
type Expression struct {
	Raw         string // input as given
	Count       int    // number of dice
	Sides       int    // faces per die
	Modifier    int    // flat modifier (may be negative)
	KeepHighest int    // if > 0, keep only the N highest dice (e.g. 4d6kh3)
}

const (
	// MaxDice caps the die count of one expression.
	MaxDice = 100
	// MaxSides caps the faces per die.
	MaxSides = 1000
)

var exprPattern = regexp.MustCompile(`^(\d*)d(\d+)(?:kh(\d+))?([+-]\d+)?$`)

// Parse parses "d20", "2d6", "2d6+3", "4d8-2" or "4d6kh3" (case-insensitive,
// surrounding spaces ignored).
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(expr), " ", ""))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expression{}, fmt.Errorf("dice: malformed expression %q", expr)
	}

	e := Expression{Raw: expr, Count: 1}
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		if n < 1 || n > MaxDice {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be 1-%d", expr, MaxDice)
		}
		e.Count = n
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sides < 2 || sides > MaxSides {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be 2-%d", expr, MaxSides)
	}
	e.Sides = sides

	if m[3] != "" {
		kh, err := strconv.Atoi(m[3])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid kh value in %q: %w", expr, err)
		}
		if kh <= 0 || kh >= e.Count {
			return Expression{}, fmt.Errorf("dice: kh value %d must be > 0 and < count %d in %q", kh, e.Count, expr)
		}
		e.KeepHighest = kh
	}

	if m[4] != "" {
		mod, err := strconv.Atoi(m[4])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
		e.Modifier = mod
	}
	return e, nil
}

// String returns the canonical form, e.g. "2d6+3" or "4d6kh3".
func (e Expression) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", e.Count, e.Sides)
	if e.KeepHighest > 0 {
		fmt.Fprintf(&b, "kh%d", e.KeepHighest)
	}
	if e.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", e.Modifier)
	}
	return b.String()
}

// MustParse parses expr and panics on error. Intended for literals.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
