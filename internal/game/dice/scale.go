package dice

import (
	"fmt"
	"regexp"
	"strconv"
)

var damagePattern = regexp.MustCompile(`^(\d+)d(\d+)(?:\+(\d+))?$`)

// IsDamageExpression reports whether s has the NdM[+B] shape used by the
// content tables.
func IsDamageExpression(s string) bool {
	return damagePattern.MatchString(s)
}

// Scale multiplies the die count and flat bonus of an NdM[+B] expression by
// factor: Scale("2d6+3", 2) == "4d6+6".
//
// Postcondition: expr is returned unchanged when it is malformed or factor < 1.
func Scale(expr string, factor int) string {
	if factor < 1 {
		return expr
	}
	m := damagePattern.FindStringSubmatch(expr)
	if m == nil {
		return expr
	}
	count, err := strconv.Atoi(m[1])
	if err != nil {
		return expr
	}
	out := fmt.Sprintf("%dd%s", count*factor, m[2])
	if m[3] != "" {
		bonus, err := strconv.Atoi(m[3])
		if err != nil {
			return expr
		}
		out += fmt.Sprintf("+%d", bonus*factor)
	}
	return out
}
