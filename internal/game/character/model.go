// Package character defines the character sheet and its pure math.
package character

import (
	"fmt"

	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

// DefaultBase is the starting attribute spread of a new sheet.
var DefaultBase = ruleset.Attributes{Accuracy: 0, Damage: 1, Speed: 2, Mastery: 4}

// Sheet is a character's attributes before and after class and archetype
// bonuses.
type Sheet struct {
	Name      string
	Base      ruleset.Attributes
	Class     *ruleset.Class
	Archetype *ruleset.Archetype
}

// Totals returns base plus class plus archetype bonuses. A nil class or
// archetype contributes nothing.
func (s *Sheet) Totals() ruleset.Attributes {
	t := s.Base
	if s.Class != nil {
		t = t.Add(s.Class.Bonuses)
	}
	if s.Archetype != nil {
		t = t.Add(s.Archetype.Bonuses)
	}
	return t
}

// Modifier returns floor(total/2) for the attribute id, or 0 if id is unknown.
func (s *Sheet) Modifier(id string) int {
	v, ok := s.Totals().Get(id)
	if !ok {
		return 0
	}
	return Modifier(v)
}

// Modifier is floor(value/2), rounding toward negative infinity.
func Modifier(value int) int {
	if value < 0 {
		return (value - 1) / 2
	}
	return value / 2
}

// Adjust adds delta to the base value of attribute id.
//
// Postcondition: s is unchanged when err is non-nil.
func (s *Sheet) Adjust(id string, delta int) error {
	v, ok := s.Base.Get(id)
	if !ok {
		return fmt.Errorf("unknown attribute %q", id)
	}
	base, err := s.Base.With(id, v+delta)
	if err != nil {
		return err
	}
	s.Base = base
	return nil
}

// Row is one rendered line of the sheet.
type Row struct {
	Label ruleset.AttributeLabel `json:"label"`
	Base  int                    `json:"base"`
	Total int                    `json:"total"`
	Mod   int                    `json:"mod"`
}

// Rows returns one Row per attribute in sheet order.
func (s *Sheet) Rows() []Row {
	totals := s.Totals()
	labels := ruleset.AttributeLabels()
	rows := make([]Row, 0, len(labels))
	for _, l := range labels {
		base, _ := s.Base.Get(l.ID)
		total, _ := totals.Get(l.ID)
		rows = append(rows, Row{Label: l, Base: base, Total: total, Mod: Modifier(total)})
	}
	return rows
}
