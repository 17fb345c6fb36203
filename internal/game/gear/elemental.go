package gear

import "strings"

// NoAddedDamage marks an outcome without bonus damage dice.
const NoAddedDamage = "0"

// ElementalOutcome is the damage-type set and added damage of one roll.
//
// Invariant: Types is non-empty; AddedDamage is "0" or NdM[+B].
type ElementalOutcome struct {
	Types       []DamageType `json:"types"`
	AddedDamage string       `json:"added_damage"`
}

// KineticOutcome is the plain outcome: Kinetic with no added damage.
func KineticOutcome() ElementalOutcome {
	return ElementalOutcome{Types: []DamageType{Kinetic}, AddedDamage: NoAddedDamage}
}

// IsKinetic reports whether the set includes Kinetic.
func (o ElementalOutcome) IsKinetic() bool {
	for _, t := range o.Types {
		if t == Kinetic {
			return true
		}
	}
	return false
}

func (o ElementalOutcome) clone() ElementalOutcome {
	types := make([]DamageType, len(o.Types))
	copy(types, o.Types)
	return ElementalOutcome{Types: types, AddedDamage: o.AddedDamage}
}

// String renders e.g. "Radiation/Incendiary" or "Shock +1d6".
func (o ElementalOutcome) String() string {
	names := make([]string, len(o.Types))
	for i, t := range o.Types {
		names[i] = string(t)
	}
	s := strings.Join(names, "/")
	if o.AddedDamage != "" && o.AddedDamage != NoAddedDamage {
		s += " +" + o.AddedDamage
	}
	return s
}

// ElementalBand maps an inclusive percentile range to one outcome per rarity.
type ElementalBand struct {
	Min      int
	Max      int
	Outcomes map[Rarity]ElementalOutcome
}

// ElementalTable is the percentile table, sorted by Min.
//
// Invariant: bands cover 1..100 without gaps; every rarity has at least one
// non-Kinetic outcome.
type ElementalTable struct {
	Bands []ElementalBand
}

// ClampPercentile forces roll into [1, 100].
func ClampPercentile(roll int) int {
	switch {
	case roll < 1:
		return 1
	case roll > 100:
		return 100
	}
	return roll
}

// EffectiveRoll shifts roll by bonus and clamps it.
//
// Postcondition: result is in [1, 100] and non-decreasing in bonus.
func EffectiveRoll(roll, bonus int) int {
	return ClampPercentile(ClampPercentile(roll) + bonus)
}

// Lookup returns the outcome for roll (clamped first) and rarity.
//
// Postcondition: returns KineticOutcome when no band or rarity entry matches.
func (t *ElementalTable) Lookup(roll int, rarity Rarity) ElementalOutcome {
	roll = ClampPercentile(roll)
	for _, b := range t.Bands {
		if roll < b.Min || roll > b.Max {
			continue
		}
		if o, ok := b.Outcomes[rarity]; ok && len(o.Types) > 0 {
			return o.clone()
		}
		break
	}
	return KineticOutcome()
}

// FirstElemental returns the lowest-band outcome for rarity that excludes
// Kinetic.
func (t *ElementalTable) FirstElemental(rarity Rarity) (ElementalOutcome, bool) {
	for _, b := range t.Bands {
		if o, ok := b.Outcomes[rarity]; ok && len(o.Types) > 0 && !o.IsKinetic() {
			return o.clone(), true
		}
	}
	return ElementalOutcome{}, false
}
