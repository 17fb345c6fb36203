// Package gear holds the read-only rule tables behind gun generation: damage
// types, rarities, the weapon catalog, manufacturers, the pairing and rarity
// tables, the elemental outcome table, and narrative modifiers.
package gear

import (
	"fmt"
	"strings"
)

// DamageType is one kind of damage a gun can deal.
type DamageType string

const (
	Kinetic    DamageType = "Kinetic"
	Explosive  DamageType = "Explosive"
	Incendiary DamageType = "Incendiary"
	Corrosive  DamageType = "Corrosive"
	Shock      DamageType = "Shock"
	Radiation  DamageType = "Radiation"
	Cryo       DamageType = "Cryo"
)

var damageTypes = []DamageType{Kinetic, Explosive, Incendiary, Corrosive, Shock, Radiation, Cryo}

// DamageTypes returns every damage type in display order.
func DamageTypes() []DamageType {
	out := make([]DamageType, len(damageTypes))
	copy(out, damageTypes)
	return out
}

// Valid reports whether d is a known damage type.
func (d DamageType) Valid() bool {
	for _, k := range damageTypes {
		if k == d {
			return true
		}
	}
	return false
}

// ParseDamageType matches s case-insensitively against the known types.
func ParseDamageType(s string) (DamageType, error) {
	for _, k := range damageTypes {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("gear: unknown damage type %q", s)
}
