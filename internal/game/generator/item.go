// Package generator rolls complete guns from the gear tables: weapon and
// manufacturer, rarity, elemental outcome, narrative modifiers, and
// level-scaled stats.
package generator

import (
	"strings"

	"github.com/rowolff/bb-character-sheet/internal/game/gear"
)

// Constraints narrow a generation. A nil slot or empty rarity leaves that
// part to the tables.
type Constraints struct {
	Weapon       *gear.WeaponSlot
	Manufacturer *gear.ManufacturerSlot
	Rarity       gear.Rarity
	Level        int
}

// Stats are the level-band numbers copied onto an item.
type Stats struct {
	gear.Stats
	MinLevel int
	MaxLevel int
	Range    string
	Bonus    string
}

// Item is one generated gun. It is never modified after Generate returns.
type Item struct {
	Weapon       gear.WeaponSlot
	Manufacturer gear.ManufacturerSlot
	Rarity       gear.Rarity
	Element      gear.ElementalOutcome
	Level        int
	Stats        *Stats
	Prefix       *gear.Modifier
	RedText      *gear.Modifier
}

// HasStats reports whether level-band stats were resolved.
func (it Item) HasStats() bool {
	return it.Stats != nil
}

// Title joins prefix, manufacturer, and weapon, e.g. "Vicious Dahlia Pistol".
func (it Item) Title() string {
	parts := make([]string, 0, 3)
	if it.Prefix != nil {
		parts = append(parts, it.Prefix.Name)
	}
	parts = append(parts, it.Manufacturer.Name(), it.Weapon.Name())
	return strings.Join(parts, " ")
}
