package gear

import "github.com/rowolff/bb-character-sheet/internal/game/dice"

// Pairing is one vetted (weapon, manufacturer) cell of the pairing table.
type Pairing struct {
	Weapon       WeaponSlot
	Manufacturer ManufacturerSlot
}

// PairingTable groups pairings into rows. Draws pick a row first and then a
// cell, so rows carry equal weight regardless of how many cells they hold.
type PairingTable struct {
	Rows [][]Pairing
}

// Draw performs the row-then-cell draw.
//
// Precondition: the table has at least one non-empty row.
func (t *PairingTable) Draw(src dice.Source) Pairing {
	return dice.Pick(src, dice.Pick(src, t.Rows))
}

// WeaponsFor lists the weapons paired with the manufacturer keyed makerKey,
// one entry per matching cell.
func (t *PairingTable) WeaponsFor(makerKey string) []WeaponSlot {
	var out []WeaponSlot
	for _, row := range t.Rows {
		for _, p := range row {
			if p.Manufacturer.Key() == makerKey {
				out = append(out, p.Weapon)
			}
		}
	}
	return out
}

// Pairs reports whether any cell pairs weaponKey with makerKey.
func (t *PairingTable) Pairs(weaponKey, makerKey string) bool {
	for _, row := range t.Rows {
		for _, p := range row {
			if p.Weapon.Key() == weaponKey && p.Manufacturer.Key() == makerKey {
				return true
			}
		}
	}
	return false
}

// RarityTable is the row-then-cell rarity and elemental-eligibility table.
type RarityTable struct {
	Rows [][]RarityRoll
}

// Draw performs the row-then-cell draw.
//
// Precondition: the table has at least one non-empty row.
func (t *RarityTable) Draw(src dice.Source) RarityRoll {
	return dice.Pick(src, dice.Pick(src, t.Rows))
}
