package generator

import (
	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
)

// SelectWeaponAndManufacturer resolves the weapon and manufacturer pair.
//
// Rules, first match wins:
//  1. Both given: returned verbatim, compatible or not.
//  2. Weapon only: a uniform pick among manufacturers that can build it,
//     else the wildcard manufacturer.
//  3. Manufacturer only: a uniform pick from its builds list; an explicitly
//     empty list or the wildcard allows any concrete weapon; no builds list
//     defers to the pairing table, then any concrete weapon.
//  4. Neither: a row-then-cell draw from the pairing table.
func (g *Generator) SelectWeaponAndManufacturer(weapon *gear.WeaponSlot, maker *gear.ManufacturerSlot) (gear.WeaponSlot, gear.ManufacturerSlot) {
	switch {
	case weapon != nil && maker != nil:
		return *weapon, *maker
	case weapon != nil:
		return *weapon, g.manufacturerFor(*weapon)
	case maker != nil:
		return g.weaponFor(*maker), *maker
	default:
		p := g.tables.Pairings.Draw(g.src)
		return p.Weapon, p.Manufacturer
	}
}

// Builders lists the manufacturers able to produce weapon. A manufacturer
// with a builds list is matched against it; one without is matched against
// the pairing table.
func (g *Generator) Builders(weapon gear.WeaponSlot) []*gear.Manufacturer {
	w, ok := weapon.Weapon()
	if !ok {
		return nil
	}
	var out []*gear.Manufacturer
	for _, m := range g.tables.Manufacturers() {
		if m.DeclaresBuilds {
			if m.CanBuild(w.Key) {
				out = append(out, m)
			}
			continue
		}
		if g.tables.Pairings.Pairs(w.Key, m.Key) {
			out = append(out, m)
		}
	}
	return out
}

func (g *Generator) manufacturerFor(weapon gear.WeaponSlot) gear.ManufacturerSlot {
	builders := g.Builders(weapon)
	if len(builders) == 0 {
		return gear.AnyManufacturer()
	}
	return gear.ConcreteManufacturer(dice.Pick(g.src, builders))
}

func (g *Generator) weaponFor(maker gear.ManufacturerSlot) gear.WeaponSlot {
	m, ok := maker.Manufacturer()
	if !ok {
		return g.randomConcreteWeapon()
	}
	if !m.DeclaresBuilds {
		if paired := g.tables.Pairings.WeaponsFor(m.Key); len(paired) > 0 {
			return dice.Pick(g.src, paired)
		}
		return g.randomConcreteWeapon()
	}
	if len(m.Builds) == 0 {
		return g.randomConcreteWeapon()
	}
	if w, ok := g.tables.Weapon(dice.Pick(g.src, m.Builds)); ok {
		return gear.ConcreteWeapon(w)
	}
	return g.randomConcreteWeapon()
}

func (g *Generator) randomConcreteWeapon() gear.WeaponSlot {
	return dice.Pick(g.src, g.tables.ConcreteWeapons())
}
