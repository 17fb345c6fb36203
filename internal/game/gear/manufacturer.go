package gear

import "fmt"

// ElementalRule decides how a manufacturer's guns treat the elemental roll.
type ElementalRule string

const (
	// Never makes every gun Kinetic with no added damage.
	Never ElementalRule = "NEVER"
	// Normal rolls on the elemental table only when the rarity roll allows it.
	Normal ElementalRule = "NORMAL"
	// Always forces the elemental path and rerolls until the result is not Kinetic.
	Always ElementalRule = "ALWAYS"
)

// Valid reports whether r is a known rule.
func (r ElementalRule) Valid() bool {
	switch r {
	case Never, Normal, Always:
		return true
	}
	return false
}

// Manufacturer is a gun maker.
//
// DeclaresBuilds distinguishes an omitted builds list, which defers to the
// pairing table, from an explicitly empty one, which allows any weapon.
type Manufacturer struct {
	Key            string
	Name           string
	Info           string
	Rule           ElementalRule
	Flavor         map[Rarity]string
	ElementalBonus map[Rarity]int
	Builds         []string
	DeclaresBuilds bool
}

// Bonus returns the elemental-roll bonus for r; missing tiers count as 0.
func (m *Manufacturer) Bonus(r Rarity) int {
	return m.ElementalBonus[r]
}

// CanBuild reports whether weaponKey is in the declared builds list.
func (m *Manufacturer) CanBuild(weaponKey string) bool {
	for _, b := range m.Builds {
		if b == weaponKey {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (m *Manufacturer) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Rule)
}

// ManufacturerSlot is either a concrete Manufacturer or the wildcard "any
// manufacturer". The zero value is the wildcard.
type ManufacturerSlot struct {
	maker *Manufacturer
}

// ConcreteManufacturer wraps m.
//
// Precondition: m must be non-nil.
func ConcreteManufacturer(m *Manufacturer) ManufacturerSlot {
	if m == nil {
		panic("gear: ConcreteManufacturer called with nil manufacturer")
	}
	return ManufacturerSlot{maker: m}
}

// AnyManufacturer returns the wildcard manufacturer slot.
func AnyManufacturer() ManufacturerSlot { return ManufacturerSlot{} }

// IsWildcard reports whether the slot is "any manufacturer".
func (s ManufacturerSlot) IsWildcard() bool { return s.maker == nil }

// Manufacturer returns the concrete maker, or false for the wildcard.
func (s ManufacturerSlot) Manufacturer() (*Manufacturer, bool) { return s.maker, s.maker != nil }

// Key returns the manufacturer key, or WildcardKey.
func (s ManufacturerSlot) Key() string {
	if s.maker == nil {
		return WildcardKey
	}
	return s.maker.Key
}

// Name returns the display name.
func (s ManufacturerSlot) Name() string {
	if s.maker == nil {
		return WildcardManufacturerName
	}
	return s.maker.Name
}

// Rule returns the elemental rule. The wildcard behaves as Normal.
func (s ManufacturerSlot) Rule() ElementalRule {
	if s.maker == nil {
		return Normal
	}
	return s.maker.Rule
}

// Bonus returns the elemental-roll bonus for r. The wildcard has none.
func (s ManufacturerSlot) Bonus(r Rarity) int {
	if s.maker == nil {
		return 0
	}
	return s.maker.Bonus(r)
}

// Flavor returns the rarity-specific flavor text, if any.
func (s ManufacturerSlot) Flavor(r Rarity) string {
	if s.maker == nil {
		return ""
	}
	return s.maker.Flavor[r]
}

// Info returns the manufacturer's description. The wildcard has none.
func (s ManufacturerSlot) Info() string {
	if s.maker == nil {
		return ""
	}
	return s.maker.Info
}
