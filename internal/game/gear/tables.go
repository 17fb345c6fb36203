package gear

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rowolff/bb-character-sheet/internal/game/dice"
)

const (
	// MinLevel and MaxLevel bound the character levels the catalog covers.
	MinLevel = 1
	MaxLevel = 30
)

// Tables is the complete, immutable rule set read by the generator.
type Tables struct {
	weapons       []*WeaponType
	manufacturers []*Manufacturer
	weaponIdx     map[string]*WeaponType
	makerIdx      map[string]*Manufacturer

	Elemental ElementalTable
	Pairings  PairingTable
	Rarities  RarityTable
	Narrative Narrative
}

// NewTables indexes the given catalog entries. Keys are stored upper-case.
//
// Postcondition: Validate has not been run; callers loading untrusted
// content must call it.
func NewTables(weapons []*WeaponType, makers []*Manufacturer) *Tables {
	t := &Tables{
		weapons:       weapons,
		manufacturers: makers,
		weaponIdx:     make(map[string]*WeaponType, len(weapons)),
		makerIdx:      make(map[string]*Manufacturer, len(makers)),
	}
	for _, w := range weapons {
		t.weaponIdx[strings.ToUpper(w.Key)] = w
	}
	for _, m := range makers {
		t.makerIdx[strings.ToUpper(m.Key)] = m
	}
	return t
}

// Weapons returns the catalog in file order.
func (t *Tables) Weapons() []*WeaponType {
	return append([]*WeaponType(nil), t.weapons...)
}

// Manufacturers returns the registry in file order.
func (t *Tables) Manufacturers() []*Manufacturer {
	return append([]*Manufacturer(nil), t.manufacturers...)
}

// Weapon looks up a weapon by key.
func (t *Tables) Weapon(key string) (*WeaponType, bool) {
	w, ok := t.weaponIdx[strings.ToUpper(key)]
	return w, ok
}

// Manufacturer looks up a manufacturer by key.
func (t *Tables) Manufacturer(key string) (*Manufacturer, bool) {
	m, ok := t.makerIdx[strings.ToUpper(key)]
	return m, ok
}

// normalizeName folds case and strips everything except letters and digits,
// so "sniper rifle", "SNIPER_RIFLE" and "Sniper-Rifle" compare equal.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseWeapon resolves user input to a slot. It accepts keys, display
// names, and "choice"/"any" for the wildcard.
func (t *Tables) ParseWeapon(s string) (WeaponSlot, error) {
	n := normalizeName(s)
	if n == "choice" || n == "any" {
		return AnyWeapon(), nil
	}
	for _, w := range t.weapons {
		if normalizeName(w.Key) == n || normalizeName(w.Name) == n {
			return ConcreteWeapon(w), nil
		}
	}
	return WeaponSlot{}, fmt.Errorf("gear: unknown weapon type %q", s)
}

// ParseManufacturer resolves user input to a slot. It accepts keys, display
// names, and "choice"/"any" for the wildcard.
func (t *Tables) ParseManufacturer(s string) (ManufacturerSlot, error) {
	n := normalizeName(s)
	if n == "choice" || n == "any" {
		return AnyManufacturer(), nil
	}
	for _, m := range t.manufacturers {
		if normalizeName(m.Key) == n || normalizeName(m.Name) == n {
			return ConcreteManufacturer(m), nil
		}
	}
	return ManufacturerSlot{}, fmt.Errorf("gear: unknown manufacturer %q", s)
}

// ConcreteWeapons returns every catalog weapon as a slot.
func (t *Tables) ConcreteWeapons() []WeaponSlot {
	out := make([]WeaponSlot, len(t.weapons))
	for i, w := range t.weapons {
		out[i] = ConcreteWeapon(w)
	}
	return out
}

// Validate checks every cross-table invariant and returns all violations.
func (t *Tables) Validate() error {
	var errs []error
	errs = append(errs, t.validateWeapons()...)
	errs = append(errs, t.validateManufacturers()...)
	errs = append(errs, t.validateElemental()...)
	errs = append(errs, t.validatePairings()...)
	errs = append(errs, t.validateRarities()...)
	errs = append(errs, t.validateNarrative()...)
	return errors.Join(errs...)
}

func (t *Tables) validateWeapons() []error {
	var errs []error
	if len(t.weapons) == 0 {
		return []error{errors.New("weapons: catalog is empty")}
	}
	seen := make(map[string]bool)
	for _, w := range t.weapons {
		key := strings.ToUpper(w.Key)
		switch {
		case w.Key == "":
			errs = append(errs, errors.New("weapons: key must not be empty"))
			continue
		case key == WildcardKey:
			errs = append(errs, fmt.Errorf("weapons: %q is reserved for the wildcard", w.Key))
		case seen[key]:
			errs = append(errs, fmt.Errorf("weapons: duplicate key %q", w.Key))
		}
		seen[key] = true
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("weapons[%s]: name must not be empty", w.Key))
		}
		if w.Range == "" {
			errs = append(errs, fmt.Errorf("weapons[%s]: range must not be empty", w.Key))
		}
		errs = append(errs, validateBands(w)...)
	}
	return errs
}

func validateBands(w *WeaponType) []error {
	var errs []error
	bands := append([]LevelBand(nil), w.Bands...)
	sort.Slice(bands, func(i, j int) bool { return bands[i].Min < bands[j].Min })
	next := MinLevel
	for _, b := range bands {
		if b.Min > b.Max {
			errs = append(errs, fmt.Errorf("weapons[%s]: band %d-%d is inverted", w.Key, b.Min, b.Max))
			continue
		}
		if b.Min != next {
			errs = append(errs, fmt.Errorf("weapons[%s]: band %d-%d does not start at level %d", w.Key, b.Min, b.Max, next))
		}
		next = b.Max + 1
		if !dice.IsDamageExpression(b.Stats.Damage) {
			errs = append(errs, fmt.Errorf("weapons[%s]: band %d-%d damage %q is not NdM[+B]", w.Key, b.Min, b.Max, b.Stats.Damage))
		}
		for _, tier := range b.Stats.Tiers() {
			if tier.Hits < 0 || tier.Crits < 0 {
				errs = append(errs, fmt.Errorf("weapons[%s]: band %d-%d has negative hits or crits", w.Key, b.Min, b.Max))
			}
		}
	}
	if next != MaxLevel+1 {
		errs = append(errs, fmt.Errorf("weapons[%s]: bands end at level %d, want %d", w.Key, next-1, MaxLevel))
	}
	return errs
}

func (t *Tables) validateManufacturers() []error {
	var errs []error
	if len(t.manufacturers) == 0 {
		return []error{errors.New("manufacturers: registry is empty")}
	}
	seen := make(map[string]bool)
	for _, m := range t.manufacturers {
		key := strings.ToUpper(m.Key)
		switch {
		case m.Key == "":
			errs = append(errs, errors.New("manufacturers: key must not be empty"))
			continue
		case key == WildcardKey:
			errs = append(errs, fmt.Errorf("manufacturers: %q is reserved for the wildcard", m.Key))
		case seen[key]:
			errs = append(errs, fmt.Errorf("manufacturers: duplicate key %q", m.Key))
		}
		seen[key] = true
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("manufacturers[%s]: name must not be empty", m.Key))
		}
		if !m.Rule.Valid() {
			errs = append(errs, fmt.Errorf("manufacturers[%s]: unknown elemental rule %q", m.Key, m.Rule))
		}
		for _, r := range rarities {
			if m.Flavor[r] == "" {
				errs = append(errs, fmt.Errorf("manufacturers[%s]: missing %s flavor", m.Key, r))
			}
		}
		for r := range m.ElementalBonus {
			if !r.Valid() {
				errs = append(errs, fmt.Errorf("manufacturers[%s]: elemental bonus for unknown rarity %q", m.Key, r))
			}
		}
		for _, b := range m.Builds {
			if _, ok := t.Weapon(b); !ok {
				errs = append(errs, fmt.Errorf("manufacturers[%s]: builds unknown weapon %q", m.Key, b))
			}
		}
	}
	return errs
}

func (t *Tables) validateElemental() []error {
	var errs []error
	next := 1
	hasElemental := make(map[Rarity]bool)
	for _, b := range t.Elemental.Bands {
		if b.Min != next || b.Max < b.Min {
			errs = append(errs, fmt.Errorf("elemental: band %d-%d breaks coverage at %d", b.Min, b.Max, next))
		}
		next = b.Max + 1
		for _, r := range rarities {
			o, ok := b.Outcomes[r]
			if !ok {
				errs = append(errs, fmt.Errorf("elemental: band %d-%d missing %s outcome", b.Min, b.Max, r))
				continue
			}
			if err := validateOutcome(o); err != nil {
				errs = append(errs, fmt.Errorf("elemental: band %d-%d %s: %w", b.Min, b.Max, r, err))
				continue
			}
			if !o.IsKinetic() {
				hasElemental[r] = true
			}
		}
	}
	if next != 101 {
		errs = append(errs, fmt.Errorf("elemental: bands end at %d, want 100", next-1))
	}
	for _, r := range rarities {
		if !hasElemental[r] {
			errs = append(errs, fmt.Errorf("elemental: %s has no non-Kinetic outcome", r))
		}
	}
	return errs
}

func validateOutcome(o ElementalOutcome) error {
	if len(o.Types) == 0 {
		return errors.New("damage types must not be empty")
	}
	for _, d := range o.Types {
		if !d.Valid() {
			return fmt.Errorf("unknown damage type %q", d)
		}
	}
	if o.AddedDamage != NoAddedDamage && !dice.IsDamageExpression(o.AddedDamage) {
		return fmt.Errorf("added damage %q is neither %q nor NdM[+B]", o.AddedDamage, NoAddedDamage)
	}
	return nil
}

func (t *Tables) validatePairings() []error {
	if len(t.Pairings.Rows) == 0 {
		return []error{errors.New("pairings: table is empty")}
	}
	var errs []error
	for i, row := range t.Pairings.Rows {
		if len(row) == 0 {
			errs = append(errs, fmt.Errorf("pairings: row %d is empty", i+1))
		}
	}
	return errs
}

func (t *Tables) validateRarities() []error {
	if len(t.Rarities.Rows) == 0 {
		return []error{errors.New("rarities: table is empty")}
	}
	var errs []error
	for i, row := range t.Rarities.Rows {
		if len(row) == 0 {
			errs = append(errs, fmt.Errorf("rarities: row %d is empty", i+1))
		}
		for _, cell := range row {
			if !cell.Rarity.Valid() {
				errs = append(errs, fmt.Errorf("rarities: row %d has unknown rarity %q", i+1, cell.Rarity))
			}
		}
	}
	return errs
}

func (t *Tables) validateNarrative() []error {
	var errs []error
	if len(t.Narrative.Prefixes) == 0 {
		errs = append(errs, errors.New("narrative: prefixes must not be empty"))
	}
	if len(t.Narrative.RedText) == 0 {
		errs = append(errs, errors.New("narrative: red_text must not be empty"))
	}
	for _, m := range append(append([]Modifier(nil), t.Narrative.Prefixes...), t.Narrative.RedText...) {
		if m.Name == "" || m.Effect == "" {
			errs = append(errs, fmt.Errorf("narrative: modifier %q needs a name and an effect", m.Name))
		}
	}
	return errs
}
