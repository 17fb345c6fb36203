package gear

// WildcardKey is the table key of both wildcard entities.
const WildcardKey = "CHOICE"

const (
	// WildcardWeaponName is shown for the "any weapon" slot.
	WildcardWeaponName = "Weapon of your choosing"
	// WildcardManufacturerName is shown for the "any manufacturer" slot.
	WildcardManufacturerName = "Choice"
)

// RollTier is the hits and crits granted by one accuracy-roll range.
type RollTier struct {
	Label string `json:"label"`
	Hits  int    `json:"hits"`
	Crits int    `json:"crits"`
}

// Stats are the combat numbers for one level band.
type Stats struct {
	Low    RollTier `json:"low"`
	Medium RollTier `json:"medium"`
	High   RollTier `json:"high"`
	Damage string   `json:"damage"`
}

// Tiers returns the three roll tiers from lowest to highest.
func (s Stats) Tiers() []RollTier {
	return []RollTier{s.Low, s.Medium, s.High}
}

// LevelBand is an inclusive character-level range sharing one Stats row.
type LevelBand struct {
	Min   int
	Max   int
	Stats Stats
}

// Contains reports whether level falls inside the band.
func (b LevelBand) Contains(level int) bool {
	return level >= b.Min && level <= b.Max
}

// WeaponType is a concrete gun archetype from the catalog.
//
// Invariant: Bands partition 1..30 and are sorted by Min.
type WeaponType struct {
	Key   string
	Name  string
	Range string
	Bonus string
	Bands []LevelBand
}

// BandFor returns the band containing level.
//
// Postcondition: ok is false when level lies outside every band.
func (w *WeaponType) BandFor(level int) (LevelBand, bool) {
	for _, b := range w.Bands {
		if b.Contains(level) {
			return b, true
		}
	}
	return LevelBand{}, false
}

// WeaponSlot is either a concrete WeaponType or the wildcard "any weapon".
// The zero value is the wildcard.
type WeaponSlot struct {
	weapon *WeaponType
}

// ConcreteWeapon wraps w.
//
// Precondition: w must be non-nil.
func ConcreteWeapon(w *WeaponType) WeaponSlot {
	if w == nil {
		panic("gear: ConcreteWeapon called with nil weapon")
	}
	return WeaponSlot{weapon: w}
}

// AnyWeapon returns the wildcard weapon slot.
func AnyWeapon() WeaponSlot { return WeaponSlot{} }

// IsWildcard reports whether the slot is "any weapon".
func (s WeaponSlot) IsWildcard() bool { return s.weapon == nil }

// Weapon returns the concrete weapon, or false for the wildcard.
func (s WeaponSlot) Weapon() (*WeaponType, bool) { return s.weapon, s.weapon != nil }

// Key returns the weapon key, or WildcardKey.
func (s WeaponSlot) Key() string {
	if s.weapon == nil {
		return WildcardKey
	}
	return s.weapon.Key
}

// Name returns the display name.
func (s WeaponSlot) Name() string {
	if s.weapon == nil {
		return WildcardWeaponName
	}
	return s.weapon.Name
}
