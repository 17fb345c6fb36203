package gear

import (
	"fmt"
	"strings"
)

// Rarity is a gun's quality tier. Tiers are ordered
// Common < Uncommon < Rare < Epic < Legendary.
type Rarity string

const (
	Common    Rarity = "Common"
	Uncommon  Rarity = "Uncommon"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
)

var rarities = []Rarity{Common, Uncommon, Rare, Epic, Legendary}

// Rarities returns all tiers from lowest to highest.
func Rarities() []Rarity {
	out := make([]Rarity, len(rarities))
	copy(out, rarities)
	return out
}

// Tier returns the zero-based position of r, or -1 if r is unknown.
func (r Rarity) Tier() int {
	for i, k := range rarities {
		if k == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is one of the five tiers.
func (r Rarity) Valid() bool {
	return r.Tier() >= 0
}

// AtLeast reports whether r ranks at or above floor.
//
// Precondition: both r and floor are valid.
func (r Rarity) AtLeast(floor Rarity) bool {
	return r.Tier() >= floor.Tier()
}

// ParseRarity accepts a tier name or its first letter, in any case.
func ParseRarity(s string) (Rarity, error) {
	s = strings.TrimSpace(s)
	for _, k := range rarities {
		if strings.EqualFold(string(k), s) || strings.EqualFold(string(k)[:1], s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("gear: unknown rarity %q", s)
}

// RarityRoll is the outcome of a rarity draw. Elemental marks the roll as
// eligible for an elemental outcome, independent of manufacturer rules.
type RarityRoll struct {
	Rarity    Rarity `yaml:"rarity" json:"rarity"`
	Elemental bool   `yaml:"elemental" json:"elemental"`
}
