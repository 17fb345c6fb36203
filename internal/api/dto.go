package api

import (
	"github.com/google/uuid"

	"github.com/rowolff/bb-character-sheet/internal/game/character"
	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

// Ref names a catalog entry.
type Ref struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// TierResponse is one accuracy-roll tier. Damage is the per-hit damage
// scaled by Hits, empty when the tier has no hits.
type TierResponse struct {
	Label  string `json:"label"`
	Hits   int    `json:"hits"`
	Crits  int    `json:"crits"`
	Damage string `json:"damage,omitempty"`
}

// StatsResponse is the level-band stat block of a gun.
type StatsResponse struct {
	MinLevel int            `json:"min_level"`
	MaxLevel int            `json:"max_level"`
	Range    string         `json:"range"`
	Bonus    string         `json:"bonus,omitempty"`
	Damage   string         `json:"damage"`
	Tiers    []TierResponse `json:"tiers"`
}

func newTiers(damage string, tiers []gear.RollTier) []TierResponse {
	out := make([]TierResponse, 0, len(tiers))
	for _, t := range tiers {
		tr := TierResponse{Label: t.Label, Hits: t.Hits, Crits: t.Crits}
		if t.Hits > 0 && dice.IsDamageExpression(damage) {
			tr.Damage = dice.Scale(damage, t.Hits)
		}
		out = append(out, tr)
	}
	return out
}

// GunResponse is one generated gun. DropID identifies this response only;
// the same roll is never returned twice.
type GunResponse struct {
	DropID       uuid.UUID             `json:"drop_id"`
	Title        string                `json:"title"`
	Weapon       Ref                   `json:"weapon"`
	Manufacturer Ref                   `json:"manufacturer"`
	Rarity       gear.Rarity           `json:"rarity"`
	Level        int                   `json:"level"`
	Element      gear.ElementalOutcome `json:"element"`
	Flavor       string                `json:"flavor,omitempty"`
	Info         string                `json:"info,omitempty"`
	Stats        *StatsResponse        `json:"stats"`
	Prefix       *gear.Modifier        `json:"prefix,omitempty"`
	RedText      *gear.Modifier        `json:"red_text,omitempty"`
}

// NewGunResponse converts a generated item.
func NewGunResponse(id uuid.UUID, it generator.Item) GunResponse {
	resp := GunResponse{
		DropID:       id,
		Title:        it.Title(),
		Weapon:       Ref{Key: it.Weapon.Key(), Name: it.Weapon.Name()},
		Manufacturer: Ref{Key: it.Manufacturer.Key(), Name: it.Manufacturer.Name()},
		Rarity:       it.Rarity,
		Level:        it.Level,
		Element:      it.Element,
		Flavor:       it.Manufacturer.Flavor(it.Rarity),
		Info:         it.Manufacturer.Info(),
		Prefix:       it.Prefix,
		RedText:      it.RedText,
	}
	if it.HasStats() {
		resp.Stats = &StatsResponse{
			MinLevel: it.Stats.MinLevel,
			MaxLevel: it.Stats.MaxLevel,
			Range:    it.Stats.Range,
			Bonus:    it.Stats.Bonus,
			Damage:   it.Stats.Damage,
			Tiers:    newTiers(it.Stats.Damage, it.Stats.Tiers()),
		}
	}
	return resp
}

// LootResponse lists the piles dropped for a rank.
type LootResponse struct {
	Rank  int      `json:"rank"`
	Piles []string `json:"piles"`
}

// ElementResponse is a standalone elemental roll.
type ElementResponse struct {
	Rarity  gear.Rarity           `json:"rarity"`
	Bonus   int                   `json:"bonus"`
	Element gear.ElementalOutcome `json:"element"`
}

// SheetResponse is a character sheet with totals and modifiers.
type SheetResponse struct {
	Name       string          `json:"name"`
	Class      Ref             `json:"class"`
	Archetype  Ref             `json:"archetype"`
	Attributes []character.Row `json:"attributes"`
}

// NewSheetResponse converts a sheet. A nil class or archetype is
// reported as "none".
func NewSheetResponse(s *character.Sheet) SheetResponse {
	resp := SheetResponse{
		Name:       s.Name,
		Class:      Ref{Key: ruleset.NoneID},
		Archetype:  Ref{Key: ruleset.NoneID},
		Attributes: s.Rows(),
	}
	if s.Class != nil {
		resp.Class = Ref{Key: s.Class.ID, Name: s.Class.Name}
	}
	if s.Archetype != nil {
		resp.Archetype = Ref{Key: s.Archetype.ID, Name: s.Archetype.Name}
	}
	return resp
}

// WeaponEntry is a catalog weapon.
type WeaponEntry struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Range string `json:"range"`
	Bonus string `json:"bonus,omitempty"`
}

// ManufacturerEntry is a catalog manufacturer.
type ManufacturerEntry struct {
	Key       string             `json:"key"`
	Name      string             `json:"name"`
	Info      string             `json:"info,omitempty"`
	Elemental gear.ElementalRule `json:"elemental"`
	Builds    []string           `json:"builds"`
}

// CatalogResponse is everything a client needs to build a request.
type CatalogResponse struct {
	Weapons       []WeaponEntry            `json:"weapons"`
	Manufacturers []ManufacturerEntry      `json:"manufacturers"`
	Rarities      []gear.Rarity            `json:"rarities"`
	Classes       []*ruleset.Class         `json:"classes"`
	Archetypes    []*ruleset.Archetype     `json:"archetypes"`
	Attributes    []ruleset.AttributeLabel `json:"attributes"`
}

// NewCatalogResponse lists the catalogs in display order.
func NewCatalogResponse(tables *gear.Tables, rules *ruleset.Registry) CatalogResponse {
	resp := CatalogResponse{
		Rarities:   gear.Rarities(),
		Classes:    rules.Classes(),
		Archetypes: rules.Archetypes(),
		Attributes: ruleset.AttributeLabels(),
	}
	for _, w := range tables.Weapons() {
		resp.Weapons = append(resp.Weapons, WeaponEntry{Key: w.Key, Name: w.Name, Range: w.Range, Bonus: w.Bonus})
	}
	for _, m := range tables.Manufacturers() {
		builds := m.Builds
		if builds == nil {
			builds = []string{}
		}
		resp.Manufacturers = append(resp.Manufacturers, ManufacturerEntry{
			Key: m.Key, Name: m.Name, Info: m.Info, Elemental: m.Rule, Builds: builds,
		})
	}
	return resp
}
