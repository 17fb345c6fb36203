package generator

import (
	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
)

const (
	// DefaultMaxElementalRerolls caps the ALWAYS reroll loop.
	DefaultMaxElementalRerolls = 100
	// RareRedTextPercent is the d100 threshold for red text on Rare guns.
	RareRedTextPercent = 5
)

// Observer receives generation events, typically for metrics.
type Observer interface {
	ItemGenerated(item Item)
	ElementalRerolls(attempts int)
}

type nopObserver struct{}

func (nopObserver) ItemGenerated(Item)   {}
func (nopObserver) ElementalRerolls(int) {}

// Option configures a Generator.
type Option func(*Generator)

// WithObserver attaches o to every generation.
func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

// WithMaxElementalRerolls overrides DefaultMaxElementalRerolls. Values below
// one are ignored.
func WithMaxElementalRerolls(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.maxRerolls = n
		}
	}
}

// Generator rolls guns. It holds no per-call state and is safe for
// concurrent use when its Source is.
type Generator struct {
	tables     *gear.Tables
	src        dice.Source
	roller     *dice.Roller
	logger     *zap.Logger
	observer   Observer
	maxRerolls int
}

// New builds a Generator over tables.
//
// Precondition: tables must be valid; src and logger must be non-nil.
func New(tables *gear.Tables, src dice.Source, logger *zap.Logger, opts ...Option) *Generator {
	g := &Generator{
		tables:     tables,
		src:        src,
		roller:     dice.NewLoggedRoller(src, logger),
		logger:     logger,
		observer:   nopObserver{},
		maxRerolls: DefaultMaxElementalRerolls,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Tables returns the rule tables the generator reads.
func (g *Generator) Tables() *gear.Tables {
	return g.tables
}

// Generate rolls one gun under c. It never fails: unsatisfiable constraints
// fall back to wildcard or random entities, and a stats miss leaves
// Item.Stats nil.
//
// Precondition: c.Rarity is empty or valid.
func (g *Generator) Generate(c Constraints) Item {
	weapon, maker := g.SelectWeaponAndManufacturer(c.Weapon, c.Manufacturer)
	roll := g.SelectRarity(c.Rarity)

	item := Item{
		Weapon:       weapon,
		Manufacturer: maker,
		Rarity:       roll.Rarity,
		Level:        c.Level,
	}
	item.Element = g.resolveItemElement(maker, roll)
	item.Prefix, item.RedText = g.narrative(roll.Rarity)
	item.Stats = g.resolveStats(weapon, c.Level)

	g.logger.Debug("generated item",
		zap.String("weapon", weapon.Key()),
		zap.String("manufacturer", maker.Key()),
		zap.String("rarity", string(item.Rarity)),
		zap.Bool("rarity_elemental", roll.Elemental),
		zap.String("element", item.Element.String()),
		zap.Int("level", item.Level),
		zap.Bool("stats", item.HasStats()),
	)
	g.observer.ItemGenerated(item)
	return item
}

// ResolveElemental rolls d100, shifts it by bonus, and looks up the outcome
// for rarity.
//
// Postcondition: the outcome has at least one damage type.
func (g *Generator) ResolveElemental(rarity gear.Rarity, bonus int) gear.ElementalOutcome {
	roll := g.roller.Percentile("elemental")
	return g.tables.Elemental.Lookup(gear.EffectiveRoll(roll, bonus), rarity)
}

// SelectRarity draws from the rarity table, or returns the constraint with
// a fair coinflip for elemental eligibility.
func (g *Generator) SelectRarity(constraint gear.Rarity) gear.RarityRoll {
	if constraint == "" {
		return g.tables.Rarities.Draw(g.src)
	}
	return gear.RarityRoll{Rarity: constraint, Elemental: dice.Coinflip(g.src)}
}

func (g *Generator) resolveItemElement(maker gear.ManufacturerSlot, roll gear.RarityRoll) gear.ElementalOutcome {
	rule := maker.Rule()
	eligible := roll.Elemental || rule == gear.Always
	bonus := maker.Bonus(roll.Rarity)

	switch {
	case rule == gear.Never:
		return gear.KineticOutcome()
	case rule == gear.Always:
		return g.resolveForcedElement(maker, roll.Rarity, bonus)
	case eligible:
		return g.ResolveElemental(roll.Rarity, bonus)
	default:
		return gear.KineticOutcome()
	}
}

// resolveForcedElement rerolls until the outcome excludes Kinetic. After
// maxRerolls misses it takes the table's first non-Kinetic outcome.
func (g *Generator) resolveForcedElement(maker gear.ManufacturerSlot, rarity gear.Rarity, bonus int) gear.ElementalOutcome {
	for attempt := 1; attempt <= g.maxRerolls; attempt++ {
		o := g.ResolveElemental(rarity, bonus)
		if !o.IsKinetic() {
			g.observer.ElementalRerolls(attempt)
			return o
		}
	}
	g.observer.ElementalRerolls(g.maxRerolls)
	g.logger.Warn("elemental reroll cap reached",
		zap.String("manufacturer", maker.Key()),
		zap.String("rarity", string(rarity)),
		zap.Int("attempts", g.maxRerolls),
	)
	if o, ok := g.tables.Elemental.FirstElemental(rarity); ok {
		return o
	}
	return gear.KineticOutcome()
}

func (g *Generator) narrative(r gear.Rarity) (prefix, redText *gear.Modifier) {
	n := g.tables.Narrative
	if r.AtLeast(gear.Epic) && len(n.Prefixes) > 0 {
		p := dice.Pick(g.src, n.Prefixes)
		prefix = &p
	}
	if len(n.RedText) == 0 {
		return prefix, nil
	}
	switch {
	case r == gear.Legendary:
		rt := dice.Pick(g.src, n.RedText)
		redText = &rt
	case r == gear.Rare && dice.Percentile(g.src) <= RareRedTextPercent:
		rt := dice.Pick(g.src, n.RedText)
		redText = &rt
	}
	return prefix, redText
}

// resolveStats looks the weapon up in the catalog by key and copies the band
// covering level. The wildcard, unknown weapons, and uncovered levels give nil.
func (g *Generator) resolveStats(weapon gear.WeaponSlot, level int) *Stats {
	w, ok := weapon.Weapon()
	if !ok {
		return nil
	}
	entry, ok := g.tables.Weapon(w.Key)
	if !ok {
		return nil
	}
	band, ok := entry.BandFor(level)
	if !ok {
		return nil
	}
	return &Stats{
		Stats:    band.Stats,
		MinLevel: band.Min,
		MaxLevel: band.Max,
		Range:    entry.Range,
		Bonus:    entry.Bonus,
	}
}
