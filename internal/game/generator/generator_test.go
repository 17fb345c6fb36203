package generator_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
)

// scriptedSource replays vals in order, then returns 0 forever.
type scriptedSource struct {
	vals []int
	i    int
}

func (s *scriptedSource) Intn(n int) int {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i]
	s.i++
	if v >= n {
		return n - 1
	}
	return v
}

type recordingObserver struct {
	mu       sync.Mutex
	items    []generator.Item
	attempts []int
}

func (o *recordingObserver) ItemGenerated(item generator.Item) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items = append(o.items, item)
}

func (o *recordingObserver) ElementalRerolls(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempts = append(o.attempts, n)
}

func newGenerator(t testing.TB, src dice.Source, opts ...generator.Option) *generator.Generator {
	t.Helper()
	return generator.New(gear.Default(), src, zaptest.NewLogger(t), opts...)
}

func weaponSlot(t testing.TB, key string) *gear.WeaponSlot {
	t.Helper()
	w, ok := gear.Default().Weapon(key)
	require.True(t, ok, key)
	s := gear.ConcreteWeapon(w)
	return &s
}

func makerSlot(t testing.TB, key string) *gear.ManufacturerSlot {
	t.Helper()
	m, ok := gear.Default().Manufacturer(key)
	require.True(t, ok, key)
	s := gear.ConcreteManufacturer(m)
	return &s
}

func builderKeys(ms []*gear.Manufacturer) []string {
	keys := make([]string, 0, len(ms))
	for _, m := range ms {
		keys = append(keys, m.Key)
	}
	return keys
}

func TestGenerate_AlwaysManufacturerIsNeverKinetic(t *testing.T) {
	obs := &recordingObserver{}
	g := newGenerator(t, dice.NewSeededSource(1), generator.WithObserver(obs))
	maker := makerSlot(t, "MALEFACTOR")

	for i := 0; i < 1000; i++ {
		item := g.Generate(generator.Constraints{Manufacturer: maker, Level: 10})
		require.False(t, item.Element.IsKinetic(), "iteration %d: %s", i, item.Element)
		assert.Equal(t, "MALEFACTOR", item.Manufacturer.Key())
	}
	assert.Len(t, obs.items, 1000)
	assert.Len(t, obs.attempts, 1000)
	for _, n := range obs.attempts {
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, generator.DefaultMaxElementalRerolls)
	}
}

func TestGenerate_NeverManufacturerIsAlwaysKinetic(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(2))
	maker := makerSlot(t, "BLACK_POWDER")

	for i := 0; i < 1000; i++ {
		item := g.Generate(generator.Constraints{Manufacturer: maker, Level: 5})
		require.Equal(t, gear.KineticOutcome(), item.Element)
	}
}

func TestGenerate_SniperLevel15UsesMidBand(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(3))
	builders := builderKeys(g.Builders(*weaponSlot(t, "SNIPER_RIFLE")))

	for i := 0; i < 50; i++ {
		item := g.Generate(generator.Constraints{Weapon: weaponSlot(t, "SNIPER_RIFLE"), Level: 15})
		require.NotNil(t, item.Stats)
		assert.Equal(t, 13, item.Stats.MinLevel)
		assert.Equal(t, 18, item.Stats.MaxLevel)
		assert.Equal(t, "1d10", item.Stats.Damage)
		assert.Equal(t, "8", item.Stats.Range)
		assert.Equal(t, gear.RollTier{Label: "2-7", Hits: 1, Crits: 0}, item.Stats.Low)
		assert.Equal(t, gear.RollTier{Label: "16+", Hits: 1, Crits: 2}, item.Stats.High)
		assert.Contains(t, builders, item.Manufacturer.Key())
	}
}

func TestGenerate_LegendaryAlwaysCarriesNarrative(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(4))
	for i := 0; i < 500; i++ {
		item := g.Generate(generator.Constraints{Rarity: gear.Legendary, Level: 30})
		require.NotNil(t, item.Prefix)
		require.NotNil(t, item.RedText)
		assert.Equal(t, gear.Legendary, item.Rarity)
	}
}

func TestGenerate_RareRedTextNearFivePercent(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(5))
	const trials = 10000
	hits := 0
	for i := 0; i < trials; i++ {
		item := g.Generate(generator.Constraints{Rarity: gear.Rare, Level: 12})
		assert.Nil(t, item.Prefix)
		if item.RedText != nil {
			hits++
		}
	}
	assert.InDelta(t, 500, hits, 150, "red text on %d of %d Rare guns", hits, trials)
}

func TestGenerate_LowRaritiesCarryNoNarrative(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(6))
	for _, r := range []gear.Rarity{gear.Common, gear.Uncommon} {
		for i := 0; i < 200; i++ {
			item := g.Generate(generator.Constraints{Rarity: r, Level: 1})
			assert.Nil(t, item.Prefix, r)
			assert.Nil(t, item.RedText, r)
		}
	}
}

func TestGenerate_EpicHasPrefixOnly(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(7))
	for i := 0; i < 200; i++ {
		item := g.Generate(generator.Constraints{Rarity: gear.Epic, Level: 20})
		assert.NotNil(t, item.Prefix)
		assert.Nil(t, item.RedText)
	}
}

func TestGenerate_ExplicitConstraintsRoundTrip(t *testing.T) {
	tables := gear.Default()
	weapons := append(tables.ConcreteWeapons(), gear.AnyWeapon())
	makers := []gear.ManufacturerSlot{gear.AnyManufacturer()}
	for _, m := range tables.Manufacturers() {
		makers = append(makers, gear.ConcreteManufacturer(m))
	}

	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.SampledFrom(weapons).Draw(rt, "weapon")
		m := rapid.SampledFrom(makers).Draw(rt, "manufacturer")
		r := rapid.SampledFrom(gear.Rarities()).Draw(rt, "rarity")
		level := rapid.IntRange(gear.MinLevel, gear.MaxLevel).Draw(rt, "level")
		seed := rapid.Uint64().Draw(rt, "seed")

		g := generator.New(tables, dice.NewSeededSource(seed), zaptest.NewLogger(t))
		item := g.Generate(generator.Constraints{Weapon: &w, Manufacturer: &m, Rarity: r, Level: level})

		assert.Equal(rt, w, item.Weapon)
		assert.Equal(rt, m, item.Manufacturer)
		assert.Equal(rt, r, item.Rarity)
		assert.Equal(rt, level, item.Level)
		assert.Equal(rt, w.IsWildcard(), item.Stats == nil)
		assert.NotEmpty(rt, item.Element.Types)
	})
}

func TestGenerate_NormalManufacturerHonorsEligibility(t *testing.T) {
	tables := gear.Default()
	dahlia := makerSlot(t, "DAHLIA")
	pistol := weaponSlot(t, "PISTOL")

	// coinflip 0: not eligible. Percentile 1 then gives red text.
	g := generator.New(tables, &scriptedSource{}, zaptest.NewLogger(t))
	item := g.Generate(generator.Constraints{Weapon: pistol, Manufacturer: dahlia, Rarity: gear.Rare, Level: 3})
	assert.Equal(t, gear.KineticOutcome(), item.Element)
	require.NotNil(t, item.RedText)
	assert.Equal(t, tables.Narrative.RedText[0], *item.RedText)

	// coinflip 1: eligible, elemental roll 100.
	g = generator.New(tables, &scriptedSource{vals: []int{1, 99}}, zaptest.NewLogger(t))
	item = g.Generate(generator.Constraints{Weapon: pistol, Manufacturer: dahlia, Rarity: gear.Rare, Level: 3})
	assert.Equal(t, tables.Elemental.Lookup(100, gear.Rare), item.Element)
}

func TestGenerate_ManufacturerBonusShiftsRoll(t *testing.T) {
	tables := gear.Default()
	feriore := makerSlot(t, "FERIORE")
	require.Equal(t, 5, feriore.Bonus(gear.Rare))

	g := generator.New(tables, &scriptedSource{vals: []int{1, 94}}, zaptest.NewLogger(t))
	item := g.Generate(generator.Constraints{Weapon: weaponSlot(t, "SMG"), Manufacturer: feriore, Rarity: gear.Rare, Level: 8})
	assert.Equal(t, tables.Elemental.Lookup(100, gear.Rare), item.Element)
}

func TestGenerate_AlwaysFallsBackAfterRerollCap(t *testing.T) {
	hex := gear.ConcreteManufacturer(&gear.Manufacturer{Key: "HEX", Name: "Hex", Rule: gear.Always})
	obs := &recordingObserver{}
	g := generator.New(gear.Default(), &scriptedSource{}, zaptest.NewLogger(t),
		generator.WithMaxElementalRerolls(3), generator.WithObserver(obs))

	item := g.Generate(generator.Constraints{Weapon: weaponSlot(t, "PISTOL"), Manufacturer: &hex, Rarity: gear.Common, Level: 1})

	want, ok := gear.Default().Elemental.FirstElemental(gear.Common)
	require.True(t, ok)
	assert.Equal(t, want, item.Element)
	assert.Equal(t, []int{3}, obs.attempts)
	require.Len(t, obs.items, 1)
}

func TestGenerate_StatsMissesLeaveNil(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(8))
	pistol := weaponSlot(t, "PISTOL")

	assert.Nil(t, g.Generate(generator.Constraints{Weapon: pistol, Level: 0}).Stats)
	assert.Nil(t, g.Generate(generator.Constraints{Weapon: pistol, Level: 31}).Stats)

	railgun := gear.ConcreteWeapon(&gear.WeaponType{Key: "RAILGUN", Name: "Railgun"})
	item := g.Generate(generator.Constraints{Weapon: &railgun, Level: 10})
	assert.Nil(t, item.Stats)
	assert.True(t, item.Manufacturer.IsWildcard(), "nothing builds an unknown weapon")
}

func TestGenerate_ConcurrentUse(t *testing.T) {
	g := newGenerator(t, dice.NewSeededSource(9))
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				item := g.Generate(generator.Constraints{Level: 1 + i%30})
				assert.True(t, item.Rarity.Valid())
			}
		}()
	}
	wg.Wait()
}

func TestItem_Title(t *testing.T) {
	item := generator.Item{
		Weapon:       *weaponSlot(t, "PISTOL"),
		Manufacturer: *makerSlot(t, "DAHLIA"),
	}
	assert.Equal(t, "Dahlia Pistol", item.Title())

	item.Prefix = &gear.Modifier{Name: "Vicious"}
	assert.Equal(t, "Vicious Dahlia Pistol", item.Title())

	assert.Equal(t, gear.WildcardManufacturerName+" "+gear.WildcardWeaponName, generator.Item{}.Title())
}

func TestResolveElemental_OutcomeShape(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := generator.New(gear.Default(), dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), zaptest.NewLogger(t))
		r := rapid.SampledFrom(gear.Rarities()).Draw(rt, "rarity")
		bonus := rapid.IntRange(-50, 150).Draw(rt, "bonus")

		o := g.ResolveElemental(r, bonus)
		require.NotEmpty(rt, o.Types)
		assert.True(rt, o.AddedDamage == gear.NoAddedDamage || dice.IsDamageExpression(o.AddedDamage))
	})
}
