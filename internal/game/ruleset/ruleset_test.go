package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault_ShipsAllClassesAndArchetypes(t *testing.T) {
	reg := ruleset.Default()
	assert.Len(t, reg.Classes(), 11)
	assert.Len(t, reg.Archetypes(), 5)
	assert.Equal(t, ruleset.NoneID, reg.Classes()[0].ID)
	assert.Equal(t, ruleset.NoneID, reg.Archetypes()[0].ID)
	assert.Same(t, reg, ruleset.Default())
}

func TestDefault_BonusValues(t *testing.T) {
	reg := ruleset.Default()
	classes := map[string]ruleset.Attributes{
		"none":            {},
		"assassin":        {Accuracy: 2, Damage: 0, Speed: 1, Mastery: 1},
		"berserker":       {Accuracy: 0, Damage: 2, Speed: 1, Mastery: 1},
		"commando":        {Accuracy: 1, Damage: 1, Speed: 0, Mastery: 2},
		"gunzerker":       {Accuracy: 1, Damage: 2, Speed: 0, Mastery: 1},
		"hunter":          {Accuracy: 2, Damage: 1, Speed: 0, Mastery: 1},
		"mechromancer":    {Accuracy: 0, Damage: 1, Speed: 1, Mastery: 2},
		"psycho":          {Accuracy: 1, Damage: 2, Speed: 1, Mastery: 2},
		"lightwalk_siren": {Accuracy: 1, Damage: 1, Speed: 2, Mastery: 0},
		"phaselock_siren": {Accuracy: 0, Damage: 1, Speed: 1, Mastery: 2},
		"soldier":         {Accuracy: 1, Damage: 0, Speed: 1, Mastery: 2},
	}
	for id, want := range classes {
		c, ok := reg.Class(id)
		require.True(t, ok, id)
		assert.Equal(t, want, c.Bonuses, id)
	}

	archetypes := map[string]ruleset.Attributes{
		"none":         {},
		"enforcer":     {Accuracy: 1, Damage: 4, Speed: 2, Mastery: 0},
		"elementalist": {Accuracy: 0, Damage: 2, Speed: 1, Mastery: 4},
		"deadeye":      {Accuracy: 4, Damage: 1, Speed: 0, Mastery: 2},
		"guardian":     {Accuracy: 2, Damage: 0, Speed: 4, Mastery: 1},
	}
	for id, want := range archetypes {
		a, ok := reg.Archetype(id)
		require.True(t, ok, id)
		assert.Equal(t, want, a.Bonuses, id)
	}
}

func TestRegistry_LooseIDMatching(t *testing.T) {
	reg := ruleset.Default()
	for _, id := range []string{"lightwalk_siren", "lightwalkSiren", "Lightwalk Siren", "LIGHTWALK-SIREN"} {
		c, ok := reg.Class(id)
		require.True(t, ok, id)
		assert.Equal(t, "Siren (Lightwalk)", c.Name)
	}
	_, ok := reg.Class("paladin")
	assert.False(t, ok)
	_, ok = reg.Archetype("")
	assert.False(t, ok)
}

func TestNewRegistry_RejectsBadEntries(t *testing.T) {
	_, err := ruleset.NewRegistry(
		[]*ruleset.Class{{ID: "hunter", Name: "Hunter"}, {ID: "Hunter", Name: "Hunter"}, {ID: "", Name: "X"}},
		[]*ruleset.Archetype{{ID: "none", Name: ""}},
	)
	require.Error(t, err)
	assert.ErrorContains(t, err, `class "Hunter": duplicate id`)
	assert.ErrorContains(t, err, `class "": id and name must be non-empty`)
	assert.ErrorContains(t, err, `archetype "none": id and name must be non-empty`)
	assert.ErrorContains(t, err, `classes: missing "none"`)
	assert.ErrorContains(t, err, `archetypes: missing "none"`)
}

func TestLoadDir_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "classes", "none.yaml"), "id: none\nname: \"--none--\"\n")
	writeFile(t, filepath.Join(dir, "classes", "bandit.yaml"), `
id: bandit
name: "Bandit"
order: 1
description: "Raids convoys for a living."
attributes:
  accuracy: 1
  damage: 3
`)
	writeFile(t, filepath.Join(dir, "classes", "README.md"), "ignored")
	writeFile(t, filepath.Join(dir, "archetypes", "none.yml"), "id: none\nname: \"--none--\"\n")

	reg, err := ruleset.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, reg.Classes(), 2)
	c, ok := reg.Class("bandit")
	require.True(t, ok)
	assert.Equal(t, "Raids convoys for a living.", c.Description)
	assert.Equal(t, ruleset.Attributes{Accuracy: 1, Damage: 3}, c.Bonuses)
	assert.Len(t, reg.Archetypes(), 1)
}

func TestLoad_Errors(t *testing.T) {
	_, err := ruleset.Load(fstest.MapFS{
		"classes/none.yaml":    {Data: []byte("id: [")},
		"archetypes/none.yaml": {Data: []byte("id: none\nname: n\n")},
	})
	assert.ErrorContains(t, err, "parsing class file none.yaml")

	_, err = ruleset.Load(fstest.MapFS{
		"classes/none.yaml":    {Data: []byte("id: none\nname: n\n")},
		"archetypes/none.yaml": {Data: []byte("attributes: 7")},
	})
	assert.ErrorContains(t, err, "parsing archetype file none.yaml")

	_, err = ruleset.LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestAttributes_AddGetWith(t *testing.T) {
	a := ruleset.Attributes{Accuracy: 1, Damage: 2, Speed: 3, Mastery: 4}
	assert.Equal(t, ruleset.Attributes{Accuracy: 2, Damage: 4, Speed: 6, Mastery: 8}, a.Add(a))

	v, ok := a.Get(ruleset.Speed)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = a.Get("luck")
	assert.False(t, ok)

	b, err := a.With(ruleset.Mastery, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, b.Mastery)
	assert.Equal(t, 4, a.Mastery, "With must not modify the receiver")
	_, err = a.With("luck", 1)
	assert.ErrorContains(t, err, `unknown attribute "luck"`)
}

func TestAttributes_AddIsCommutative(t *testing.T) {
	gen := rapid.Custom(func(rt *rapid.T) ruleset.Attributes {
		n := rapid.IntRange(-20, 20)
		return ruleset.Attributes{
			Accuracy: n.Draw(rt, "acc"), Damage: n.Draw(rt, "dmg"),
			Speed: n.Draw(rt, "spd"), Mastery: n.Draw(rt, "mst"),
		}
	})
	rapid.Check(t, func(rt *rapid.T) {
		a, b := gen.Draw(rt, "a"), gen.Draw(rt, "b")
		assert.Equal(rt, a.Add(b), b.Add(a))
	})
}

func TestAttributeLabels(t *testing.T) {
	labels := ruleset.AttributeLabels()
	require.Len(t, labels, 4)
	for i, l := range labels {
		assert.Equal(t, i, l.Position)
	}
	assert.Equal(t, []string{"ACC", "DMG", "SPD", "MST"},
		[]string{labels[0].Shorthand, labels[1].Shorthand, labels[2].Shorthand, labels[3].Shorthand})
	assert.Equal(t, "DMG", ruleset.Shorthand(ruleset.Damage))
	assert.Equal(t, "<luck>", ruleset.Shorthand("luck"))
}
