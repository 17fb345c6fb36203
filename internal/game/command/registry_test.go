package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("gun")
	assert.True(t, ok)
	assert.Equal(t, "gun", cmd.Name)
	assert.Equal(t, HandlerGun, cmd.Handler)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("teleport")
	assert.False(t, ok)
}

func TestResolve_AllCommands(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
	}{
		{"gun", HandlerGun},
		{"g", HandlerGun},
		{"loot", HandlerLoot},
		{"l", HandlerLoot},
		{"element", HandlerElement},
		{"el", HandlerElement},
		{"roll", HandlerRoll},
		{"r", HandlerRoll},
		{"sheet", HandlerSheet},
		{"cs", HandlerSheet},
		{"list", HandlerList},
		{"ls", HandlerList},
		{"help", HandlerHelp},
		{"?", HandlerHelp},
		{"quit", HandlerQuit},
		{"exit", HandlerQuit},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
	}
}

func TestCommands_RegistrationOrder(t *testing.T) {
	r := DefaultRegistry()
	var names []string
	for _, c := range r.Commands() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"gun", "loot", "element", "roll", "sheet", "list", "help", "quit"}, names)
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestNewRegistry_AliasShadowsName(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "gun", Handler: "a"},
		{Name: "pistol", Aliases: []string{"gun"}, Handler: "b"},
	})
	assert.ErrorContains(t, err, `alias "gun" conflicts with command name`)
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	for _, c := range CategoryOrder() {
		assert.Contains(t, cats, c)
	}
	require.Len(t, cats[CategoryGear], 4)
	assert.Equal(t, "element", cats[CategoryGear][0].Name)
	assert.Equal(t, "roll", cats[CategoryGear][3].Name)
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}
