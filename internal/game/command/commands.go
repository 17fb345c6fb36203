// Package command provides the loot terminal's command registry, parser,
// and argument parsing for each built-in command.
package command

// Categories for organizing commands.
const (
	CategoryGear      = "gear"
	CategoryCharacter = "character"
	CategoryReference = "reference"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to session handlers.
const (
	HandlerGun     = "gun"
	HandlerLoot    = "loot"
	HandlerElement = "element"
	HandlerRoll    = "roll"
	HandlerSheet   = "sheet"
	HandlerList    = "list"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage is the argument synopsis shown by help.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command for the help listing.
	Category string
	// Handler names the session handler that runs the command.
	Handler string
}

// BuiltinCommands returns all built-in terminal commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "gun", Aliases: []string{"g"}, Usage: "[type=<weapon>] [maker=<manufacturer>] [rarity=<rarity>] [level=<1-30>]",
			Help: "Roll a gun, optionally pinning any part", Category: CategoryGear, Handler: HandlerGun},
		{Name: "loot", Aliases: []string{"l"}, Usage: "<rank>",
			Help: "Roll loot piles for a party rank", Category: CategoryGear, Handler: HandlerLoot},
		{Name: "element", Aliases: []string{"el"}, Usage: "<rarity> [bonus]",
			Help: "Roll on the elemental table", Category: CategoryGear, Handler: HandlerElement},
		{Name: "roll", Aliases: []string{"r"}, Usage: "<dice, e.g. 2d6+3>",
			Help: "Roll dice", Category: CategoryGear, Handler: HandlerRoll},

		{Name: "sheet", Aliases: []string{"cs"}, Usage: "<class> [archetype] [name=<name>]",
			Help: "Show a character sheet", Category: CategoryCharacter, Handler: HandlerSheet},

		{Name: "list", Aliases: []string{"ls"}, Usage: "<types|makers|rarities|classes|archetypes>",
			Help: "List catalog entries", Category: CategoryReference, Handler: HandlerList},

		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Disconnect", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// CategoryOrder lists categories in help display order.
func CategoryOrder() []string {
	return []string{CategoryGear, CategoryCharacter, CategoryReference, CategorySystem}
}
