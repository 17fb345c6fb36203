package handlers

import (
	"github.com/rowolff/bb-character-sheet/internal/game/command"
)

// commandContext carries the inputs one command handler needs.
type commandContext struct {
	cmd    *command.Command
	parsed command.ParseResult
}

// reply is what a command sends back. lines are written in order; quit
// ends the session after writing.
type reply struct {
	lines []string
	quit  bool
}

// commandHandlerFunc runs one command. A returned error is shown to the
// user; it never ends the session.
type commandHandlerFunc func(t *LootTerminal, cctx *commandContext) (reply, error)

// CommandHandlers returns the handler identifiers the terminal can run.
// Every command.Handler constant in BuiltinCommands must be present.
func CommandHandlers() []string {
	ids := make([]string, 0, len(commandHandlerMap))
	for id := range commandHandlerMap {
		ids = append(ids, id)
	}
	return ids
}

// commandHandlerMap is the single source of truth for terminal dispatch.
// New commands need a Handler constant in commands.go and an entry here.
var commandHandlerMap = map[string]commandHandlerFunc{
	command.HandlerGun:     handleGun,
	command.HandlerLoot:    handleLoot,
	command.HandlerElement: handleElement,
	command.HandlerRoll:    handleRoll,
	command.HandlerSheet:   handleSheet,
	command.HandlerList:    handleList,
	command.HandlerHelp:    handleHelp,
	command.HandlerQuit:    handleQuit,
}

func handleGun(t *LootTerminal, cctx *commandContext) (reply, error) {
	c, err := command.ParseGunArgs(t.guns.Tables(), cctx.parsed.Args)
	if err != nil {
		return reply{}, err
	}
	return reply{lines: RenderItem(t.guns.Generate(c))}, nil
}

func handleLoot(t *LootTerminal, cctx *commandContext) (reply, error) {
	rank, err := command.ParseRank(cctx.parsed.Args)
	if err != nil {
		return reply{}, err
	}
	return reply{lines: RenderLoot(rank, t.loot.Generate(rank))}, nil
}

func handleElement(t *LootTerminal, cctx *commandContext) (reply, error) {
	r, bonus, err := command.ParseElementArgs(cctx.parsed.Args)
	if err != nil {
		return reply{}, err
	}
	outcome := t.guns.ResolveElemental(r, bonus)
	return reply{lines: []string{RenderElementRoll(r, bonus, outcome)}}, nil
}

func handleRoll(t *LootTerminal, cctx *commandContext) (reply, error) {
	expr, err := command.ParseRollArgs(cctx.parsed.Args)
	if err != nil {
		return reply{}, err
	}
	return reply{lines: []string{RenderRoll(t.roller.Roll(expr))}}, nil
}

func handleSheet(t *LootTerminal, cctx *commandContext) (reply, error) {
	req, err := command.ParseSheetArgs(cctx.parsed.Args)
	if err != nil {
		return reply{}, err
	}
	sheet, err := t.sheets.Build(req.Name, req.Class, req.Archetype)
	if err != nil {
		return reply{}, err
	}
	return reply{lines: RenderSheet(sheet)}, nil
}

func handleList(t *LootTerminal, cctx *commandContext) (reply, error) {
	topic, err := command.ParseListTopic(cctx.parsed.Args)
	if err != nil {
		return reply{}, err
	}
	return reply{lines: RenderList(topic, t.guns.Tables(), t.rules)}, nil
}

func handleHelp(t *LootTerminal, _ *commandContext) (reply, error) {
	return reply{lines: RenderHelp(t.registry)}, nil
}

func handleQuit(_ *LootTerminal, _ *commandContext) (reply, error) {
	return reply{lines: []string{"Good hunting, Vault Hunter."}, quit: true}, nil
}
