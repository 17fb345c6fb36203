// Package handlers implements the loot terminal session served over
// Telnet: the command loop, dispatch, and text rendering.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/frontend/telnet"
	"github.com/rowolff/bb-character-sheet/internal/game/character"
	"github.com/rowolff/bb-character-sheet/internal/game/command"
	"github.com/rowolff/bb-character-sheet/internal/game/dice"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
	"github.com/rowolff/bb-character-sheet/internal/game/loot"
	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

// Prompt is written before every command.
var Prompt = telnet.Colorize(telnet.BrightYellow, "loot> ")

// LootTerminal runs the interactive gun and loot session for one Telnet
// client at a time. It is safe to share across sessions.
type LootTerminal struct {
	registry *command.Registry
	guns     *generator.Generator
	loot     *loot.Generator
	rules    *ruleset.Registry
	sheets   *character.Builder
	roller   *dice.Roller
	logger   *zap.Logger
}

// NewLootTerminal wires a terminal to the generators. src feeds the
// "roll" command; it may be shared with the generators.
//
// Precondition: all arguments are non-nil.
func NewLootTerminal(guns *generator.Generator, lootGen *loot.Generator, rules *ruleset.Registry, src dice.Source, logger *zap.Logger) *LootTerminal {
	return &LootTerminal{
		registry: command.DefaultRegistry(),
		guns:     guns,
		loot:     lootGen,
		rules:    rules,
		sheets:   character.NewBuilder(rules),
		roller:   dice.NewLoggedRoller(src, logger),
		logger:   logger,
	}
}

// HandleSession implements telnet.SessionHandler.
//
// Postcondition: returns nil after "quit" or a client hangup, ctx.Err()
// on cancellation, or a wrapped I/O error.
func (t *LootTerminal) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	log := t.logger.With(zap.String("session_id", conn.ID().String()))

	if err := conn.WriteLines(banner()); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := conn.WritePrompt(Prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, readErr := conn.ReadLine()
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading input: %w", readErr)
		}

		quit, err := t.execute(conn, log, line)
		if err != nil {
			return err
		}
		if quit || readErr != nil {
			return nil
		}
	}
}

// execute runs one input line.
func (t *LootTerminal) execute(conn *telnet.Conn, log *zap.Logger, line string) (quit bool, err error) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return false, nil
	}

	cmd, ok := t.registry.Resolve(parsed.Command)
	if !ok {
		return false, conn.WriteLine(RenderError(fmt.Sprintf("Unknown command %q. Type help for a list.", parsed.Command)))
	}
	handler, ok := commandHandlerMap[cmd.Handler]
	if !ok {
		log.Error("command has no handler", zap.String("handler", cmd.Handler))
		return false, conn.WriteLine(RenderError("That command is not available here."))
	}

	log.Debug("command", zap.String("name", cmd.Name), zap.Strings("args", parsed.Args))
	r, cmdErr := handler(t, &commandContext{cmd: cmd, parsed: parsed})
	if cmdErr != nil {
		return false, conn.WriteLine(RenderError(cmdErr.Error()))
	}
	if len(r.lines) > 0 {
		if err := conn.WriteLines(r.lines); err != nil {
			return false, err
		}
	}
	return r.quit, nil
}

func banner() []string {
	return []string{
		telnet.Colorize(telnet.Bold+telnet.BrightYellow, "BUNKERS & BADASSES LOOT TERMINAL"),
		telnet.Colorize(telnet.Dim, "Type help for commands. Try: gun rarity=legendary level=12"),
		"",
	}
}
