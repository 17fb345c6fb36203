package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/config"
	"github.com/rowolff/bb-character-sheet/internal/frontend/telnet"
	"github.com/rowolff/bb-character-sheet/internal/game/generator"
	"github.com/rowolff/bb-character-sheet/internal/observability"
	"github.com/rowolff/bb-character-sheet/internal/server"
)

// globalOptions are the persistent flags shared by the generator commands.
type globalOptions struct {
	seed       uint64
	contentDir string
	logLevel   string
	asJSON     bool
	color      bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "bbgen",
		Short: "Bunkers & Badasses gun, loot and character sheet generator",
		Long: `bbgen rolls Bunkers & Badasses guns, loot piles, elemental damage
and character sheets from the command line, or serves them over Telnet
and HTTP with "bbgen serve".`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for reproducible rolls (0 rolls from crypto/rand)")
	flags.StringVar(&opts.contentDir, "content-dir", "", "directory replacing the embedded content")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")
	flags.BoolVar(&opts.color, "color", false, "keep ANSI colours in text output")

	root.AddCommand(
		newGunCmd(opts),
		newLootCmd(opts),
		newElementCmd(opts),
		newSheetCmd(opts),
		newServeCmd(),
	)
	return root
}

// stack builds the generators for a one-shot command.
func (o *globalOptions) stack() (*server.Stack, *zap.Logger, error) {
	logger, err := observability.NewLogger(config.LoggingConfig{Level: o.logLevel, Format: "console"}, "bbgen")
	if err != nil {
		return nil, nil, err
	}
	s, err := server.NewStack(config.GeneratorConfig{
		Seed:                o.seed,
		ContentDir:          o.contentDir,
		MaxElementalRerolls: generator.DefaultMaxElementalRerolls,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, logger, nil
}

// print writes payload as indented JSON, or lines as text.
func (o *globalOptions) print(cmd *cobra.Command, payload any, lines []string) error {
	out := cmd.OutOrStdout()
	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	for _, line := range lines {
		if !o.color {
			line = telnet.StripANSI(line)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
