package main

import (
	"github.com/spf13/cobra"

	"github.com/rowolff/bb-character-sheet/internal/api"
	"github.com/rowolff/bb-character-sheet/internal/frontend/handlers"
	"github.com/rowolff/bb-character-sheet/internal/game/character"
)

func newSheetCmd(opts *globalOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "sheet <class> [archetype]",
		Short: "Build a character sheet",
		Long: `Build a character sheet from a class and an optional archetype.
Use "none" to leave either empty.

  Example: bbgen sheet psycho enforcer --name Krieg`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, logger, err := opts.stack()
			if err != nil {
				return err
			}
			defer logger.Sync()

			archetype := ""
			if len(args) == 2 {
				archetype = args[1]
			}
			sheet, err := character.NewBuilder(s.Content.Rules).Build(name, args[0], archetype)
			if err != nil {
				return err
			}
			return opts.print(cmd, api.NewSheetResponse(sheet), handlers.RenderSheet(sheet))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "character name")
	return cmd
}
