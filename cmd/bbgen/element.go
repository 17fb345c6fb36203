package main

import (
	"github.com/spf13/cobra"

	"github.com/rowolff/bb-character-sheet/internal/api"
	"github.com/rowolff/bb-character-sheet/internal/frontend/handlers"
	"github.com/rowolff/bb-character-sheet/internal/game/gear"
)

func newElementCmd(opts *globalOptions) *cobra.Command {
	var bonus int
	cmd := &cobra.Command{
		Use:   "element <rarity>",
		Short: "Roll elemental damage for a rarity",
		Long: `Roll on the elemental table for a rarity, adding --bonus to the d100.

  Example: bbgen element epic --bonus 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rarity, err := gear.ParseRarity(args[0])
			if err != nil {
				return err
			}
			s, logger, err := opts.stack()
			if err != nil {
				return err
			}
			defer logger.Sync()

			outcome := s.Guns.ResolveElemental(rarity, bonus)
			return opts.print(cmd,
				api.ElementResponse{Rarity: rarity, Bonus: bonus, Element: outcome},
				[]string{handlers.RenderElementRoll(rarity, bonus, outcome)},
			)
		},
	}
	cmd.Flags().IntVar(&bonus, "bonus", 0, "bonus added to the percentile roll")
	return cmd
}
