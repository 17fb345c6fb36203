package main

import (
	"github.com/spf13/cobra"

	"github.com/rowolff/bb-character-sheet/internal/api"
	"github.com/rowolff/bb-character-sheet/internal/frontend/handlers"
	"github.com/rowolff/bb-character-sheet/internal/game/command"
	"github.com/rowolff/bb-character-sheet/internal/game/loot"
)

func newLootCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "loot <rank>",
		Short: "Roll the loot piles for an encounter rank",
		Long: `Roll the loot piles for an encounter rank. Ranks outside 1-100 are
clamped.

  Example: bbgen loot 13`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rank, err := command.ParseRank(args)
			if err != nil {
				return err
			}
			s, logger, err := opts.stack()
			if err != nil {
				return err
			}
			defer logger.Sync()

			rank = loot.ClampRank(rank)
			piles := s.Loot.Generate(rank)
			return opts.print(cmd, api.LootResponse{Rank: rank, Piles: piles}, handlers.RenderLoot(rank, piles))
		},
	}
}
