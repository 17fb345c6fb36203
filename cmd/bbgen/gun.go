package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rowolff/bb-character-sheet/internal/api"
	"github.com/rowolff/bb-character-sheet/internal/frontend/handlers"
	"github.com/rowolff/bb-character-sheet/internal/game/command"
)

func newGunCmd(opts *globalOptions) *cobra.Command {
	var (
		weapon string
		maker  string
		rarity string
		level  int
		count  int
	)
	cmd := &cobra.Command{
		Use:   "gun",
		Short: "Roll a gun",
		Long: `Roll a gun. Unset options are rolled; "choice" or "any" picks a
wildcard weapon type or manufacturer.

  Example: bbgen gun --type sniper_rifle --maker "Black Powder" --rarity legendary --level 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			s, logger, err := opts.stack()
			if err != nil {
				return err
			}
			defer logger.Sync()

			args := []string{"level=" + strconv.Itoa(level)}
			if weapon != "" {
				args = append(args, "type="+weapon)
			}
			if maker != "" {
				args = append(args, "maker="+maker)
			}
			if rarity != "" {
				args = append(args, "rarity="+rarity)
			}
			c, err := command.ParseGunArgs(s.Guns.Tables(), args)
			if err != nil {
				return err
			}

			responses := make([]api.GunResponse, 0, count)
			var lines []string
			for i := 0; i < count; i++ {
				item := s.Guns.Generate(c)
				responses = append(responses, api.NewGunResponse(uuid.New(), item))
				if i > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, handlers.RenderItem(item)...)
			}
			if count == 1 {
				return opts.print(cmd, responses[0], lines)
			}
			return opts.print(cmd, responses, lines)
		},
	}
	cmd.Flags().StringVar(&weapon, "type", "", "weapon type key or name")
	cmd.Flags().StringVar(&maker, "maker", "", "manufacturer key or name")
	cmd.Flags().StringVar(&rarity, "rarity", "", "rarity (common, uncommon, rare, epic, legendary)")
	cmd.Flags().IntVar(&level, "level", command.DefaultLevel, "gun level (1-30)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of guns to roll")
	return cmd
}
