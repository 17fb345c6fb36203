package loot

import (
	"go.uber.org/zap"

	"github.com/rowolff/bb-character-sheet/internal/game/dice"
)

// Observer is told about every pile set rolled.
type Observer interface {
	LootGenerated(rank, piles int)
}

type nopObserver struct{}

func (nopObserver) LootGenerated(int, int) {}

// Generator rolls loot piles from a Table.
type Generator struct {
	table    *Table
	src      dice.Source
	logger   *zap.Logger
	observer Observer
}

// NewGenerator builds a Generator. A nil observer is allowed.
//
// Precondition: table must be non-nil; src and logger must be non-nil.
func NewGenerator(table *Table, src dice.Source, logger *zap.Logger, observer Observer) *Generator {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Generator{table: table, src: src, logger: logger, observer: observer}
}

// Table returns the reward table in use.
func (g *Generator) Table() *Table {
	return g.table
}

// Generate clamps rank, finds its pile count n, and for each pile k in
// [0, n) draws a random row and reads column k. A row too short for k is
// skipped with a warning instead of read.
//
// Postcondition: len(result) <= PilesFor(rank).
func (g *Generator) Generate(rank int) []string {
	clamped := ClampRank(rank)
	n := g.table.PilesFor(clamped)
	if n == 0 {
		g.logger.Warn("no loot band for rank", zap.Int("rank", clamped))
	}

	rewards := make([]string, 0, n)
	for k := 0; k < n && len(g.table.Rows) > 0; k++ {
		row := dice.Pick(g.src, g.table.Rows)
		if k >= len(row) {
			g.logger.Warn("loot row too short for pile",
				zap.Int("pile", k),
				zap.Int("columns", len(row)),
			)
			continue
		}
		rewards = append(rewards, row[k])
	}

	g.logger.Debug("generated loot",
		zap.Int("rank", rank),
		zap.Int("clamped_rank", clamped),
		zap.Strings("rewards", rewards),
	)
	g.observer.LootGenerated(clamped, len(rewards))
	return rewards
}
