// Package loot rolls rank-scaled loot piles from a reward table.
package loot

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// MinRank and MaxRank bound the ranks a table must cover.
	MinRank = 1
	MaxRank = 100

	// File is the content file name inside a loot directory.
	File = "loot.yaml"
)

//go:embed content/loot.yaml
var embedded embed.FS

// RankBand maps an inclusive rank range to a pile count.
type RankBand struct {
	Min   int `yaml:"min" json:"min"`
	Max   int `yaml:"max" json:"max"`
	Piles int `yaml:"piles" json:"piles"`
}

// Table is the rank band list plus the reward rows. Column k of every row
// holds the reward for pile k.
type Table struct {
	Ranks []RankBand `yaml:"ranks" json:"ranks"`
	Rows  [][]string `yaml:"rows" json:"rows"`
}

// ClampRank forces rank into [MinRank, MaxRank].
func ClampRank(rank int) int {
	switch {
	case rank < MinRank:
		return MinRank
	case rank > MaxRank:
		return MaxRank
	default:
		return rank
	}
}

// PilesFor returns the pile count of the band containing the clamped rank,
// or 0 if no band contains it.
func (t *Table) PilesFor(rank int) int {
	rank = ClampRank(rank)
	for _, b := range t.Ranks {
		if rank >= b.Min && rank <= b.Max {
			return b.Piles
		}
	}
	return 0
}

// MaxPiles is the largest pile count of any band.
func (t *Table) MaxPiles() int {
	most := 0
	for _, b := range t.Ranks {
		if b.Piles > most {
			most = b.Piles
		}
	}
	return most
}

// Validate checks that the bands cover 1..100 in order and that every row
// is wide enough for the largest pile count. All violations are reported.
func (t *Table) Validate() error {
	var errs []error
	if len(t.Ranks) == 0 {
		errs = append(errs, errors.New("ranks: table is empty"))
	}
	next := MinRank
	for i, b := range t.Ranks {
		switch {
		case b.Min > b.Max:
			errs = append(errs, fmt.Errorf("ranks: band %d (%d-%d) is inverted", i+1, b.Min, b.Max))
		case b.Min != next:
			errs = append(errs, fmt.Errorf("ranks: band %d-%d breaks coverage at %d", b.Min, b.Max, next))
		}
		if b.Piles < 1 {
			errs = append(errs, fmt.Errorf("ranks: band %d-%d must drop at least one pile", b.Min, b.Max))
		}
		next = b.Max + 1
	}
	if len(t.Ranks) > 0 && next != MaxRank+1 {
		errs = append(errs, fmt.Errorf("ranks: bands end at %d, want %d", next-1, MaxRank))
	}

	if len(t.Rows) == 0 {
		errs = append(errs, errors.New("rows: table is empty"))
	}
	width := t.MaxPiles()
	for i, row := range t.Rows {
		if len(row) < width {
			errs = append(errs, fmt.Errorf("rows: row %d has %d columns, want at least %d", i+1, len(row), width))
		}
		for j, reward := range row {
			if reward == "" {
				errs = append(errs, fmt.Errorf("rows: row %d column %d is empty", i+1, j+1))
			}
		}
	}
	return errors.Join(errs...)
}

// LoadTable decodes and validates File from fsys.
func LoadTable(fsys fs.FS) (*Table, error) {
	data, err := fs.ReadFile(fsys, File)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", File, err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", File, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", File, err)
	}
	return &t, nil
}

// LoadTableDir loads File from a directory on disk.
func LoadTableDir(dir string) (*Table, error) {
	return LoadTable(os.DirFS(dir))
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
	defaultErr   error
)

// Default returns the embedded loot table, decoded once per process.
//
// Postcondition: panics if the embedded content is invalid.
func Default() *Table {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "content")
		if err != nil {
			defaultErr = err
			return
		}
		defaultTable, defaultErr = LoadTable(sub)
	})
	if defaultErr != nil {
		panic("loot: embedded table is invalid: " + defaultErr.Error())
	}
	return defaultTable
}
