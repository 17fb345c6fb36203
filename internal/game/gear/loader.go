package gear

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Content file names inside a tables directory.
const (
	WeaponsFile       = "weapons.yaml"
	ManufacturersFile = "manufacturers.yaml"
	ElementalFile     = "elemental.yaml"
	PairingsFile      = "pairings.yaml"
	NarrativeFile     = "narrative.yaml"
)

//go:embed content/*.yaml
var embedded embed.FS

type tierDoc struct {
	Hits  int `yaml:"hits"`
	Crits int `yaml:"crits"`
}

type bandDoc struct {
	Levels [2]int  `yaml:"levels"`
	Low    tierDoc `yaml:"low"`
	Medium tierDoc `yaml:"medium"`
	High   tierDoc `yaml:"high"`
	Damage string  `yaml:"damage"`
}

type weaponDoc struct {
	Key   string    `yaml:"key"`
	Name  string    `yaml:"name"`
	Range string    `yaml:"range"`
	Bonus string    `yaml:"bonus"`
	Bands []bandDoc `yaml:"bands"`
}

type weaponsFile struct {
	Tiers struct {
		Low    string `yaml:"low"`
		Medium string `yaml:"medium"`
		High   string `yaml:"high"`
	} `yaml:"tiers"`
	Weapons []weaponDoc `yaml:"weapons"`
}

type manufacturerDoc struct {
	Key            string            `yaml:"key"`
	Name           string            `yaml:"name"`
	Info           string            `yaml:"info"`
	Elemental      ElementalRule     `yaml:"elemental"`
	Flavor         map[Rarity]string `yaml:"flavor"`
	ElementalBonus map[Rarity]int    `yaml:"elemental_bonus"`
	Builds         *[]string         `yaml:"builds"`
}

type manufacturersFile struct {
	Manufacturers []manufacturerDoc `yaml:"manufacturers"`
}

type outcomeDoc struct {
	Types  []DamageType `yaml:"types"`
	Damage string       `yaml:"damage"`
}

type elementalBandDoc struct {
	Rolls    [2]int                `yaml:"rolls"`
	Outcomes map[Rarity]outcomeDoc `yaml:"outcomes"`
}

type elementalFile struct {
	Bands []elementalBandDoc `yaml:"bands"`
}

type pairingsFile struct {
	Pairings [][][2]string `yaml:"pairings"`
	Rarities [][]RarityRoll `yaml:"rarities"`
}

// LoadTables decodes the five content files from fsys and validates the
// result.
//
// Postcondition: Returns valid Tables or a non-nil error naming the file.
func LoadTables(fsys fs.FS) (*Tables, error) {
	var wf weaponsFile
	if err := decodeFile(fsys, WeaponsFile, &wf); err != nil {
		return nil, err
	}
	var mf manufacturersFile
	if err := decodeFile(fsys, ManufacturersFile, &mf); err != nil {
		return nil, err
	}
	var ef elementalFile
	if err := decodeFile(fsys, ElementalFile, &ef); err != nil {
		return nil, err
	}
	var pf pairingsFile
	if err := decodeFile(fsys, PairingsFile, &pf); err != nil {
		return nil, err
	}
	var nf Narrative
	if err := decodeFile(fsys, NarrativeFile, &nf); err != nil {
		return nil, err
	}

	t := NewTables(convertWeapons(wf), convertManufacturers(mf))
	t.Elemental = convertElemental(ef)
	t.Narrative = nf
	t.Rarities = RarityTable{Rows: pf.Rarities}

	pairings, err := t.convertPairings(pf.Pairings)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", PairingsFile, err)
	}
	t.Pairings = pairings

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating tables: %w", err)
	}
	return t, nil
}

// LoadTablesDir loads tables from a directory on disk.
//
// Precondition: dir must be a readable directory containing the five content files.
func LoadTablesDir(dir string) (*Tables, error) {
	return LoadTables(os.DirFS(dir))
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the embedded tables, decoded once per process.
//
// Postcondition: panics if the embedded content is invalid.
func Default() *Tables {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "content")
		if err != nil {
			defaultErr = err
			return
		}
		defaultTables, defaultErr = LoadTables(sub)
	})
	if defaultErr != nil {
		panic("gear: embedded tables are invalid: " + defaultErr.Error())
	}
	return defaultTables
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func convertWeapons(wf weaponsFile) []*WeaponType {
	low, med, high := wf.Tiers.Low, wf.Tiers.Medium, wf.Tiers.High
	out := make([]*WeaponType, 0, len(wf.Weapons))
	for _, d := range wf.Weapons {
		w := &WeaponType{
			Key:   strings.ToUpper(d.Key),
			Name:  d.Name,
			Range: d.Range,
			Bonus: d.Bonus,
			Bands: make([]LevelBand, 0, len(d.Bands)),
		}
		for _, b := range d.Bands {
			w.Bands = append(w.Bands, LevelBand{
				Min: b.Levels[0],
				Max: b.Levels[1],
				Stats: Stats{
					Low:    RollTier{Label: low, Hits: b.Low.Hits, Crits: b.Low.Crits},
					Medium: RollTier{Label: med, Hits: b.Medium.Hits, Crits: b.Medium.Crits},
					High:   RollTier{Label: high, Hits: b.High.Hits, Crits: b.High.Crits},
					Damage: b.Damage,
				},
			})
		}
		sort.Slice(w.Bands, func(i, j int) bool { return w.Bands[i].Min < w.Bands[j].Min })
		out = append(out, w)
	}
	return out
}

func convertManufacturers(mf manufacturersFile) []*Manufacturer {
	out := make([]*Manufacturer, 0, len(mf.Manufacturers))
	for _, d := range mf.Manufacturers {
		m := &Manufacturer{
			Key:            strings.ToUpper(d.Key),
			Name:           d.Name,
			Info:           d.Info,
			Rule:           ElementalRule(strings.ToUpper(string(d.Elemental))),
			Flavor:         d.Flavor,
			ElementalBonus: d.ElementalBonus,
		}
		if d.Builds != nil {
			m.DeclaresBuilds = true
			for _, b := range *d.Builds {
				m.Builds = append(m.Builds, strings.ToUpper(b))
			}
		}
		out = append(out, m)
	}
	return out
}

func convertElemental(ef elementalFile) ElementalTable {
	bands := make([]ElementalBand, 0, len(ef.Bands))
	for _, d := range ef.Bands {
		b := ElementalBand{Min: d.Rolls[0], Max: d.Rolls[1], Outcomes: make(map[Rarity]ElementalOutcome, len(d.Outcomes))}
		for r, o := range d.Outcomes {
			b.Outcomes[r] = ElementalOutcome{Types: o.Types, AddedDamage: o.Damage}
		}
		bands = append(bands, b)
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].Min < bands[j].Min })
	return ElementalTable{Bands: bands}
}

func (t *Tables) convertPairings(rows [][][2]string) (PairingTable, error) {
	out := PairingTable{Rows: make([][]Pairing, 0, len(rows))}
	for i, row := range rows {
		cells := make([]Pairing, 0, len(row))
		for _, cell := range row {
			var p Pairing
			if !strings.EqualFold(cell[0], WildcardKey) {
				w, ok := t.Weapon(cell[0])
				if !ok {
					return PairingTable{}, fmt.Errorf("row %d: unknown weapon %q", i+1, cell[0])
				}
				p.Weapon = ConcreteWeapon(w)
			}
			if !strings.EqualFold(cell[1], WildcardKey) {
				m, ok := t.Manufacturer(cell[1])
				if !ok {
					return PairingTable{}, fmt.Errorf("row %d: unknown manufacturer %q", i+1, cell[1])
				}
				p.Manufacturer = ConcreteManufacturer(m)
			}
			cells = append(cells, p)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out, nil
}
