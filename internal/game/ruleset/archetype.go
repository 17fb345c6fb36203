package ruleset

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Archetype is a play-style archetype and the attribute bonuses it grants.
//
// Precondition: ID and Name must be non-empty after loading.
type Archetype struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Order       int        `yaml:"order" json:"-"`
	Description string     `yaml:"description" json:"description"`
	Bonuses     Attributes `yaml:"attributes" json:"attributes"`
}

// LoadArchetypes reads every .yaml file at the root of fsys as an Archetype.
//
// Postcondition: Returns all parsed archetypes (may be empty slice) or a non-nil error.
func LoadArchetypes(fsys fs.FS) ([]*Archetype, error) {
	files, err := yamlFiles(fsys)
	if err != nil {
		return nil, err
	}
	archetypes := make([]*Archetype, 0, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		var a Archetype
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("parsing archetype file %s: %w", name, err)
		}
		archetypes = append(archetypes, &a)
	}
	return archetypes, nil
}
