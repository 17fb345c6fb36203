package ruleset

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// NoneID is the class and archetype that grants no bonuses.
const NoneID = "none"

// Class is a playable class and the attribute bonuses it grants.
//
// Precondition: ID and Name must be non-empty after loading.
type Class struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Order       int        `yaml:"order" json:"-"`
	Description string     `yaml:"description" json:"description"`
	Bonuses     Attributes `yaml:"attributes" json:"attributes"`
}

// LoadClasses reads every .yaml file at the root of fsys as a Class.
//
// Postcondition: Returns all parsed classes (may be empty slice) or a non-nil error.
func LoadClasses(fsys fs.FS) ([]*Class, error) {
	files, err := yamlFiles(fsys)
	if err != nil {
		return nil, err
	}
	classes := make([]*Class, 0, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		var c Class
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing class file %s: %w", name, err)
		}
		classes = append(classes, &c)
	}
	return classes, nil
}
