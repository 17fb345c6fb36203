// Package ruleset holds the character-sheet rule data: the four attributes
// and the class and archetype bonus tables.
package ruleset

import "fmt"

// Attribute IDs.
const (
	Accuracy = "accuracy"
	Damage   = "damage"
	Speed    = "speed"
	Mastery  = "mastery"
)

// Attributes is one value per attribute.
type Attributes struct {
	Accuracy int `yaml:"accuracy" json:"accuracy"`
	Damage   int `yaml:"damage" json:"damage"`
	Speed    int `yaml:"speed" json:"speed"`
	Mastery  int `yaml:"mastery" json:"mastery"`
}

// Add returns the per-attribute sum of a and o.
func (a Attributes) Add(o Attributes) Attributes {
	return Attributes{
		Accuracy: a.Accuracy + o.Accuracy,
		Damage:   a.Damage + o.Damage,
		Speed:    a.Speed + o.Speed,
		Mastery:  a.Mastery + o.Mastery,
	}
}

// Get returns the value for id.
//
// Postcondition: ok is false if id is not an attribute ID.
func (a Attributes) Get(id string) (v int, ok bool) {
	switch id {
	case Accuracy:
		return a.Accuracy, true
	case Damage:
		return a.Damage, true
	case Speed:
		return a.Speed, true
	case Mastery:
		return a.Mastery, true
	}
	return 0, false
}

// With returns a copy of a with id set to v.
func (a Attributes) With(id string, v int) (Attributes, error) {
	switch id {
	case Accuracy:
		a.Accuracy = v
	case Damage:
		a.Damage = v
	case Speed:
		a.Speed = v
	case Mastery:
		a.Mastery = v
	default:
		return a, fmt.Errorf("unknown attribute %q", id)
	}
	return a, nil
}

// AttributeLabel is the display metadata of one attribute.
type AttributeLabel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Shorthand string `json:"shorthand"`
	Position  int    `json:"position"`
}

// AttributeLabels lists the attributes in sheet order.
func AttributeLabels() []AttributeLabel {
	return []AttributeLabel{
		{ID: Accuracy, Name: "Accuracy", Shorthand: "ACC", Position: 0},
		{ID: Damage, Name: "Damage", Shorthand: "DMG", Position: 1},
		{ID: Speed, Name: "Speed", Shorthand: "SPD", Position: 2},
		{ID: Mastery, Name: "Mastery", Shorthand: "MST", Position: 3},
	}
}

// Shorthand returns the three-letter label for id, or "<id>" if unknown.
func Shorthand(id string) string {
	for _, l := range AttributeLabels() {
		if l.ID == id {
			return l.Shorthand
		}
	}
	return fmt.Sprintf("<%s>", id)
}
