package gear

// Modifier is a named narrative effect: a prefix or a red-text line.
type Modifier struct {
	Name   string `yaml:"name" json:"name"`
	Effect string `yaml:"effect" json:"effect"`
}

// Narrative holds the flat modifier lists.
type Narrative struct {
	Prefixes []Modifier `yaml:"prefixes"`
	RedText  []Modifier `yaml:"red_text"`
}
