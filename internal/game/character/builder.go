package character

import (
	"fmt"

	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

// Builder creates sheets from class and archetype IDs.
type Builder struct {
	registry *ruleset.Registry
}

// NewBuilder returns a Builder resolving IDs through registry.
//
// Precondition: registry must be non-nil.
func NewBuilder(registry *ruleset.Registry) *Builder {
	return &Builder{registry: registry}
}

// Build constructs a sheet with DefaultBase. An empty class or archetype ID
// selects "none".
//
// Postcondition: Returns a sheet with non-nil Class and Archetype, or a
// non-nil error naming the unknown ID.
func (b *Builder) Build(name, classID, archetypeID string) (*Sheet, error) {
	if classID == "" {
		classID = ruleset.NoneID
	}
	if archetypeID == "" {
		archetypeID = ruleset.NoneID
	}
	class, ok := b.registry.Class(classID)
	if !ok {
		return nil, fmt.Errorf("unknown class %q", classID)
	}
	arch, ok := b.registry.Archetype(archetypeID)
	if !ok {
		return nil, fmt.Errorf("unknown archetype %q", archetypeID)
	}
	return &Sheet{
		Name:      name,
		Base:      DefaultBase,
		Class:     class,
		Archetype: arch,
	}, nil
}
