package ruleset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
)

//go:embed content
var embedded embed.FS

// Registry provides lookup of classes and archetypes by ID. IDs match
// loosely: case and punctuation are ignored, so "lightwalkSiren" finds
// "lightwalk_siren".
type Registry struct {
	classes    []*Class
	archetypes []*Archetype
	classIdx   map[string]*Class
	archIdx    map[string]*Archetype
}

// NewRegistry indexes classes and archetypes, each sorted by Order.
//
// Postcondition: Returns an error listing every empty or duplicate ID and a
// missing "none" entry on either side.
func NewRegistry(classes []*Class, archetypes []*Archetype) (*Registry, error) {
	r := &Registry{
		classes:    append([]*Class(nil), classes...),
		archetypes: append([]*Archetype(nil), archetypes...),
		classIdx:   make(map[string]*Class, len(classes)),
		archIdx:    make(map[string]*Archetype, len(archetypes)),
	}
	sort.SliceStable(r.classes, func(i, j int) bool { return r.classes[i].Order < r.classes[j].Order })
	sort.SliceStable(r.archetypes, func(i, j int) bool { return r.archetypes[i].Order < r.archetypes[j].Order })

	var errs []error
	for _, c := range r.classes {
		key := normalizeID(c.ID)
		switch {
		case key == "" || c.Name == "":
			errs = append(errs, fmt.Errorf("class %q: id and name must be non-empty", c.ID))
		case r.classIdx[key] != nil:
			errs = append(errs, fmt.Errorf("class %q: duplicate id", c.ID))
		default:
			r.classIdx[key] = c
		}
	}
	for _, a := range r.archetypes {
		key := normalizeID(a.ID)
		switch {
		case key == "" || a.Name == "":
			errs = append(errs, fmt.Errorf("archetype %q: id and name must be non-empty", a.ID))
		case r.archIdx[key] != nil:
			errs = append(errs, fmt.Errorf("archetype %q: duplicate id", a.ID))
		default:
			r.archIdx[key] = a
		}
	}
	if r.classIdx[NoneID] == nil {
		errs = append(errs, errors.New(`classes: missing "none"`))
	}
	if r.archIdx[NoneID] == nil {
		errs = append(errs, errors.New(`archetypes: missing "none"`))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

// Class returns the class for id, if registered.
func (r *Registry) Class(id string) (*Class, bool) {
	c, ok := r.classIdx[normalizeID(id)]
	return c, ok
}

// Archetype returns the archetype for id, if registered.
func (r *Registry) Archetype(id string) (*Archetype, bool) {
	a, ok := r.archIdx[normalizeID(id)]
	return a, ok
}

// Classes lists the classes in display order.
func (r *Registry) Classes() []*Class {
	return append([]*Class(nil), r.classes...)
}

// Archetypes lists the archetypes in display order.
func (r *Registry) Archetypes() []*Archetype {
	return append([]*Archetype(nil), r.archetypes...)
}

func normalizeID(id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Load reads classes/ and archetypes/ under fsys into a Registry.
func Load(fsys fs.FS) (*Registry, error) {
	classFS, err := fs.Sub(fsys, "classes")
	if err != nil {
		return nil, fmt.Errorf("opening classes: %w", err)
	}
	classes, err := LoadClasses(classFS)
	if err != nil {
		return nil, err
	}
	archFS, err := fs.Sub(fsys, "archetypes")
	if err != nil {
		return nil, fmt.Errorf("opening archetypes: %w", err)
	}
	archetypes, err := LoadArchetypes(archFS)
	if err != nil {
		return nil, err
	}
	return NewRegistry(classes, archetypes)
}

// LoadDir loads a Registry from a directory on disk.
//
// Precondition: dir must contain classes/ and archetypes/ subdirectories.
func LoadDir(dir string) (*Registry, error) {
	return Load(os.DirFS(filepath.Clean(dir)))
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the embedded registry, decoded once per process.
//
// Postcondition: panics if the embedded content is invalid.
func Default() *Registry {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embedded, "content")
		if err != nil {
			defaultErr = err
			return
		}
		defaultRegistry, defaultErr = Load(sub)
	})
	if defaultErr != nil {
		panic("ruleset: embedded content is invalid: " + defaultErr.Error())
	}
	return defaultRegistry
}

func yamlFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch path.Ext(e.Name()) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	return names, nil
}
