package creature

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/reefbattle/internal/game/element"
)

const (
	// DefaultCatchRate applies to species that omit catch_rate.
	DefaultCatchRate = 100
	// DefaultBaseExp applies to species that omit base_exp.
	DefaultBaseExp = 64
)

// LearnEntry is one learnset row: the move learned on reaching Level.
type LearnEntry struct {
	Level  int `yaml:"level"`
	MoveID int `yaml:"move"`
}

// Evolution names the species a creature becomes at Level.
type Evolution struct {
	SpeciesID int `yaml:"species"`
	Level     int `yaml:"level"`
}

// Species is an immutable species template shared by every creature of it.
type Species struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Types       []element.Type `yaml:"types"`
	BaseStats   Stats          `yaml:"base_stats"`
	Learnset    []LearnEntry   `yaml:"learnset"`
	Evolution   *Evolution     `yaml:"evolution,omitempty"`
	CatchRate   int            `yaml:"catch_rate,omitempty"`
	BaseExp     int            `yaml:"base_exp,omitempty"`
	Description string         `yaml:"description"`
}

// SpeciesLookup resolves species by id.
type SpeciesLookup interface {
	Species(id int) (*Species, bool)
}

// Validate checks that the template satisfies basic invariants. Cross
// references (learnset moves, evolution target) are checked by the loader
// that owns every registry.
//
// Precondition: s must not be nil.
// Postcondition: Returns nil iff the template is internally consistent.
func (s *Species) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("species: id must be positive, got %d", s.ID)
	}
	if s.Name == "" {
		return fmt.Errorf("species %d: name must not be empty", s.ID)
	}
	if len(s.Types) < 1 || len(s.Types) > 2 {
		return fmt.Errorf("species %d: must have one or two types, got %d", s.ID, len(s.Types))
	}
	for _, t := range s.Types {
		if _, err := element.Parse(string(t)); err != nil {
			return fmt.Errorf("species %d: %w", s.ID, err)
		}
	}
	b := s.BaseStats
	if b.HP < 1 || b.Attack < 1 || b.Defense < 1 || b.SpAttack < 1 || b.SpDefense < 1 || b.Speed < 1 {
		return fmt.Errorf("species %d: every base stat must be >= 1", s.ID)
	}
	if len(s.Learnset) == 0 {
		return fmt.Errorf("species %d: learnset must not be empty", s.ID)
	}
	for _, e := range s.Learnset {
		if e.Level < 1 || e.Level > MaxLevel {
			return fmt.Errorf("species %d: learnset level %d out of range", s.ID, e.Level)
		}
		if e.MoveID <= 0 {
			return fmt.Errorf("species %d: learnset move id must be positive", s.ID)
		}
	}
	if s.Evolution != nil {
		if s.Evolution.SpeciesID <= 0 || s.Evolution.SpeciesID == s.ID {
			return fmt.Errorf("species %d: invalid evolution target %d", s.ID, s.Evolution.SpeciesID)
		}
		if s.Evolution.Level < 1 || s.Evolution.Level > MaxLevel {
			return fmt.Errorf("species %d: evolution level %d out of range", s.ID, s.Evolution.Level)
		}
	}
	if s.CatchRate < 0 || s.CatchRate > 255 {
		return fmt.Errorf("species %d: catch_rate must be in [0, 255]", s.ID)
	}
	if s.BaseExp < 0 {
		return fmt.Errorf("species %d: base_exp must be >= 0", s.ID)
	}
	return nil
}

func (s *Species) applyDefaults() {
	if s.CatchRate == 0 {
		s.CatchRate = DefaultCatchRate
	}
	if s.BaseExp == 0 {
		s.BaseExp = DefaultBaseExp
	}
}

// HasType reports whether t is one of the species' types.
func (s *Species) HasType(t element.Type) bool {
	return element.Has(s.Types, t)
}

// Registry holds species templates keyed by id.
type Registry struct {
	species map[int]*Species
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{species: make(map[int]*Species)}
}

// Register validates s, fills defaults and adds it.
//
// Postcondition: Returns an error if s is invalid or its id is already taken.
func (r *Registry) Register(s *Species) error {
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return err
	}
	if _, dup := r.species[s.ID]; dup {
		return fmt.Errorf("species %d: duplicate id", s.ID)
	}
	r.species[s.ID] = s
	return nil
}

// Species implements SpeciesLookup.
func (r *Registry) Species(id int) (*Species, bool) {
	s, ok := r.species[id]
	return s, ok
}

// All returns every registered species sorted by id.
func (r *Registry) All() []*Species {
	out := make([]*Species, 0, len(r.species))
	for _, s := range r.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadSpeciesFromBytes parses a YAML sequence of species templates.
//
// Postcondition: Returns validated species with defaults applied, or an error.
func LoadSpeciesFromBytes(data []byte) ([]*Species, error) {
	var list []*Species
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	for _, s := range list {
		s.applyDefaults()
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// LoadDirectory reads every *.yaml file in dir into a new Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a populated Registry, or an error on the first failure.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		list, err := LoadSpeciesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		for _, s := range list {
			if err := reg.Register(s); err != nil {
				return nil, fmt.Errorf("loading %q: %w", path, err)
			}
		}
	}
	return reg, nil
}
