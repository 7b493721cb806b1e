package move

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
)

// Registry holds move templates keyed by id.
type Registry struct {
	moves map[int]*Move
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{moves: make(map[int]*Move)}
}

// Register adds m after validating it.
//
// Precondition: m must not be nil.
// Postcondition: Returns an error if m is invalid or its id is already taken.
func (r *Registry) Register(m *Move) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if _, dup := r.moves[m.ID]; dup {
		return fmt.Errorf("move %d: duplicate id", m.ID)
	}
	r.moves[m.ID] = m
	return nil
}

// Get returns the move with id, or (nil, false) if not found.
func (r *Registry) Get(id int) (*Move, bool) {
	m, ok := r.moves[id]
	return m, ok
}

// Move implements creature.MoveLookup.
func (r *Registry) Move(id int) (*Move, bool) {
	return r.Get(id)
}

// All returns every registered move sorted by id.
func (r *Registry) All() []*Move {
	out := make([]*Move, 0, len(r.moves))
	for _, m := range r.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered moves.
func (r *Registry) Len() int {
	return len(r.moves)
}

// LoadFromBytes parses a YAML sequence of move templates.
//
// Precondition: data must be a YAML sequence of Move mappings.
// Postcondition: Returns validated moves, or an error naming the first bad entry.
func LoadFromBytes(data []byte) ([]*Move, error) {
	var moves []*Move
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&moves); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing move YAML: %w", err)
	}
	for _, m := range moves {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return moves, nil
}

// LoadDirectory reads every *.yaml file in dir into a new Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a populated Registry, or an error on the first
// parse, validation or duplicate-id failure.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading move dir %q: %w", dir, err)
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
		moves, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		for _, m := range moves {
			if err := reg.Register(m); err != nil {
				return nil, fmt.Errorf("loading %q: %w", path, err)
			}
		}
	}
	return reg, nil
}
