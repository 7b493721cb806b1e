// Package item defines battle-usable items (cages, potions and status
// cures) and the Bag that counts how many of each the player holds.
package item

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

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
)

// Kind classifies what an item does when used in battle.
type Kind string

const (
	Cage   Kind = "cage"
	Potion Kind = "potion"
	Cure   Kind = "status"
)

// Item is an immutable item template.
type Item struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Kind        Kind   `yaml:"kind"`
	Description string `yaml:"description"`
	Price       int    `yaml:"price"`
	// CatchModifier scales the capture chance of a cage.
	CatchModifier float64 `yaml:"catch_modifier,omitempty"`
	// HealAmount is the HP a potion restores.
	HealAmount int `yaml:"heal_amount,omitempty"`
	// Cures lists the statuses a status item removes.
	Cures []condition.Status `yaml:"cures,omitempty"`
}

// CuresStatus reports whether it removes s.
func (it *Item) CuresStatus(s condition.Status) bool {
	for _, c := range it.Cures {
		if c == s {
			return true
		}
	}
	return false
}

// Validate checks that the template satisfies basic invariants.
//
// Postcondition: Returns nil iff the fields required by Kind are present.
func (it *Item) Validate() error {
	if it.ID <= 0 {
		return fmt.Errorf("item: id must be positive, got %d", it.ID)
	}
	if it.Name == "" {
		return fmt.Errorf("item %d: name must not be empty", it.ID)
	}
	if it.Price < 0 {
		return fmt.Errorf("item %d: price must be >= 0", it.ID)
	}
	switch it.Kind {
	case Cage:
		if it.CatchModifier <= 0 {
			return fmt.Errorf("item %d: cage needs a positive catch_modifier", it.ID)
		}
	case Potion:
		if it.HealAmount <= 0 {
			return fmt.Errorf("item %d: potion needs a positive heal_amount", it.ID)
		}
	case Cure:
		if len(it.Cures) == 0 {
			return fmt.Errorf("item %d: status item needs at least one cure", it.ID)
		}
		for _, s := range it.Cures {
			if st, err := condition.ParseStatus(string(s)); err != nil || st == condition.None {
				return fmt.Errorf("item %d: invalid cure %q", it.ID, s)
			}
		}
	default:
		return fmt.Errorf("item %d: unknown kind %q", it.ID, it.Kind)
	}
	return nil
}

// Registry holds item templates keyed by id.
type Registry struct {
	items map[int]*Item
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[int]*Item)}
}

// Register validates it and adds it.
func (r *Registry) Register(it *Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if _, dup := r.items[it.ID]; dup {
		return fmt.Errorf("item %d: duplicate id", it.ID)
	}
	r.items[it.ID] = it
	return nil
}

// Get returns the item with id, or (nil, false) if not found.
func (r *Registry) Get(id int) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// All returns every registered item sorted by id.
func (r *Registry) All() []*Item {
	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadFromBytes parses a YAML sequence of item templates.
func LoadFromBytes(data []byte) ([]*Item, error) {
	var list []*Item
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}
	for _, it := range list {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// LoadDirectory reads every *.yaml file in dir into a new Registry.
//
// Precondition: dir must be a readable directory.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
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
		list, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		for _, it := range list {
			if err := reg.Register(it); err != nil {
				return nil, fmt.Errorf("loading %q: %w", path, err)
			}
		}
	}
	return reg, nil
}
