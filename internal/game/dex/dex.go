// Package dex loads every content directory into one cross-validated
// bundle: moves, species, items and trainers.
package dex

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
	"github.com/cory-johannsen/reefbattle/internal/game/trainer"
)

var (
	// ErrUnknownSpecies is returned when a species id resolves to nothing.
	ErrUnknownSpecies = errors.New("dex: unknown species id")
	// ErrUnknownTrainer is returned when a trainer id resolves to nothing.
	ErrUnknownTrainer = errors.New("dex: unknown trainer id")
)

// Subdirectories of the content root.
const (
	MovesDir    = "moves"
	SpeciesDir  = "species"
	ItemsDir    = "items"
	TrainersDir = "trainers"
)

// Dex is the validated content bundle. It is read-only after construction
// and safe for concurrent use.
type Dex struct {
	moves    *move.Registry
	species  *creature.Registry
	items    *item.Registry
	trainers map[string]*trainer.Template
}

// Load reads the moves, species, items and trainers directories under root.
//
// Precondition: root must contain the four content subdirectories.
// Postcondition: Returns a Dex whose cross references all resolve, or an
// error naming the first failure.
func Load(root string) (*Dex, error) {
	moves, err := move.LoadDirectory(filepath.Join(root, MovesDir))
	if err != nil {
		return nil, err
	}
	species, err := creature.LoadDirectory(filepath.Join(root, SpeciesDir))
	if err != nil {
		return nil, err
	}
	items, err := item.LoadDirectory(filepath.Join(root, ItemsDir))
	if err != nil {
		return nil, err
	}
	trainers, err := trainer.LoadTemplates(filepath.Join(root, TrainersDir))
	if err != nil {
		return nil, err
	}
	return New(moves, species, items, trainers)
}

// New bundles already-loaded registries after checking their cross
// references: learnset moves, evolution targets and trainer team species.
//
// Precondition: moves, species and items must not be nil.
func New(moves *move.Registry, species *creature.Registry, items *item.Registry, trainers []*trainer.Template) (*Dex, error) {
	for _, sp := range species.All() {
		for _, e := range sp.Learnset {
			if _, ok := moves.Get(e.MoveID); !ok {
				return nil, fmt.Errorf("species %d (%s): %w %d", sp.ID, sp.Name, creature.ErrUnknownMove, e.MoveID)
			}
		}
		if evo := sp.Evolution; evo != nil {
			if _, ok := species.Species(evo.SpeciesID); !ok {
				return nil, fmt.Errorf("species %d (%s) evolves into %w %d", sp.ID, sp.Name, ErrUnknownSpecies, evo.SpeciesID)
			}
		}
	}

	byID := make(map[string]*trainer.Template, len(trainers))
	for _, tmpl := range trainers {
		if _, dup := byID[tmpl.ID]; dup {
			return nil, fmt.Errorf("trainer %q: duplicate id", tmpl.ID)
		}
		for i, m := range tmpl.Team {
			if _, ok := species.Species(m.SpeciesID); !ok {
				return nil, fmt.Errorf("trainer %q team[%d]: %w %d", tmpl.ID, i, ErrUnknownSpecies, m.SpeciesID)
			}
		}
		byID[tmpl.ID] = tmpl
	}

	return &Dex{moves: moves, species: species, items: items, trainers: byID}, nil
}

// Moves returns the move registry.
func (d *Dex) Moves() *move.Registry { return d.moves }

// SpeciesRegistry returns the species registry.
func (d *Dex) SpeciesRegistry() *creature.Registry { return d.species }

// Items returns the item registry.
func (d *Dex) Items() *item.Registry { return d.items }

// Move implements creature.MoveLookup.
func (d *Dex) Move(id int) (*move.Move, bool) { return d.moves.Get(id) }

// Species implements creature.SpeciesLookup.
func (d *Dex) Species(id int) (*creature.Species, bool) { return d.species.Species(id) }

// Trainer returns the trainer template with id.
func (d *Dex) Trainer(id string) (*trainer.Template, bool) {
	t, ok := d.trainers[id]
	return t, ok
}

// TrainerIDs returns every trainer id in sorted order.
func (d *Dex) TrainerIDs() []string {
	ids := make([]string, 0, len(d.trainers))
	for id := range d.trainers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NewCreature builds a creature of species id at level with random genes.
//
// Postcondition: Returns ErrUnknownSpecies when id is not registered; other
// errors come from creature.New.
func (d *Dex) NewCreature(id, level int, src dice.Source, opts ...creature.Option) (*creature.Instance, error) {
	sp, ok := d.species.Species(id)
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownSpecies, id)
	}
	opts = append([]creature.Option{creature.WithRandomGenes(src)}, opts...)
	return creature.New(sp, level, d, opts...)
}

// NewTrainerRoster creates the roster for trainer id.
func (d *Dex) NewTrainerRoster(id string, src dice.Source) (*trainer.Roster, error) {
	tmpl, ok := d.trainers[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTrainer, id)
	}
	return trainer.NewRoster(tmpl, d, d, src)
}
