package trainer

import (
	"fmt"

	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
)

// Roster sends a trainer's team out in order. Each creature is built when
// it is sent out, with random individual values and nature.
// It is not safe for concurrent use.
type Roster struct {
	tmpl    *Template
	species creature.SpeciesLookup
	moves   creature.MoveLookup
	src     dice.Source
	next    int
}

// NewRoster creates a Roster for tmpl.
//
// Precondition: tmpl, species, moves and src must not be nil.
// Postcondition: Returns an error if any team species is missing from
// species; no creature is built yet.
func NewRoster(tmpl *Template, species creature.SpeciesLookup, moves creature.MoveLookup, src dice.Source) (*Roster, error) {
	for i, m := range tmpl.Team {
		if _, ok := species.Species(m.SpeciesID); !ok {
			return nil, fmt.Errorf("trainer %q: team[%d] unknown species %d", tmpl.ID, i, m.SpeciesID)
		}
	}
	return &Roster{tmpl: tmpl, species: species, moves: moves, src: src}, nil
}

// Template returns the trainer template.
func (r *Roster) Template() *Template { return r.tmpl }

// Name returns the trainer's display name.
func (r *Roster) Name() string { return r.tmpl.Name }

// PrizeMoney returns the money awarded for defeating the whole team.
func (r *Roster) PrizeMoney() int { return r.tmpl.PrizeMoney }

// HasNext reports whether a team member has not been sent out yet.
func (r *Roster) HasNext() bool { return r.next < len(r.tmpl.Team) }

// Remaining returns how many team members have not been sent out.
func (r *Roster) Remaining() int { return len(r.tmpl.Team) - r.next }

// Next builds and returns the next team member.
//
// Precondition: HasNext() is true.
// Postcondition: the member is consumed even when building it fails.
func (r *Roster) Next() (*creature.Instance, error) {
	if !r.HasNext() {
		return nil, fmt.Errorf("trainer %q: no creatures left", r.tmpl.ID)
	}
	m := r.tmpl.Team[r.next]
	r.next++
	sp, ok := r.species.Species(m.SpeciesID)
	if !ok {
		return nil, fmt.Errorf("trainer %q: unknown species %d", r.tmpl.ID, m.SpeciesID)
	}
	c, err := creature.New(sp, m.Level, r.moves, creature.WithRandomGenes(r.src))
	if err != nil {
		return nil, fmt.Errorf("trainer %q: %w", r.tmpl.ID, err)
	}
	return c, nil
}
