// Package party holds the player's active party and the storage box that
// takes overflow captures.
package party

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/reefbattle/internal/game/creature"
)

// DefaultSize is the usual party limit.
const DefaultSize = 6

// ErrNilCreature is returned when adding a nil creature.
var ErrNilCreature = errors.New("party: creature must not be nil")

// Placement says where Add put a creature.
type Placement int

const (
	InParty Placement = iota
	InStorage
)

func (p Placement) String() string {
	switch p {
	case InParty:
		return "party"
	case InStorage:
		return "storage"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

// Party is the player's roster. Members are ordered; the first battle-ready
// member leads. It is not safe for concurrent use.
type Party struct {
	size    int
	members []*creature.Instance
	storage []*creature.Instance
}

// New creates an empty party holding at most size members.
//
// Precondition: size >= 1; values below 1 fall back to DefaultSize.
func New(size int) *Party {
	if size < 1 {
		size = DefaultSize
	}
	return &Party{size: size}
}

// Size returns the member limit.
func (p *Party) Size() int { return p.size }

// Members returns the party members in order.
func (p *Party) Members() []*creature.Instance {
	return append([]*creature.Instance(nil), p.members...)
}

// Storage returns the boxed creatures in insertion order.
func (p *Party) Storage() []*creature.Instance {
	return append([]*creature.Instance(nil), p.storage...)
}

// Full reports whether the party is at its limit.
func (p *Party) Full() bool {
	return len(p.members) >= p.size
}

// Add puts c in the party, or in storage when the party is full.
//
// Postcondition: Returns where c was placed.
func (p *Party) Add(c *creature.Instance) (Placement, error) {
	if c == nil {
		return InParty, ErrNilCreature
	}
	if p.Full() {
		p.storage = append(p.storage, c)
		return InStorage, nil
	}
	p.members = append(p.members, c)
	return InParty, nil
}

// Store puts c straight into storage regardless of party space. Loaders use
// it to restore a saved roster exactly.
func (p *Party) Store(c *creature.Instance) error {
	if c == nil {
		return ErrNilCreature
	}
	p.storage = append(p.storage, c)
	return nil
}

// BattleReady returns the members that have not fainted, in party order.
func (p *Party) BattleReady() []*creature.Instance {
	var out []*creature.Instance
	for _, c := range p.members {
		if !c.Fainted() {
			out = append(out, c)
		}
	}
	return out
}

// Lead returns the first battle-ready member.
func (p *Party) Lead() (*creature.Instance, bool) {
	ready := p.BattleReady()
	if len(ready) == 0 {
		return nil, false
	}
	return ready[0], true
}

// Find returns the member or stored creature with id.
func (p *Party) Find(id uuid.UUID) (*creature.Instance, bool) {
	for _, c := range p.members {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range p.storage {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// HealAll restores every member to full HP and PP and clears its status.
func (p *Party) HealAll() {
	for _, c := range p.members {
		c.CurrentHP = c.MaxHP
		c.Condition.Clear()
		for i := range c.Moves {
			c.Moves[i].PP = c.Moves[i].Move.PP
		}
	}
}
