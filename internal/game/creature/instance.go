package creature

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// MaxMoves is the number of move slots a creature has.
const MaxMoves = 4

var (
	// ErrNoMoves is returned when a species knows no move at the requested level.
	ErrNoMoves = errors.New("creature: no moves available at this level")
	// ErrUnknownMove is returned when a learnset references a missing move id.
	ErrUnknownMove = errors.New("creature: unknown move id")
	// ErrInvalidLevel is returned for levels outside [1, MaxLevel].
	ErrInvalidLevel = errors.New("creature: level out of range")
)

// MoveLookup resolves move templates by id.
type MoveLookup interface {
	Move(id int) (*move.Move, bool)
}

// MoveSlot is a known move and its remaining PP.
type MoveSlot struct {
	Move *move.Move
	PP   int
}

// Instance is one individual creature. Its template fields are shared by
// pointer; everything else is owned by the instance.
//
// Invariant: 0 <= CurrentHP <= MaxHP; CurrentHP == 0 means fainted.
type Instance struct {
	ID        uuid.UUID
	Species   *Species
	Nickname  string
	Level     int
	Exp       int
	Stats     Stats
	CurrentHP int
	MaxHP     int
	Moves     []MoveSlot
	Condition condition.State
	IVs       Stats
	Nature    Nature
}

// Option customises New.
type Option func(*Instance)

// WithIVs sets explicit individual values.
func WithIVs(ivs Stats) Option {
	return func(c *Instance) { c.IVs = ivs }
}

// WithNature sets an explicit nature.
func WithNature(n Nature) Option {
	return func(c *Instance) { c.Nature = n }
}

// WithRandomGenes draws individual values and a nature from src.
func WithRandomGenes(src dice.Source) Option {
	return func(c *Instance) {
		c.IVs = RandomIVs(src)
		c.Nature = RandomNature(src)
	}
}

// WithNickname sets a nickname shown in place of the species name.
func WithNickname(name string) Option {
	return func(c *Instance) { c.Nickname = name }
}

// New builds a full-health creature of species sp at level. It knows the
// last four learnset moves at or below level, with full PP. Without options
// the creature has zero individual values and a neutral nature.
//
// Precondition: sp must not be nil.
// Postcondition: Returns ErrInvalidLevel, ErrUnknownMove or ErrNoMoves on
// bad input; otherwise a creature with Exp == ExpForLevel(level).
func New(sp *Species, level int, moves MoveLookup, opts ...Option) (*Instance, error) {
	if level < 1 || level > MaxLevel {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	var known []MoveSlot
	for _, e := range sp.Learnset {
		if e.Level > level {
			continue
		}
		m, ok := moves.Move(e.MoveID)
		if !ok {
			return nil, fmt.Errorf("%w: species %d references move %d", ErrUnknownMove, sp.ID, e.MoveID)
		}
		known = append(known, MoveSlot{Move: m, PP: m.PP})
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("%w: species %d level %d", ErrNoMoves, sp.ID, level)
	}
	if len(known) > MaxMoves {
		known = known[len(known)-MaxMoves:]
	}

	c := &Instance{
		ID:      uuid.New(),
		Species: sp,
		Level:   level,
		Exp:     ExpForLevel(level),
		Moves:   known,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Stats = DeriveStats(sp.BaseStats, level, c.IVs, c.Nature)
	c.MaxHP = c.Stats.HP
	c.CurrentHP = c.MaxHP
	return c, nil
}

// DisplayName returns the nickname, or the species name when unset.
func (c *Instance) DisplayName() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.Species.Name
}

// ElementTypes returns the species' types.
func (c *Instance) ElementTypes() []element.Type {
	return c.Species.Types
}

// StatusState returns the creature's status for in-place update.
func (c *Instance) StatusState() *condition.State {
	return &c.Condition
}

// MaxHitPoints returns MaxHP.
func (c *Instance) MaxHitPoints() int {
	return c.MaxHP
}

// Fainted reports whether the creature has no HP left.
func (c *Instance) Fainted() bool {
	return c.CurrentHP <= 0
}

// ApplyDamage removes up to n HP and returns the amount removed.
//
// Postcondition: CurrentHP >= 0.
func (c *Instance) ApplyDamage(n int) int {
	if n <= 0 {
		return 0
	}
	if n > c.CurrentHP {
		n = c.CurrentHP
	}
	c.CurrentHP -= n
	return n
}

// Heal restores up to n HP and returns the amount restored.
//
// Postcondition: CurrentHP <= MaxHP.
func (c *Instance) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	if missing := c.MaxHP - c.CurrentHP; n > missing {
		n = missing
	}
	c.CurrentHP += n
	return n
}

// HasUsableMove reports whether any slot has PP left.
func (c *Instance) HasUsableMove() bool {
	for _, s := range c.Moves {
		if s.PP > 0 {
			return true
		}
	}
	return false
}

// Knows reports whether the creature already knows move id.
func (c *Instance) Knows(id int) bool {
	for _, s := range c.Moves {
		if s.Move.ID == id {
			return true
		}
	}
	return false
}

// Clone returns an independent copy with a fresh id. HP, stats, moves, PP,
// status, individual values and nature are all carried over.
func (c *Instance) Clone() *Instance {
	out := *c
	out.ID = uuid.New()
	out.Moves = append([]MoveSlot(nil), c.Moves...)
	return &out
}
