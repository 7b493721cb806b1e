// Package combat implements the battle core: the damage calculator and the
// input-driven session that resolves turns between the player's active
// creature and a wild or trainer-owned opponent.
package combat

import (
	"errors"

	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
)

// Side distinguishes the player's creature from the opponent's.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns "player" or "enemy".
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Outcome is how a battle ended.
type Outcome int

const (
	// Ongoing means the battle has not ended yet.
	Ongoing Outcome = iota
	Victory
	Defeat
	// Escaped means the player ran from a wild battle.
	Escaped
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Escaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Phase is a state of the battle state machine.
type Phase string

const (
	PhaseIntro        Phase = "intro"
	PhaseSelectAction Phase = "select-action"
	PhaseSelectMove   Phase = "select-move"
	PhaseExecuting    Phase = "executing"
	PhaseMessage      Phase = "message"
	PhaseTurnEnd      Phase = "turn-end"
	PhaseVictory      Phase = "victory"
	PhaseDefeat       Phase = "defeat"
)

// Terminal reports whether p ends the battle.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

var (
	// ErrNoBattleReady is returned when the player has no creature able to fight.
	ErrNoBattleReady = errors.New("combat: no battle-ready creature")
	// ErrFainted is returned when the opponent cannot fight.
	ErrFainted = errors.New("combat: opponent has fainted")
	// ErrWrongPhase is returned when an operation is invoked outside the
	// phase that accepts it.
	ErrWrongPhase = errors.New("combat: operation not allowed in this phase")
	// ErrInvalidMove is returned for a move index with no move in it.
	ErrInvalidMove = errors.New("combat: no move in that slot")
	// ErrInvalidSwitch is returned when the switch target is not another
	// battle-ready party member.
	ErrInvalidSwitch = errors.New("combat: invalid switch target")
)

// Roster is the player's party as seen by a battle.
type Roster interface {
	// BattleReady returns the party members that have not fainted, lead first.
	BattleReady() []*creature.Instance
	// Add stores a newly caught creature in the party, or in storage when
	// the party is full.
	Add(c *creature.Instance) (party.Placement, error)
}

// Opponent is a trainer's team, sent out one creature at a time.
type Opponent interface {
	Name() string
	HasNext() bool
	Next() (*creature.Instance, error)
	PrizeMoney() int
}

// Inventory is the player's bag as seen by a battle.
type Inventory interface {
	// Item returns the template for id when at least one is held.
	Item(id int) (*item.Item, bool)
	// Consume removes one unit of id, reporting false when none are held.
	Consume(id int) bool
}

// Library resolves the templates needed to level up and evolve creatures.
type Library interface {
	creature.MoveLookup
	creature.SpeciesLookup
}

// Report summarises a finished battle for syncing back into the party.
type Report struct {
	Outcome   Outcome
	Turns     int
	ExpGained int
	// Caught is the new party or storage member when a capture succeeded.
	Caught     *creature.Instance
	PrizeMoney int
}
