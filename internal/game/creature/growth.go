package creature

import (
	"math"

	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// LevelUp records one level gained and the moves learned on reaching it.
type LevelUp struct {
	Level   int
	Learned []*move.Move
}

// ExpYield returns the experience awarded for defeating c.
func (c *Instance) ExpYield() int {
	return c.Species.BaseExp * c.Level / 7
}

// GainExp adds amount to the creature's experience and applies every level
// it crosses, one level at a time: stats are recomputed, the HP gained by
// the new maximum is healed, and learnset moves for the new level are
// learned. Evolution is not checked here.
//
// Precondition: amount >= 0.
// Postcondition: Level <= MaxLevel; the returned events are in ascending
// level order.
func (c *Instance) GainExp(amount int, moves MoveLookup) []LevelUp {
	c.Exp += amount
	var ups []LevelUp
	for c.Level < MaxLevel && c.Exp >= ExpForLevel(c.Level+1) {
		c.Level++
		oldMax := c.MaxHP
		c.recompute()
		c.CurrentHP += c.MaxHP - oldMax
		if c.CurrentHP > c.MaxHP {
			c.CurrentHP = c.MaxHP
		}
		ups = append(ups, LevelUp{Level: c.Level, Learned: c.learnAt(c.Level, moves)})
	}
	return ups
}

// EvolutionTarget returns the species c is ready to evolve into.
//
// Postcondition: ok is false when c has no evolution, is below its level,
// or the target is missing from species.
func (c *Instance) EvolutionTarget(species SpeciesLookup) (*Species, bool) {
	evo := c.Species.Evolution
	if evo == nil || c.Level < evo.Level {
		return nil, false
	}
	return species.Species(evo.SpeciesID)
}

// Evolve turns c into to. Stats are recomputed for the new species and
// current HP keeps its proportion of the maximum, never dropping a standing
// creature below 1. Moves the new species
// learns at the current level are learned and returned.
//
// Precondition: to must not be nil.
func (c *Instance) Evolve(to *Species, moves MoveLookup) []*move.Move {
	oldMax := c.MaxHP
	c.Species = to
	c.recompute()
	if oldMax > 0 && c.CurrentHP > 0 {
		ratio := float64(c.CurrentHP) / float64(oldMax)
		c.CurrentHP = max(int(math.Floor(float64(c.MaxHP)*ratio)), 1)
	}
	if c.CurrentHP > c.MaxHP {
		c.CurrentHP = c.MaxHP
	}
	return c.learnAt(c.Level, moves)
}

func (c *Instance) recompute() {
	c.Stats = DeriveStats(c.Species.BaseStats, c.Level, c.IVs, c.Nature)
	c.MaxHP = c.Stats.HP
}

// learnAt teaches every learnset move for exactly level that c does not
// already know. With four moves known the oldest slot is dropped.
func (c *Instance) learnAt(level int, moves MoveLookup) []*move.Move {
	var learned []*move.Move
	for _, e := range c.Species.Learnset {
		if e.Level != level || c.Knows(e.MoveID) {
			continue
		}
		m, ok := moves.Move(e.MoveID)
		if !ok {
			continue
		}
		slot := MoveSlot{Move: m, PP: m.PP}
		if len(c.Moves) >= MaxMoves {
			c.Moves = append(c.Moves[1:], slot)
		} else {
			c.Moves = append(c.Moves, slot)
		}
		learned = append(learned, m)
	}
	return learned
}
