// Package creature models species templates and the individual creatures
// built from them: stat derivation, natures, leveling, move learning and
// evolution.
package creature

import (
	"math"

	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// MaxLevel is the level cap.
const MaxLevel = 100

// MaxIV is the largest individual value for a single stat.
const MaxIV = 31

// Stats is a six-stat block. It is used for species base stats, individual
// values and derived battle stats.
type Stats struct {
	HP        int `yaml:"hp"`
	Attack    int `yaml:"attack"`
	Defense   int `yaml:"defense"`
	SpAttack  int `yaml:"sp_attack"`
	SpDefense int `yaml:"sp_defense"`
	Speed     int `yaml:"speed"`
}

// Get returns the value of a stage-able stat.
func (s Stats) Get(stat move.Stat) int {
	switch stat {
	case move.Attack:
		return s.Attack
	case move.Defense:
		return s.Defense
	case move.SpAttack:
		return s.SpAttack
	case move.SpDefense:
		return s.SpDefense
	case move.Speed:
		return s.Speed
	default:
		return 0
	}
}

// DeriveStats computes battle stats from base stats, level, individual
// values and nature. HP is never affected by nature.
//
// Precondition: 1 <= level <= MaxLevel.
// Postcondition: Pure; identical inputs always give identical outputs.
func DeriveStats(base Stats, level int, ivs Stats, nature Nature) Stats {
	l := float64(level)
	other := func(b, iv int, stat move.Stat) int {
		raw := float64(2*b+iv)*l/100 + 5
		return int(math.Floor(raw * nature.Factor(stat)))
	}
	return Stats{
		HP:        int(math.Floor(float64(2*base.HP+ivs.HP)*l/100 + l + 10)),
		Attack:    other(base.Attack, ivs.Attack, move.Attack),
		Defense:   other(base.Defense, ivs.Defense, move.Defense),
		SpAttack:  other(base.SpAttack, ivs.SpAttack, move.SpAttack),
		SpDefense: other(base.SpDefense, ivs.SpDefense, move.SpDefense),
		Speed:     other(base.Speed, ivs.Speed, move.Speed),
	}
}

// RandomIVs draws six independent individual values in [0, MaxIV].
func RandomIVs(src dice.Source) Stats {
	roll := func() int { return src.Intn(MaxIV + 1) }
	return Stats{
		HP:        roll(),
		Attack:    roll(),
		Defense:   roll(),
		SpAttack:  roll(),
		SpDefense: roll(),
		Speed:     roll(),
	}
}

// ExpForLevel returns the total experience at which level is reached.
func ExpForLevel(level int) int {
	return level * level * level
}
