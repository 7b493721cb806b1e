// Package condition implements the five major status conditions: who may
// receive them, what they prevent, how they wear off, and the damage and
// stat penalties they impose while active.
package condition

import (
	"fmt"

	"github.com/cory-johannsen/reefbattle/internal/game/element"
)

// Status is a major status condition. The zero value means no status.
type Status string

const (
	None      Status = ""
	Paralyzed Status = "paralyzed"
	Poisoned  Status = "poisoned"
	Burned    Status = "burned"
	Frozen    Status = "frozen"
	Asleep    Status = "asleep"
)

// ParseStatus validates s as a status name. The empty string parses as None.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case None, Paralyzed, Poisoned, Burned, Frozen, Asleep:
		return st, nil
	default:
		return None, fmt.Errorf("condition: unknown status %q", s)
	}
}

// Abbrev returns the three-letter badge shown next to a creature's HP bar,
// or "" for None.
func (s Status) Abbrev() string {
	if d, ok := definitions[s]; ok {
		return d.Abbrev
	}
	return ""
}

// Definition holds the fixed parameters of one status condition.
// Message fields are fmt templates taking the bearer's display name.
type Definition struct {
	Status Status
	Abbrev string

	// PreventChance is the probability in [0, 1] that the bearer loses its action.
	PreventChance  float64
	PreventMessage string

	// CureChance is the per-turn probability of wearing off before acting.
	// GuaranteedCureTurn, when positive, forces the cure once that many
	// turns have elapsed since the status was applied.
	CureChance         float64
	GuaranteedCureTurn int
	CureMessage        string

	// EndTurnFraction is the share of max HP lost at the end of each turn.
	EndTurnFraction float64
	DamageMessage   string

	SpeedModifier  float64
	AttackModifier float64

	// Immunity is the element type that can never receive this status.
	Immunity       element.Type
	ImmuneMessage  string
	InflictMessage string
}

var definitions = map[Status]*Definition{
	Paralyzed: {
		Status:         Paralyzed,
		Abbrev:         "PAR",
		PreventChance:  0.25,
		PreventMessage: "%s is paralyzed! It can't move!",
		CureMessage:    "%s is no longer paralyzed!",
		SpeedModifier:  0.5,
		AttackModifier: 1.0,
		Immunity:       element.Electric,
		ImmuneMessage:  "%s can't be paralyzed!",
		InflictMessage: "%s is paralyzed! It may be unable to move!",
	},
	Poisoned: {
		Status:          Poisoned,
		Abbrev:          "PSN",
		CureMessage:     "%s is no longer poisoned!",
		EndTurnFraction: 1.0 / 8,
		DamageMessage:   "%s is hurt by poison!",
		SpeedModifier:   1.0,
		AttackModifier:  1.0,
		Immunity:        element.Poison,
		ImmuneMessage:   "%s can't be poisoned!",
		InflictMessage:  "%s was poisoned!",
	},
	Burned: {
		Status:          Burned,
		Abbrev:          "BRN",
		CureMessage:     "%s is no longer burned!",
		EndTurnFraction: 1.0 / 16,
		DamageMessage:   "%s is hurt by its burn!",
		SpeedModifier:   1.0,
		AttackModifier:  0.5,
		Immunity:        element.Fire,
		ImmuneMessage:   "%s can't be burned!",
		InflictMessage:  "%s was burned!",
	},
	Frozen: {
		Status:             Frozen,
		Abbrev:             "FRZ",
		PreventChance:      1.0,
		PreventMessage:     "%s is frozen solid!",
		CureChance:         0.2,
		GuaranteedCureTurn: 5,
		CureMessage:        "%s thawed out!",
		SpeedModifier:      1.0,
		AttackModifier:     1.0,
		Immunity:           element.Ice,
		ImmuneMessage:      "%s can't be frozen!",
		InflictMessage:     "%s was frozen solid!",
	},
	Asleep: {
		Status:             Asleep,
		Abbrev:             "SLP",
		PreventChance:      1.0,
		PreventMessage:     "%s is fast asleep!",
		CureChance:         0.33,
		GuaranteedCureTurn: 3,
		CureMessage:        "%s woke up!",
		SpeedModifier:      1.0,
		AttackModifier:     1.0,
		InflictMessage:     "%s fell asleep!",
	},
}

// Lookup returns the Definition for s, or (nil, false) for None or an
// unknown status.
func Lookup(s Status) (*Definition, bool) {
	d, ok := definitions[s]
	return d, ok
}

// All returns the five status definitions in a fixed order.
func All() []*Definition {
	return []*Definition{
		definitions[Paralyzed],
		definitions[Poisoned],
		definitions[Burned],
		definitions[Frozen],
		definitions[Asleep],
	}
}
