// Package move defines move templates: their element, category, power,
// accuracy, PP and any primary or secondary effect.
package move

import (
	"fmt"

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
)

// Category selects which stat pair a move uses, or marks it as non-damaging.
type Category string

const (
	Physical Category = "physical"
	Special  Category = "special"
	Status   Category = "status"
)

// Stat names a battle stat that stat-change effects can raise or lower.
// HP is never a stage target.
type Stat string

const (
	Attack    Stat = "attack"
	Defense   Stat = "defense"
	SpAttack  Stat = "sp_attack"
	SpDefense Stat = "sp_defense"
	Speed     Stat = "speed"
)

// Stats lists the stage-able stats in display order.
var Stats = []Stat{Attack, Defense, SpAttack, SpDefense, Speed}

// DisplayName returns the name used in stat-change messages.
func (s Stat) DisplayName() string {
	switch s {
	case Attack:
		return "Attack"
	case Defense:
		return "Defense"
	case SpAttack:
		return "Sp. Atk"
	case SpDefense:
		return "Sp. Def"
	case Speed:
		return "Speed"
	default:
		return string(s)
	}
}

// EffectKind is the kind of a move's primary effect.
type EffectKind string

const (
	StatChange   EffectKind = "stat-change"
	StatusEffect EffectKind = "status"
	Heal         EffectKind = "heal"
)

// Target says who a primary effect lands on.
type Target string

const (
	Self  Target = "self"
	Enemy Target = "enemy"
)

// Effect is a move's guaranteed effect once it connects.
type Effect struct {
	Kind        EffectKind       `yaml:"kind"`
	Target      Target           `yaml:"target"`
	Status      condition.Status `yaml:"status,omitempty"`
	StatChanges map[Stat]int     `yaml:"stat_changes,omitempty"`
	HealPercent int              `yaml:"heal_percent,omitempty"`
}

// Secondary is a chance-based extra effect of a damaging move.
// Stat changes always land on the defender.
type Secondary struct {
	Chance      float64          `yaml:"chance"`
	Status      condition.Status `yaml:"status,omitempty"`
	StatChanges map[Stat]int     `yaml:"stat_changes,omitempty"`
	Flinch      bool             `yaml:"flinch,omitempty"`
}

// Move is an immutable move template shared by every creature that knows it.
type Move struct {
	ID          int          `yaml:"id"`
	Name        string       `yaml:"name"`
	Type        element.Type `yaml:"type"`
	Category    Category     `yaml:"category"`
	Power       int          `yaml:"power"`
	Accuracy    int          `yaml:"accuracy"`
	PP          int          `yaml:"pp"`
	Priority    int          `yaml:"priority,omitempty"`
	Description string       `yaml:"description"`
	Effect      *Effect      `yaml:"effect,omitempty"`
	Secondary   *Secondary   `yaml:"secondary,omitempty"`
}

// Damaging reports whether m has a direct damage component.
func (m *Move) Damaging() bool {
	return m.Category != Status && m.Power > 0
}

// defaultSecondaryChance applies when a secondary status omits its chance.
const defaultSecondaryChance = 0.1

// StatusInfliction returns the status m can inflict and the chance of doing
// so once the move connects. Primary status effects always land; secondary
// ones roll their chance.
//
// Postcondition: ok is false when m inflicts no status.
func (m *Move) StatusInfliction() (status condition.Status, chance float64, ok bool) {
	if m.Effect != nil && m.Effect.Kind == StatusEffect && m.Effect.Status != condition.None {
		return m.Effect.Status, 1.0, true
	}
	if m.Secondary != nil && m.Secondary.Status != condition.None {
		c := m.Secondary.Chance
		if c == 0 {
			c = defaultSecondaryChance
		}
		return m.Secondary.Status, c, true
	}
	return condition.None, 0, false
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: m must not be nil.
// Postcondition: Returns nil iff every field is in range and every enum
// value is known; returns an error on the first violation otherwise.
func (m *Move) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("move: id must be positive, got %d", m.ID)
	}
	if m.Name == "" {
		return fmt.Errorf("move %d: name must not be empty", m.ID)
	}
	if _, err := element.Parse(string(m.Type)); err != nil {
		return fmt.Errorf("move %d: %w", m.ID, err)
	}
	switch m.Category {
	case Physical, Special, Status:
	default:
		return fmt.Errorf("move %d: unknown category %q", m.ID, m.Category)
	}
	if m.Power < 0 {
		return fmt.Errorf("move %d: power must be >= 0", m.ID)
	}
	if m.Accuracy < 0 || m.Accuracy > 100 {
		return fmt.Errorf("move %d: accuracy must be in [0, 100]", m.ID)
	}
	if m.PP < 1 {
		return fmt.Errorf("move %d: pp must be >= 1", m.ID)
	}
	if m.Priority < -7 || m.Priority > 7 {
		return fmt.Errorf("move %d: priority must be in [-7, 7]", m.ID)
	}
	if m.Effect != nil {
		if err := m.Effect.validate(); err != nil {
			return fmt.Errorf("move %d: effect: %w", m.ID, err)
		}
	}
	if m.Secondary != nil {
		if err := m.Secondary.validate(); err != nil {
			return fmt.Errorf("move %d: secondary: %w", m.ID, err)
		}
	}
	return nil
}

func (e *Effect) validate() error {
	switch e.Target {
	case Self, Enemy:
	default:
		return fmt.Errorf("unknown target %q", e.Target)
	}
	switch e.Kind {
	case StatChange:
		if len(e.StatChanges) == 0 {
			return fmt.Errorf("stat-change effect needs stat_changes")
		}
		return validateStatChanges(e.StatChanges)
	case StatusEffect:
		if _, err := condition.ParseStatus(string(e.Status)); err != nil || e.Status == condition.None {
			return fmt.Errorf("status effect needs a valid status, got %q", e.Status)
		}
	case Heal:
		if e.HealPercent < 1 || e.HealPercent > 100 {
			return fmt.Errorf("heal_percent must be in [1, 100]")
		}
	default:
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	return nil
}

func (s *Secondary) validate() error {
	if s.Chance < 0 || s.Chance > 1 {
		return fmt.Errorf("chance must be in [0, 1]")
	}
	if _, err := condition.ParseStatus(string(s.Status)); err != nil {
		return err
	}
	return validateStatChanges(s.StatChanges)
}

func validateStatChanges(changes map[Stat]int) error {
	for stat, delta := range changes {
		switch stat {
		case Attack, Defense, SpAttack, SpDefense, Speed:
		default:
			return fmt.Errorf("unknown stat %q", stat)
		}
		if delta == 0 || delta < -6 || delta > 6 {
			return fmt.Errorf("stat %s change %d out of range", stat, delta)
		}
	}
	return nil
}
