package condition

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
)

// State is the status carried by one creature. Turns counts the turns
// elapsed since Status was applied and drives the guaranteed wake and thaw.
type State struct {
	Status Status
	Turns  int
}

// Set replaces the status and resets the turn counter.
func (s *State) Set(st Status) {
	s.Status = st
	s.Turns = 0
}

// Clear removes any status.
func (s *State) Clear() {
	s.Set(None)
}

// Bearer is anything that can carry a status condition.
type Bearer interface {
	DisplayName() string
	ElementTypes() []element.Type
	StatusState() *State
	MaxHitPoints() int
	// ApplyDamage lowers current HP by n, never below 0, and returns the
	// amount actually removed.
	ApplyDamage(n int) int
	Fainted() bool
}

// Check is the outcome of CheckCanAct.
type Check struct {
	CanAct  bool
	Message string
	Cured   bool
}

// CheckCanAct decides whether b may act this turn. The cure roll for sleep
// and freeze happens first, so a creature that wakes or thaws still acts.
//
// Precondition: b and src must be non-nil.
// Postcondition: When Cured is true the bearer's status is None and CanAct is true.
func CheckCanAct(b Bearer, src dice.Source) Check {
	st := b.StatusState()
	def, ok := Lookup(st.Status)
	if !ok {
		return Check{CanAct: true}
	}
	name := b.DisplayName()

	if def.CureChance > 0 {
		st.Turns++
		guaranteed := def.GuaranteedCureTurn > 0 && st.Turns >= def.GuaranteedCureTurn
		if guaranteed || dice.Chance(src, def.CureChance) {
			st.Clear()
			return Check{CanAct: true, Message: fmt.Sprintf(def.CureMessage, name), Cured: true}
		}
	}

	if def.PreventChance > 0 && dice.Chance(src, def.PreventChance) {
		return Check{CanAct: false, Message: fmt.Sprintf(def.PreventMessage, name)}
	}
	return Check{CanAct: true}
}

// EndOfTurn is the result of status damage dealt at the end of a turn.
type EndOfTurn struct {
	Damage  int
	Message string
	Fainted bool
}

// ApplyEndOfTurnDamage deals poison or burn damage to b.
//
// Postcondition: Returns nil when b's status deals no end-of-turn damage.
// Otherwise damage is max(1, floor(maxHP * fraction)) and HP stays >= 0.
func ApplyEndOfTurnDamage(b Bearer) *EndOfTurn {
	def, ok := Lookup(b.StatusState().Status)
	if !ok || def.EndTurnFraction <= 0 {
		return nil
	}
	dmg := int(math.Floor(float64(b.MaxHitPoints()) * def.EndTurnFraction))
	if dmg < 1 {
		dmg = 1
	}
	b.ApplyDamage(dmg)
	return &EndOfTurn{
		Damage:  dmg,
		Message: fmt.Sprintf(def.DamageMessage, b.DisplayName()),
		Fainted: b.Fainted(),
	}
}

// Application is the result of TryApply. Message is empty for silent refusals.
type Application struct {
	Applied bool
	Message string
}

// TryApply attempts to inflict status on b with the given probability.
// A bearer that already has a status, or has fainted, refuses silently.
// Type immunities refuse with a message and never consume a roll.
//
// Precondition: chance in [0, 1].
// Postcondition: On success b carries status with its turn counter reset.
func TryApply(b Bearer, status Status, chance float64, src dice.Source) Application {
	def, ok := Lookup(status)
	if !ok || b.Fainted() {
		return Application{}
	}
	st := b.StatusState()
	if st.Status != None {
		return Application{}
	}
	name := b.DisplayName()
	if def.Immunity != "" && element.Has(b.ElementTypes(), def.Immunity) {
		return Application{Message: fmt.Sprintf(def.ImmuneMessage, name)}
	}
	if dice.Float64(src) > chance {
		return Application{}
	}
	st.Set(status)
	return Application{Applied: true, Message: fmt.Sprintf(def.InflictMessage, name)}
}

// Cure removes b's status and returns the cure message, or "" when b had none.
func Cure(b Bearer) string {
	st := b.StatusState()
	def, ok := Lookup(st.Status)
	if !ok {
		return ""
	}
	st.Clear()
	return fmt.Sprintf(def.CureMessage, b.DisplayName())
}
