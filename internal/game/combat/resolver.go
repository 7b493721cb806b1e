package combat

import (
	"math"

	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

const (
	// critOdds is the denominator of the 1/critOdds critical-hit chance.
	critOdds       = 16
	critMultiplier = 2.0
	stabMultiplier = 1.5
	// varianceSteps is the number of damage factors, 0.85 through 1.00.
	varianceSteps = 16
)

// damageVariance draws one of the factors 0.85, 0.86, ... 1.00. The top
// factor is reachable so a roll can leave damage unscaled.
func damageVariance(src dice.Source) float64 {
	return float64(85+src.Intn(varianceSteps)) / 100
}

// MoveResult holds the outcome of one damaging move against one defender.
type MoveResult struct {
	Damage        int
	Effectiveness element.Multiplier
	Critical      bool
	// STAB is true when the move shares a type with the attacker.
	STAB   bool
	Missed bool
}

// Connected reports whether the move hit a target it can affect.
func (r MoveResult) Connected() bool {
	return !r.Missed && r.Effectiveness > 0
}

// ResolveMove computes the damage mv deals from attacker to defender.
// Rolls are drawn from src in a fixed order: accuracy, critical hit, then
// damage variance. Nothing is applied to either fighter.
//
// Precondition: attacker, defender, mv and src must not be nil.
// Postcondition: Status and zero-power moves return zero damage with
// effectiveness 1 and draw nothing. A connecting move deals at least 1;
// an immune defender takes exactly 0.
func ResolveMove(attacker, defender *Fighter, mv *move.Move, src dice.Source) MoveResult {
	if !mv.Damaging() {
		return MoveResult{Effectiveness: element.Neutral}
	}
	if dice.Percent(src) > float64(mv.Accuracy) {
		return MoveResult{Effectiveness: element.Neutral, Missed: true}
	}

	atkStat, defStat := move.Attack, move.Defense
	if mv.Category == move.Special {
		atkStat, defStat = move.SpAttack, move.SpDefense
	}
	atk := float64(attacker.EffectiveStat(atkStat))
	def := float64(max(defender.EffectiveStat(defStat), 1))
	level := float64(attacker.Level)

	base := math.Floor(((2*level/5+2)*float64(mv.Power)*atk/def)/50 + 2)

	res := MoveResult{
		Critical:      src.Intn(critOdds) == 0,
		STAB:          attacker.Species.HasType(mv.Type),
		Effectiveness: element.Effectiveness(mv.Type, defender.ElementTypes()...),
	}
	variance := damageVariance(src)

	dmg := base
	if res.Critical {
		dmg *= critMultiplier
	}
	if res.STAB {
		dmg *= stabMultiplier
	}
	dmg *= float64(res.Effectiveness)
	dmg *= variance

	res.Damage = int(math.Floor(dmg))
	if res.Effectiveness > 0 && res.Damage < 1 {
		res.Damage = 1
	}
	return res
}
