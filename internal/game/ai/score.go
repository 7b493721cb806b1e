package ai

import (
	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// Immune is the score of a damaging move the defender cannot be hurt by.
const Immune = -1000.0

// Score rates how good mv would be for attacker against defender. Higher
// is better; negative scores mark moves the AI should avoid.
//
// Precondition: attacker, defender and mv must not be nil.
func Score(attacker, defender *creature.Instance, mv *move.Move, d Difficulty) float64 {
	var score float64

	if mv.Power > 0 {
		score = float64(mv.Power)

		switch element.Effectiveness(mv.Type, defender.Species.Types...) {
		case element.Immune:
			return Immune
		case element.SuperEffective:
			score *= 2.0
			if d == Hard {
				score *= 1.2
			}
		case element.NotVeryEffective:
			score *= 0.5
		}

		if attacker.Species.HasType(mv.Type) {
			score *= 1.5
		}
		score *= float64(mv.Accuracy) / 100

		if d == Hard || d == Medium {
			atk, spa := attacker.Stats.Attack, attacker.Stats.SpAttack
			if (mv.Category == move.Physical && atk > spa) || (mv.Category == move.Special && spa > atk) {
				score *= 1.1
			}
		}
	}

	if mv.Category == move.Status {
		score = scoreStatusMove(attacker, defender, mv, d)
	}

	if sec := mv.Secondary; sec != nil {
		if sec.Status != condition.None && defender.Condition.Status == condition.None {
			score += 15 * sec.Chance
		}
		if len(sec.StatChanges) > 0 {
			score += 10 * sec.Chance
		}
		if sec.Flinch {
			score += 8 * sec.Chance
		}
	}

	if mv.Priority > 0 && hpFraction(defender) < 0.3 {
		score *= 1.3
	}
	return score
}

func scoreStatusMove(attacker, defender *creature.Instance, mv *move.Move, d Difficulty) float64 {
	score := 30.0

	if e := mv.Effect; e != nil {
		switch {
		case e.Kind == move.StatChange && e.Target == move.Self:
			if hpFraction(attacker) > 0.5 {
				score += 40
				if d == Hard {
					score += 20
				}
			} else {
				score -= 20
			}
		case e.Kind == move.StatChange && e.Target == move.Enemy:
			score += 35
		case e.Kind == move.StatusEffect && e.Target == move.Enemy:
			if defender.Condition.Status != condition.None {
				score = -100
			} else {
				score += 50
				if e.Status == condition.Paralyzed && defender.Stats.Speed > attacker.Stats.Speed {
					score += 20
				}
			}
		case e.Kind == move.Heal && e.Target == move.Self:
			switch hp := hpFraction(attacker); {
			case hp < 0.4:
				score += 80
			case hp < 0.7:
				score += 30
			default:
				score = -50
			}
		}
	}

	if d == Easy {
		score *= 0.5
	}
	return score
}

func hpFraction(c *creature.Instance) float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.CurrentHP) / float64(c.MaxHP)
}
