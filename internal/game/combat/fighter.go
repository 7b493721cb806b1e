package combat

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

const (
	MinStage = -6
	MaxStage = 6
)

// Fighter is a creature taking part in a battle together with its
// battle-only stat stages. Stages are discarded when the creature leaves
// the field.
type Fighter struct {
	*creature.Instance
	Side   Side
	stages map[move.Stat]int
}

// NewFighter wraps c for side with every stage at 0.
//
// Precondition: c must not be nil.
func NewFighter(c *creature.Instance, side Side) *Fighter {
	return &Fighter{Instance: c, Side: side, stages: make(map[move.Stat]int)}
}

// Stage returns the current stage of stat.
func (f *Fighter) Stage(stat move.Stat) int {
	return f.stages[stat]
}

// ChangeStage moves stat by delta, clamped to [MinStage, MaxStage].
//
// Postcondition: applied is the change actually made; capped is true when
// the clamp cut the change short.
func (f *Fighter) ChangeStage(stat move.Stat, delta int) (applied int, capped bool) {
	old := f.stages[stat]
	next := min(max(old+delta, MinStage), MaxStage)
	f.stages[stat] = next
	applied = next - old
	return applied, applied != delta
}

// ResetStages sets every stage back to 0.
func (f *Fighter) ResetStages() {
	clear(f.stages)
}

// EffectiveStat returns stat after the stage multiplier and then the status
// modifier (burn halves Attack, paralysis halves Speed), each floored.
func (f *Fighter) EffectiveStat(stat move.Stat) int {
	v := math.Floor(float64(f.Stats.Get(stat)) * StageMultiplier(f.stages[stat]))
	switch stat {
	case move.Attack:
		v = math.Floor(v * condition.AttackModifier(f.Condition.Status))
	case move.Speed:
		v = math.Floor(v * condition.SpeedModifier(f.Condition.Status))
	}
	return int(v)
}

// StageMultiplier returns 2/(2-stage) for negative stages and (2+stage)/2
// otherwise. Stages outside [MinStage, MaxStage] are clamped.
func StageMultiplier(stage int) float64 {
	stage = min(max(stage, MinStage), MaxStage)
	if stage < 0 {
		return 2.0 / float64(2-stage)
	}
	return float64(2+stage) / 2.0
}

// StageMessage describes a stage change on name's stat. A change that
// was fully clamped away reports the limit instead.
func StageMessage(name string, stat move.Stat, requested, applied int) string {
	label := stat.DisplayName()
	switch {
	case applied == 0 && requested > 0:
		return fmt.Sprintf("%s's %s won't go any higher!", name, label)
	case applied == 0:
		return fmt.Sprintf("%s's %s won't go any lower!", name, label)
	case applied == 1:
		return fmt.Sprintf("%s's %s rose!", name, label)
	case applied == 2:
		return fmt.Sprintf("%s's %s rose sharply!", name, label)
	case applied > 2:
		return fmt.Sprintf("%s's %s rose drastically!", name, label)
	case applied == -1:
		return fmt.Sprintf("%s's %s fell!", name, label)
	case applied == -2:
		return fmt.Sprintf("%s's %s harshly fell!", name, label)
	default:
		return fmt.Sprintf("%s's %s severely fell!", name, label)
	}
}
