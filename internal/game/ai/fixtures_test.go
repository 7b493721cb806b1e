package ai_test

import (
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// scripted replays fractions of each bound; the last value repeats.
type scripted struct {
	vals []float64
	i    int
}

func (s *scripted) Intn(n int) int {
	v := s.vals[len(s.vals)-1]
	if s.i < len(s.vals) {
		v = s.vals[s.i]
	}
	s.i++
	return min(int(v*float64(n)), n-1)
}

var (
	tackle = &move.Move{ID: 1, Name: "TACKLE", Type: element.Shark, Category: move.Physical, Power: 40, Accuracy: 100, PP: 35}
	ember  = &move.Move{ID: 60, Name: "EMBER", Type: element.Fire, Category: move.Special, Power: 40, Accuracy: 100, PP: 25,
		Secondary: &move.Secondary{Chance: 0.1, Status: "burned"}}
	thunderShock = &move.Move{ID: 70, Name: "THUNDER SHOCK", Type: element.Electric, Category: move.Special, Power: 40, Accuracy: 100, PP: 30}
	quickAttack  = &move.Move{ID: 5, Name: "QUICK ATTACK", Type: element.Shark, Category: move.Physical, Power: 40, Accuracy: 100, PP: 30, Priority: 1}
	bite         = &move.Move{ID: 2, Name: "BITE", Type: element.Deepsea, Category: move.Physical, Power: 60, Accuracy: 100, PP: 25,
		Secondary: &move.Secondary{Chance: 0.3, Flinch: true}}
	growl = &move.Move{ID: 4, Name: "GROWL", Type: element.Shark, Category: move.Status, Accuracy: 100, PP: 40,
		Effect: &move.Effect{Kind: move.StatChange, Target: move.Enemy, StatChanges: map[move.Stat]int{move.Attack: -1}}}
	swordsDance = &move.Move{ID: 14, Name: "FIN DANCE", Type: element.Shark, Category: move.Status, Accuracy: 100, PP: 20,
		Effect: &move.Effect{Kind: move.StatChange, Target: move.Self, StatChanges: map[move.Stat]int{move.Attack: 2}}}
	stunSpore = &move.Move{ID: 78, Name: "STING", Type: element.Electric, Category: move.Status, Accuracy: 75, PP: 30,
		Effect: &move.Effect{Kind: move.StatusEffect, Target: move.Enemy, Status: "paralyzed"}}
	recover = &move.Move{ID: 105, Name: "REGENERATE", Type: element.Shark, Category: move.Status, Accuracy: 100, PP: 10,
		Effect: &move.Effect{Kind: move.Heal, Target: move.Self, HealPercent: 50}}
)

// fighter builds an instance with explicit stats and HP.
func fighter(name string, types []element.Type, stats creature.Stats, hp int, moves ...*move.Move) *creature.Instance {
	c := &creature.Instance{
		Species:   &creature.Species{ID: 1, Name: name, Types: types},
		Level:     20,
		Stats:     stats,
		MaxHP:     stats.HP,
		CurrentHP: hp,
	}
	for _, m := range moves {
		c.Moves = append(c.Moves, creature.MoveSlot{Move: m, PP: m.PP})
	}
	return c
}

var (
	physicalStats = creature.Stats{HP: 100, Attack: 50, Defense: 40, SpAttack: 30, SpDefense: 40, Speed: 40}
	specialStats  = creature.Stats{HP: 100, Attack: 30, Defense: 40, SpAttack: 50, SpDefense: 40, Speed: 60}
)
