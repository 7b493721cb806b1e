package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/reefbattle/internal/game/ai"
	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
)

var (
	sharkType  = []element.Type{element.Shark}
	algaeType  = []element.Type{element.Algae}
	groundType = []element.Type{element.Ground}
)

func TestScore_STABAndCategoryMatch(t *testing.T) {
	atk := fighter("Blacknose", sharkType, physicalStats, 100)
	def := fighter("Target", sharkType, physicalStats, 100)

	assert.InDelta(t, 40*1.5*1.1, ai.Score(atk, def, tackle, ai.Medium), 1e-9)
	assert.InDelta(t, 40*1.5, ai.Score(atk, def, tackle, ai.Easy), 1e-9, "no category bonus at easy")
}

func TestScore_Effectiveness(t *testing.T) {
	atk := fighter("Blacknose", sharkType, specialStats, 100)

	plain := ai.Score(atk, fighter("T", sharkType, physicalStats, 100), ember, ai.Medium)
	superEff := ai.Score(atk, fighter("T", algaeType, physicalStats, 100), ember, ai.Medium)
	hard := ai.Score(atk, fighter("T", algaeType, physicalStats, 100), ember, ai.Hard)

	// special move, spAttack > attack: x1.1; secondary burn 15*0.1.
	assert.InDelta(t, 40*1.1+1.5, plain, 1e-9)
	assert.InDelta(t, 40*2*1.1+1.5, superEff, 1e-9)
	assert.InDelta(t, 40*2*1.2*1.1+1.5, hard, 1e-9)
}

func TestScore_ImmuneIsTerrible(t *testing.T) {
	atk := fighter("Spark", sharkType, specialStats, 100)
	def := fighter("Digger", groundType, physicalStats, 100)
	assert.Equal(t, ai.Immune, ai.Score(atk, def, thunderShock, ai.Hard))
}

func TestScore_SecondaryBonusesUseChanceFraction(t *testing.T) {
	atk := fighter("A", []element.Type{element.Fire}, specialStats, 100)
	def := fighter("D", sharkType, physicalStats, 100)

	// bite: 60 power, physical with attack < spAttack, flinch 30%.
	assert.InDelta(t, 60+8*0.3, ai.Score(atk, def, bite, ai.Medium), 1e-9)

	// ember: STAB 1.5, burn chance 10%.
	assert.InDelta(t, 40*1.5+15*0.1, ai.Score(atk, def, ember, ai.Easy), 1e-9)
	def.Condition.Set(condition.Poisoned)
	assert.InDelta(t, 40*1.5, ai.Score(atk, def, ember, ai.Easy), 1e-9,
		"no status bonus once the defender has a status")
}

func TestScore_PriorityFinisher(t *testing.T) {
	atk := fighter("A", sharkType, physicalStats, 100)
	healthy := fighter("D", sharkType, physicalStats, 100)
	weak := fighter("D", sharkType, physicalStats, 29)

	base := ai.Score(atk, healthy, quickAttack, ai.Medium)
	assert.InDelta(t, base*1.3, ai.Score(atk, weak, quickAttack, ai.Medium), 1e-9)
}

func TestScore_StatusMoves(t *testing.T) {
	atk := fighter("A", sharkType, physicalStats, 100)
	fast := fighter("D", sharkType, specialStats, 100)
	slow := fighter("D", sharkType, physicalStats, 100)

	assert.Equal(t, 30.0+35, ai.Score(atk, slow, growl, ai.Medium))
	assert.Equal(t, (30.0+35)*0.5, ai.Score(atk, slow, growl, ai.Easy))

	assert.Equal(t, 30.0+40, ai.Score(atk, slow, swordsDance, ai.Medium))
	assert.Equal(t, 30.0+40+20, ai.Score(atk, slow, swordsDance, ai.Hard))
	hurt := fighter("A", sharkType, physicalStats, 50)
	assert.Equal(t, 30.0-20, ai.Score(hurt, slow, swordsDance, ai.Medium))

	assert.Equal(t, 30.0+50, ai.Score(atk, slow, stunSpore, ai.Medium))
	assert.Equal(t, 30.0+50+20, ai.Score(atk, fast, stunSpore, ai.Medium), "paralysis favoured against faster foes")
	fast.Condition.Set(condition.Asleep)
	assert.Equal(t, -100.0, ai.Score(atk, fast, stunSpore, ai.Medium))
}

func TestScore_HealDependsOnHP(t *testing.T) {
	def := fighter("D", sharkType, physicalStats, 100)
	cases := []struct {
		hp   int
		want float64
	}{
		{39, 30 + 80},
		{69, 30 + 30},
		{70, -50},
		{100, -50},
	}
	for _, tc := range cases {
		atk := fighter("A", sharkType, physicalStats, tc.hp)
		assert.Equal(t, tc.want, ai.Score(atk, def, recover, ai.Medium), "hp %d", tc.hp)
	}
}
