package creature_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

func testMoves(t testing.TB) *move.Registry {
	t.Helper()
	reg := move.NewRegistry()
	for _, m := range []*move.Move{
		{ID: 1, Name: "TACKLE", Type: element.Shark, Category: move.Physical, Power: 40, Accuracy: 100, PP: 35},
		{ID: 2, Name: "BITE", Type: element.Deepsea, Category: move.Physical, Power: 60, Accuracy: 100, PP: 25,
			Secondary: &move.Secondary{Chance: 0.3, Flinch: true}},
		{ID: 3, Name: "TAIL WHIP", Type: element.Shark, Category: move.Status, Accuracy: 100, PP: 30,
			Effect: &move.Effect{Kind: move.StatChange, Target: move.Enemy, StatChanges: map[move.Stat]int{move.Defense: -1}}},
		{ID: 60, Name: "EMBER", Type: element.Fire, Category: move.Special, Power: 40, Accuracy: 100, PP: 25},
		{ID: 61, Name: "FIRE FANG", Type: element.Fire, Category: move.Physical, Power: 65, Accuracy: 95, PP: 15},
		{ID: 62, Name: "FLAME BURST", Type: element.Fire, Category: move.Special, Power: 70, Accuracy: 100, PP: 15},
	} {
		require.NoError(t, reg.Register(m))
	}
	return reg
}

func blacknose() *creature.Species {
	return &creature.Species{
		ID:        1,
		Name:      "Blacknose Shark",
		Types:     []element.Type{element.Shark},
		BaseStats: creature.Stats{HP: 44, Attack: 52, Defense: 40, SpAttack: 50, SpDefense: 44, Speed: 56},
		Learnset: []creature.LearnEntry{
			{Level: 1, MoveID: 1},
			{Level: 1, MoveID: 3},
			{Level: 7, MoveID: 60},
			{Level: 13, MoveID: 2},
			{Level: 19, MoveID: 61},
		},
		Evolution: &creature.Evolution{SpeciesID: 2, Level: 16},
		CatchRate: 45,
		BaseExp:   62,
	}
}

func blacktip() *creature.Species {
	return &creature.Species{
		ID:        2,
		Name:      "Blacktip Reef Shark",
		Types:     []element.Type{element.Shark, element.Fire},
		BaseStats: creature.Stats{HP: 59, Attack: 70, Defense: 55, SpAttack: 65, SpDefense: 55, Speed: 71},
		Learnset: []creature.LearnEntry{
			{Level: 1, MoveID: 1},
			{Level: 1, MoveID: 3},
			{Level: 1, MoveID: 60},
			{Level: 1, MoveID: 2},
			{Level: 22, MoveID: 61},
			{Level: 28, MoveID: 62},
		},
		CatchRate: 45,
		BaseExp:   142,
	}
}

func testSpecies(t testing.TB) *creature.Registry {
	t.Helper()
	reg := creature.NewRegistry()
	require.NoError(t, reg.Register(blacknose()))
	require.NoError(t, reg.Register(blacktip()))
	return reg
}

func mustNew(t testing.TB, sp *creature.Species, level int, opts ...creature.Option) *creature.Instance {
	t.Helper()
	c, err := creature.New(sp, level, testMoves(t), opts...)
	require.NoError(t, err)
	return c
}

func moveIDs(c *creature.Instance) []int {
	ids := make([]int, 0, len(c.Moves))
	for _, s := range c.Moves {
		ids = append(ids, s.Move.ID)
	}
	return ids
}
