package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/reefbattle/internal/game/combat"
	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
)

type itemBattle struct {
	s      *combat.Session
	roster *party.Party
	bag    *item.Bag
}

func newItemBattle(t *testing.T, partySize int, src dice.Source) itemBattle {
	t.Helper()
	b := itemBattle{roster: rosterOf(t, partySize, spawn(t, pup, 5)), bag: newBag(t)}
	var err error
	b.s, err = combat.NewWildSession(b.roster, spawn(t, minnow, 5), b.bag, library{}, src)
	require.NoError(t, err)
	drain(t, b.s)
	return b
}

func TestUseItem_MasterCageAlwaysCatches(t *testing.T) {
	b := newItemBattle(t, 6, noRolls{t})
	wild := b.s.Enemy().Instance
	wild.CurrentHP = wild.MaxHP - 3
	wild.Condition.Set(condition.Burned)

	require.NoError(t, b.s.UseItem(masterCageID))
	assert.Equal(t, []string{
		"Used MASTER CAGE!",
		"The cage shook...",
		"The cage shook again...",
		"The cage shook once more...",
		"Gotcha! MINNOW was caught!",
		"MINNOW joined your team!",
	}, drain(t, b.s))

	assert.Equal(t, combat.PhaseVictory, b.s.Phase())
	res := b.s.Result()
	assert.Equal(t, combat.Victory, res.Outcome)
	assert.Equal(t, 1, res.Turns)
	assert.Zero(t, res.ExpGained)
	require.NotNil(t, res.Caught)
	assert.NotEqual(t, wild.ID, res.Caught.ID)
	assert.Equal(t, wild.CurrentHP, res.Caught.CurrentHP)
	assert.Equal(t, condition.Burned, res.Caught.Condition.Status)
	assert.Equal(t, wild.IVs, res.Caught.IVs)
	assert.Len(t, b.roster.Members(), 2)
	assert.Equal(t, 2, b.bag.Quantity(masterCageID))
}

func TestUseItem_FullPartySendsToStorage(t *testing.T) {
	b := newItemBattle(t, 1, noRolls{t})

	require.NoError(t, b.s.UseItem(masterCageID))
	msgs := drain(t, b.s)
	assert.Equal(t, []string{"Party is full!", "MINNOW was sent to storage."}, msgs[len(msgs)-2:])
	assert.Len(t, b.roster.Members(), 1)
	assert.Len(t, b.roster.Storage(), 1)
}

func TestUseItem_FailedCatchLetsEnemyStrikeBack(t *testing.T) {
	b := newItemBattle(t, 6, &scripted{vals: []float64{0.5}})

	require.NoError(t, b.s.UseItem(leakyCageID))
	msgs := drain(t, b.s)
	assert.Equal(t, []string{"Used LEAKY CAGE!", "Oh no! It broke free!", "MINNOW used TACKLE!"}, msgs[:3])
	assert.Equal(t, combat.PhaseSelectAction, b.s.Phase())
	assert.Nil(t, b.s.Result().Caught)
	assert.Equal(t, 1, b.s.Result().Turns)
	assert.Less(t, b.s.Player().CurrentHP, b.s.Player().MaxHP)
}

func TestUseItem_Potion(t *testing.T) {
	b := newItemBattle(t, 6, dice.NewSeededSource(43))

	require.NoError(t, b.s.UseItem(potionID))
	assert.Equal(t, []string{"It won't have any effect."}, drain(t, b.s))
	assert.Equal(t, 3, b.bag.Quantity(potionID))

	b.s.Player().CurrentHP = 5
	require.NoError(t, b.s.UseItem(potionID))
	msgs := drain(t, b.s)
	assert.Equal(t, []string{"Used POTION!", "PUP recovered 14 HP!", "MINNOW used TACKLE!"}, msgs[:3])
	assert.Equal(t, 2, b.bag.Quantity(potionID))
}

func TestUseItem_StatusCure(t *testing.T) {
	b := newItemBattle(t, 6, dice.NewSeededSource(47))

	require.NoError(t, b.s.UseItem(antidoteID))
	assert.Equal(t, []string{"It won't have any effect."}, drain(t, b.s))

	b.s.Player().Condition.Set(condition.Poisoned)
	require.NoError(t, b.s.UseItem(antidoteID))
	msgs := drain(t, b.s)
	assert.Equal(t, []string{"Used ANTIDOTE!", "PUP is no longer poisoned!"}, msgs[:2])
	assert.NotContains(t, msgs, "PUP is hurt by poison!")
	assert.Equal(t, condition.None, b.s.Player().Condition.Status)
}

func TestUseItem_NotHeld(t *testing.T) {
	b := newItemBattle(t, 6, dice.NewSeededSource(53))

	require.NoError(t, b.s.UseItem(999))
	assert.Equal(t, []string{"You don't have that item!"}, drain(t, b.s))
	assert.Equal(t, combat.PhaseSelectAction, b.s.Phase())
	assert.Zero(t, b.s.Result().Turns)
}
