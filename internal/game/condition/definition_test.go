package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
)

func TestParseStatus(t *testing.T) {
	for _, name := range []string{"", "paralyzed", "poisoned", "burned", "frozen", "asleep"} {
		got, err := condition.ParseStatus(name)
		require.NoError(t, err, name)
		assert.Equal(t, condition.Status(name), got)
	}
	_, err := condition.ParseStatus("confused")
	assert.Error(t, err)
}

func TestStatus_Abbrev(t *testing.T) {
	assert.Equal(t, "PAR", condition.Paralyzed.Abbrev())
	assert.Equal(t, "PSN", condition.Poisoned.Abbrev())
	assert.Equal(t, "BRN", condition.Burned.Abbrev())
	assert.Equal(t, "FRZ", condition.Frozen.Abbrev())
	assert.Equal(t, "SLP", condition.Asleep.Abbrev())
	assert.Empty(t, condition.None.Abbrev())
}

func TestLookup_None(t *testing.T) {
	_, ok := condition.Lookup(condition.None)
	assert.False(t, ok)
}

func TestAll_FixedTable(t *testing.T) {
	all := condition.All()
	require.Len(t, all, 5)

	byStatus := map[condition.Status]*condition.Definition{}
	for _, d := range all {
		byStatus[d.Status] = d
	}
	assert.Equal(t, 0.25, byStatus[condition.Paralyzed].PreventChance)
	assert.Equal(t, 1.0/8, byStatus[condition.Poisoned].EndTurnFraction)
	assert.Equal(t, 1.0/16, byStatus[condition.Burned].EndTurnFraction)
	assert.Equal(t, 0.2, byStatus[condition.Frozen].CureChance)
	assert.Equal(t, 5, byStatus[condition.Frozen].GuaranteedCureTurn)
	assert.Equal(t, 0.33, byStatus[condition.Asleep].CureChance)
	assert.Equal(t, 3, byStatus[condition.Asleep].GuaranteedCureTurn)
	assert.Zero(t, byStatus[condition.Paralyzed].CureChance)
}
