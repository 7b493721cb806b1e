package item_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
)

const itemsYAML = `
- id: 1
  name: SHARK CAGE
  kind: cage
  description: A standard cage for catching wild sharks.
  price: 200
  catch_modifier: 1.0
- id: 4
  name: MASTER CAGE
  kind: cage
  description: The ultimate cage. Never fails.
  price: 0
  catch_modifier: 255
- id: 10
  name: POTION
  kind: potion
  description: Restores 20 HP.
  price: 300
  heal_amount: 20
- id: 25
  name: FULL HEAL
  kind: status
  description: Cures all status conditions.
  price: 600
  cures: [paralyzed, poisoned, burned, frozen, asleep]
`

func testRegistry(t testing.TB) *item.Registry {
	t.Helper()
	list, err := item.LoadFromBytes([]byte(itemsYAML))
	require.NoError(t, err)
	reg := item.NewRegistry()
	for _, it := range list {
		require.NoError(t, reg.Register(it))
	}
	return reg
}

func TestLoadFromBytes(t *testing.T) {
	reg := testRegistry(t)
	require.Len(t, reg.All(), 4)

	master, ok := reg.Get(4)
	require.True(t, ok)
	assert.Equal(t, item.Cage, master.Kind)
	assert.Equal(t, 255.0, master.CatchModifier)

	heal, ok := reg.Get(25)
	require.True(t, ok)
	assert.True(t, heal.CuresStatus(condition.Frozen))
	assert.False(t, heal.CuresStatus(condition.None))
}

func TestValidate(t *testing.T) {
	cases := map[string]*item.Item{
		"cage without modifier": {ID: 1, Name: "X", Kind: item.Cage},
		"potion without heal":   {ID: 2, Name: "X", Kind: item.Potion},
		"cure without statuses": {ID: 3, Name: "X", Kind: item.Cure},
		"cure with bad status":  {ID: 4, Name: "X", Kind: item.Cure, Cures: []condition.Status{"confused"}},
		"unknown kind":          {ID: 5, Name: "X", Kind: "tm"},
		"no name":               {ID: 6, Kind: item.Potion, HealAmount: 20},
	}
	for name, it := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, it.Validate())
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.yaml"), []byte(itemsYAML), 0644))
	reg, err := item.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Len(t, reg.All(), 4)
}

func TestBag_AddConsume(t *testing.T) {
	bag := item.NewBag(testRegistry(t))
	require.NoError(t, bag.Add(1, 2))
	assert.Error(t, bag.Add(99, 1))
	assert.Error(t, bag.Add(10, 0))

	it, ok := bag.Item(1)
	require.True(t, ok)
	assert.Equal(t, "SHARK CAGE", it.Name)

	assert.True(t, bag.Consume(1))
	assert.True(t, bag.Consume(1))
	assert.False(t, bag.Consume(1))
	assert.Zero(t, bag.Quantity(1))

	_, ok = bag.Item(1)
	assert.False(t, ok, "an empty slot hides the item")
}

func TestBag_FirstOfKind(t *testing.T) {
	bag := item.NewBag(testRegistry(t))
	_, ok := bag.FirstOfKind(item.Cage)
	assert.False(t, ok)

	require.NoError(t, bag.Add(4, 1))
	require.NoError(t, bag.Add(1, 1))
	require.NoError(t, bag.Add(10, 3))

	cage, ok := bag.FirstOfKind(item.Cage)
	require.True(t, ok)
	assert.Equal(t, 1, cage.ID)
	assert.Equal(t, []int{1, 4, 10}, bag.IDs())
}

func TestBag_Property_QuantityNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bag := item.NewBag(testRegistry(t))
		for _, op := range rapid.SliceOfN(rapid.IntRange(-3, 3), 1, 40).Draw(rt, "ops") {
			if op > 0 {
				_ = bag.Add(10, op)
			} else {
				bag.Consume(10)
			}
			if bag.Quantity(10) < 0 {
				rt.Fatalf("negative quantity %d", bag.Quantity(10))
			}
		}
	})
}
