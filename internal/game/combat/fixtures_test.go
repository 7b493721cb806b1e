package combat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/reefbattle/internal/game/combat"
	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/element"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
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

// noRolls fails the test if anything is drawn from it.
type noRolls struct{ t *testing.T }

func (n noRolls) Intn(int) int {
	n.t.Fatal("unexpected roll")
	return 0
}

var (
	tackle = &move.Move{ID: 1, Name: "TACKLE", Type: element.Shark, Category: move.Physical, Power: 40, Accuracy: 100, PP: 35}
	bite   = &move.Move{ID: 2, Name: "BITE", Type: element.Deepsea, Category: move.Physical, Power: 60, Accuracy: 100, PP: 25,
		Secondary: &move.Secondary{Chance: 1, Flinch: true}}
	growl = &move.Move{ID: 4, Name: "GROWL", Type: element.Shark, Category: move.Status, Accuracy: 100, PP: 40,
		Effect: &move.Effect{Kind: move.StatChange, Target: move.Enemy, StatChanges: map[move.Stat]int{move.Attack: -1}}}
	quickAttack = &move.Move{ID: 5, Name: "QUICK ATTACK", Type: element.Shark, Category: move.Physical, Power: 40, Accuracy: 100, PP: 30, Priority: 1}
	shadowFin   = &move.Move{ID: 6, Name: "SHADOW FIN", Type: element.Ghost, Category: move.Physical, Power: 70, Accuracy: 100, PP: 15}
	toxic       = &move.Move{ID: 7, Name: "TOXIC", Type: element.Poison, Category: move.Status, Accuracy: 100, PP: 10,
		Effect: &move.Effect{Kind: move.StatusEffect, Target: move.Enemy, Status: condition.Poisoned}}
	regenerate = &move.Move{ID: 8, Name: "REGENERATE", Type: element.Shark, Category: move.Status, Accuracy: 100, PP: 10,
		Effect: &move.Effect{Kind: move.Heal, Target: move.Self, HealPercent: 50}}
	wildSwing = &move.Move{ID: 9, Name: "WILD SWING", Type: element.Shark, Category: move.Physical, Power: 80, Accuracy: 50, PP: 10}
)

const (
	pupID = iota + 1
	finbackID
	minnowID
	bruteID
	whaleID
	specterID
	medicID
)

var (
	pup = &creature.Species{
		ID: pupID, Name: "PUP", Types: []element.Type{element.Shark},
		BaseStats: creature.Stats{HP: 45, Attack: 49, Defense: 49, SpAttack: 65, SpDefense: 65, Speed: 45},
		Learnset:  []creature.LearnEntry{{Level: 1, MoveID: tackle.ID}, {Level: 1, MoveID: growl.ID}, {Level: 17, MoveID: bite.ID}},
		Evolution: &creature.Evolution{SpeciesID: finbackID, Level: 17},
		CatchRate: 45, BaseExp: 64,
	}
	finback = &creature.Species{
		ID: finbackID, Name: "FINBACK", Types: []element.Type{element.Shark},
		BaseStats: creature.Stats{HP: 60, Attack: 62, Defense: 63, SpAttack: 80, SpDefense: 80, Speed: 60},
		Learnset:  []creature.LearnEntry{{Level: 1, MoveID: tackle.ID}, {Level: 17, MoveID: bite.ID}},
		CatchRate: 45, BaseExp: 142,
	}
	minnow = &creature.Species{
		ID: minnowID, Name: "MINNOW", Types: []element.Type{element.Shark},
		BaseStats: creature.Stats{HP: 30, Attack: 30, Defense: 30, SpAttack: 30, SpDefense: 30, Speed: 30},
		Learnset:  []creature.LearnEntry{{Level: 1, MoveID: tackle.ID}},
		CatchRate: 255, BaseExp: 50,
	}
	brute = &creature.Species{
		ID: bruteID, Name: "BRUTE", Types: []element.Type{element.Shark},
		BaseStats: creature.Stats{HP: 120, Attack: 130, Defense: 100, SpAttack: 50, SpDefense: 100, Speed: 110},
		Learnset:  []creature.LearnEntry{{Level: 1, MoveID: tackle.ID}},
		CatchRate: 3, BaseExp: 200,
	}
	whale = &creature.Species{
		ID: whaleID, Name: "WHALE", Types: []element.Type{element.Shark},
		BaseStats: creature.Stats{HP: 150, Attack: 60, Defense: 60, SpAttack: 60, SpDefense: 60, Speed: 30},
		Learnset:  []creature.LearnEntry{{Level: 1, MoveID: tackle.ID}},
		CatchRate: 3, BaseExp: 255,
	}
	specter = &creature.Species{
		ID: specterID, Name: "SPECTER", Types: []element.Type{element.Ghost},
		BaseStats: creature.Stats{HP: 50, Attack: 60, Defense: 50, SpAttack: 60, SpDefense: 50, Speed: 90},
		Learnset:  []creature.LearnEntry{{Level: 1, MoveID: shadowFin.ID}},
		CatchRate: 45, BaseExp: 60,
	}
	medic = &creature.Species{
		ID: medicID, Name: "MEDIC", Types: []element.Type{element.Poison},
		BaseStats: creature.Stats{HP: 60, Attack: 40, Defense: 60, SpAttack: 40, SpDefense: 60, Speed: 90},
		Learnset: []creature.LearnEntry{
			{Level: 1, MoveID: toxic.ID}, {Level: 1, MoveID: regenerate.ID},
			{Level: 1, MoveID: quickAttack.ID}, {Level: 1, MoveID: wildSwing.ID},
		},
		CatchRate: 45, BaseExp: 60,
	}
)

// library resolves the fixtures above.
type library struct{}

func (library) Move(id int) (*move.Move, bool) {
	for _, m := range []*move.Move{tackle, bite, growl, quickAttack, shadowFin, toxic, regenerate, wildSwing} {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

func (library) Species(id int) (*creature.Species, bool) {
	for _, sp := range []*creature.Species{pup, finback, minnow, brute, whale, specter, medic} {
		if sp.ID == id {
			return sp, true
		}
	}
	return nil, false
}

func spawn(t *testing.T, sp *creature.Species, level int) *creature.Instance {
	t.Helper()
	c, err := creature.New(sp, level, library{})
	require.NoError(t, err)
	return c
}

func rosterOf(t *testing.T, size int, members ...*creature.Instance) *party.Party {
	t.Helper()
	p := party.New(size)
	for _, m := range members {
		_, err := p.Add(m)
		require.NoError(t, err)
	}
	return p
}

const (
	cageID       = 1
	masterCageID = 4
	leakyCageID  = 5
	potionID     = 10
	antidoteID   = 20
)

func newBag(t *testing.T) *item.Bag {
	t.Helper()
	reg := item.NewRegistry()
	for _, it := range []*item.Item{
		{ID: cageID, Name: "SHARK CAGE", Kind: item.Cage, CatchModifier: 1},
		{ID: masterCageID, Name: "MASTER CAGE", Kind: item.Cage, CatchModifier: 255},
		{ID: leakyCageID, Name: "LEAKY CAGE", Kind: item.Cage, CatchModifier: 0.0001},
		{ID: potionID, Name: "POTION", Kind: item.Potion, HealAmount: 20},
		{ID: antidoteID, Name: "ANTIDOTE", Kind: item.Cure, Cures: []condition.Status{condition.Poisoned}},
	} {
		require.NoError(t, reg.Register(it))
	}
	bag := item.NewBag(reg)
	for _, id := range []int{cageID, masterCageID, leakyCageID, potionID, antidoteID} {
		require.NoError(t, bag.Add(id, 3))
	}
	return bag
}

// drain confirms every queued message and returns them in order.
func drain(t *testing.T, s *combat.Session) []string {
	t.Helper()
	var msgs []string
	for i := 0; s.Phase() == combat.PhaseMessage || s.Phase() == combat.PhaseIntro; i++ {
		require.Less(t, i, 200, "message queue never drained")
		msgs = append(msgs, s.Message())
		require.NoError(t, s.Confirm())
	}
	return msgs
}

// fight opens the move menu and uses slot.
func fight(t *testing.T, s *combat.Session, slot int) []string {
	t.Helper()
	require.Equal(t, combat.PhaseSelectAction, s.Phase())
	require.NoError(t, s.Fight())
	require.NoError(t, s.SelectMove(slot))
	return drain(t, s)
}

// bare builds a fighter with explicit stats, bypassing the stat deriver.
func bare(name string, types []element.Type, level int, stats creature.Stats, side combat.Side) *combat.Fighter {
	c := &creature.Instance{
		Species:   &creature.Species{ID: 99, Name: name, Types: types},
		Level:     level,
		Stats:     stats,
		MaxHP:     stats.HP,
		CurrentHP: stats.HP,
	}
	return combat.NewFighter(c, side)
}
