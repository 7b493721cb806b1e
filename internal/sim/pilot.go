package sim

import (
	"fmt"

	"github.com/cory-johannsen/reefbattle/internal/game/ai"
	"github.com/cory-johannsen/reefbattle/internal/game/combat"
	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
)

// pilot plays the player's side of one session.
type pilot struct {
	s     *combat.Session
	party *party.Party
	bag   *item.Bag
	src   dice.Source
	moves *ai.Selector
	// tried records the turn on which each item was last attempted so a
	// refused item is not retried until the turn advances.
	tried map[int]int
}

func (p *pilot) act(out func(string)) error {
	s := p.s
	switch s.Phase() {
	case combat.PhaseIntro, combat.PhaseMessage:
		out(s.Message())
		return s.Confirm()
	case combat.PhaseSelectAction:
		if id, ok := p.itemChoice(); ok {
			if p.tried == nil {
				p.tried = make(map[int]int)
			}
			p.tried[id] = s.Result().Turns
			return s.UseItem(id)
		}
		if s.Player().HasUsableMove() {
			return s.Fight()
		}
		// Out of PP; the player side has no struggle move.
		if s.CanRun() {
			return s.Run()
		}
		if c := p.switchTarget(); c != nil {
			return s.Switch(c)
		}
		return fmt.Errorf("%w: %s", ErrOutOfMoves, s.Player().DisplayName())
	case combat.PhaseSelectMove:
		return s.SelectMove(p.moves.Select(s.Player().Instance, s.Enemy().Instance, p.src))
	}
	return nil
}

// itemChoice picks an item worth using this turn, if any. Items are only
// considered in wild battles.
func (p *pilot) itemChoice() (int, bool) {
	s := p.s
	if !s.Wild() {
		return 0, false
	}
	player, enemy := s.Player(), s.Enemy()

	if player.CurrentHP*4 <= player.MaxHP {
		if it, ok := p.bag.FirstOfKind(item.Potion); ok && p.fresh(it.ID) {
			return it.ID, true
		}
	}
	if st := player.Condition.Status; st != condition.None {
		for _, id := range p.bag.IDs() {
			if it, ok := p.bag.Item(id); ok && it.Kind == item.Cure && it.CuresStatus(st) && p.fresh(id) {
				return id, true
			}
		}
	}
	if enemy.CurrentHP*2 <= enemy.MaxHP {
		if it, ok := p.bag.FirstOfKind(item.Cage); ok && p.fresh(it.ID) {
			return it.ID, true
		}
	}
	return 0, false
}

// switchTarget returns a battle-ready teammate that can still attack.
func (p *pilot) switchTarget() *creature.Instance {
	active := p.s.Player().Instance
	for _, c := range p.party.BattleReady() {
		if c != active && c.HasUsableMove() {
			return c
		}
	}
	return nil
}

func (p *pilot) fresh(id int) bool {
	turn, ok := p.tried[id]
	return !ok || turn != p.s.Result().Turns
}
