package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/game/capture"
	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
)

// UseItem uses one unit of the item with id. Items are refused in trainer
// battles, when none are held, and when they would have no effect; a
// refusal consumes nothing and returns to the action menu. A cage throws at
// the wild creature; potions and status cures act on the player's creature
// and the opponent then attacks.
//
// Precondition: Phase() is PhaseSelectAction.
func (s *Session) UseItem(id int) error {
	if s.phase != PhaseSelectAction {
		return s.wrongPhase("use item")
	}
	if !s.wild {
		s.reject(PhaseSelectAction, "Can't use items in trainer battles!")
		return nil
	}
	it, ok := s.bag.Item(id)
	if !ok {
		s.reject(PhaseSelectAction, "You don't have that item!")
		return nil
	}
	if !s.hasEffect(it) {
		s.reject(PhaseSelectAction, "It won't have any effect.")
		return nil
	}
	if !s.bag.Consume(id) {
		s.reject(PhaseSelectAction, "You don't have that item!")
		return nil
	}
	s.enqueue("Used %s!", it.Name)
	s.logger.Debug("item used", zap.String("item", it.Name))

	switch it.Kind {
	case item.Cage:
		s.throwCage(it)
	case item.Potion:
		healed := s.player.Heal(it.HealAmount)
		s.enqueue("%s recovered %d HP!", s.player.DisplayName(), healed)
		s.beginTurn(s.enemyStep())
	case item.Cure:
		s.enqueue("%s", condition.Cure(s.player))
		s.beginTurn(s.enemyStep())
	}
	return nil
}

func (s *Session) hasEffect(it *item.Item) bool {
	switch it.Kind {
	case item.Cage:
		return true
	case item.Potion:
		return it.HealAmount > 0 && s.player.CurrentHP < s.player.MaxHP
	case item.Cure:
		st := s.player.Condition.Status
		return st != condition.None && it.CuresStatus(st)
	default:
		return false
	}
}

// throwCage attempts a capture. On success the wild creature is copied into
// a new owned creature and the battle is won. On failure the creature
// strikes back with a random move that has PP left.
func (s *Session) throwCage(it *item.Item) {
	wild := s.enemy
	res := capture.Attempt(wild.MaxHP, wild.CurrentHP, wild.Species.CatchRate, it.CatchModifier, s.src)
	for _, msg := range res.Messages(wild.DisplayName()) {
		s.enqueue("%s", msg)
	}
	s.logger.Debug("capture attempt",
		zap.String("target", wild.DisplayName()),
		zap.Bool("success", res.Success),
		zap.Int("shakes", res.Shakes),
	)

	if !res.Success {
		s.beginTurn(step{side: SideEnemy, slot: randomSlot(wild.Instance, s.src)})
		return
	}

	s.turns++
	name := wild.DisplayName()
	caught := wild.Clone()
	placement, err := s.roster.Add(caught)
	switch {
	case err != nil:
		s.logger.Error("storing caught creature", zap.String("name", name), zap.Error(err))
	case placement == party.InParty:
		s.enqueue("%s joined your team!", name)
	default:
		s.enqueue("Party is full!")
		s.enqueue("%s was sent to storage.", name)
	}
	s.caught = caught
	s.outcome = Victory
	s.logger.Info("creature caught", zap.String("name", name), zap.Stringer("placement", placement))
	s.flush(PhaseVictory)
}
