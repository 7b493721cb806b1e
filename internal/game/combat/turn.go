package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/move"
)

// step is one move waiting to be executed this turn.
type step struct {
	side Side
	slot int
}

// turn is the round in progress. Steps run one at a time so the player
// reads the first move's messages before the second move happens.
type turn struct {
	steps  []step
	order  []Side
	flinch [2]bool
}

// FirstMover decides which side moves first when both use a move: higher
// priority first, then higher effective speed, then a coin flip.
//
// Precondition: all arguments must be non-nil.
func FirstMover(player, enemy *Fighter, playerMove, enemyMove *move.Move, src dice.Source) Side {
	if playerMove.Priority != enemyMove.Priority {
		if playerMove.Priority > enemyMove.Priority {
			return SidePlayer
		}
		return SideEnemy
	}
	ps, es := player.EffectiveStat(move.Speed), enemy.EffectiveStat(move.Speed)
	switch {
	case ps > es:
		return SidePlayer
	case es > ps:
		return SideEnemy
	case src.Intn(2) == 0:
		return SidePlayer
	default:
		return SideEnemy
	}
}

// order returns the turn's two steps in execution order.
func (s *Session) order(playerSlot, enemySlot int) []step {
	ps := step{side: SidePlayer, slot: playerSlot}
	es := step{side: SideEnemy, slot: enemySlot}
	first := FirstMover(s.player, s.enemy, s.player.Moves[playerSlot].Move, s.enemy.moveIn(enemySlot), s.src)
	s.logger.Debug("turn order",
		zap.Stringer("first", first),
		zap.Int("player_speed", s.player.EffectiveStat(move.Speed)),
		zap.Int("enemy_speed", s.enemy.EffectiveStat(move.Speed)),
	)
	if first == SidePlayer {
		return []step{ps, es}
	}
	return []step{es, ps}
}

// enemyStep is the opponent's AI-chosen move for a turn the player spent on
// an item or a switch.
func (s *Session) enemyStep() step {
	return step{side: SideEnemy, slot: s.selector.Select(s.enemy.Instance, s.player.Instance, s.src)}
}

// randomSlot picks uniformly among the slots with PP left, or slot 0.
func randomSlot(c *creature.Instance, src dice.Source) int {
	var usable []int
	for i, slot := range c.Moves {
		if slot.PP > 0 {
			usable = append(usable, i)
		}
	}
	if len(usable) == 0 {
		return 0
	}
	return usable[src.Intn(len(usable))]
}

// moveIn returns the move in slot, falling back to the first known move.
func (f *Fighter) moveIn(slot int) *move.Move {
	if slot < 0 || slot >= len(f.Moves) {
		slot = 0
	}
	return f.Moves[slot].Move
}

func (s *Session) beginTurn(steps ...step) {
	s.turns++
	s.turn = &turn{steps: steps}
	for _, st := range steps {
		s.turn.order = append(s.turn.order, st.side)
	}
	s.setPhase(PhaseExecuting)
	s.logger.Debug("turn started", zap.Int("turn", s.turns), zap.Int("moves", len(steps)))
	s.continueTurn()
}

// continueTurn runs the next waiting step. It suspends in PhaseMessage with
// PhaseTurnEnd pending while steps remain, and finishes the turn with
// end-of-turn status damage once they are done.
func (s *Session) continueTurn() {
	for len(s.turn.steps) > 0 {
		st := s.turn.steps[0]
		s.turn.steps = s.turn.steps[1:]

		actor, target := s.fighters(st.side)
		if actor.Fainted() || target.Fainted() {
			continue
		}
		s.executeStep(actor, target, st.slot)

		if next, over := s.resolveFaints(); over {
			s.turn = nil
			s.flush(next)
			return
		}
		if len(s.turn.steps) > 0 {
			s.flush(PhaseTurnEnd)
			return
		}
	}

	s.endOfTurn()
	next, over := s.resolveFaints()
	if !over {
		next = PhaseSelectAction
	}
	s.turn = nil
	s.flush(next)
}

// executeStep has actor use the move in slot against target.
func (s *Session) executeStep(actor, target *Fighter, slot int) {
	check := condition.CheckCanAct(actor, s.src)
	if check.Message != "" {
		s.enqueue("%s", check.Message)
	}
	if !check.CanAct {
		return
	}
	if s.turn.flinch[actor.Side] {
		s.enqueue("%s flinched!", actor.DisplayName())
		return
	}

	if slot < 0 || slot >= len(actor.Moves) {
		slot = 0
	}
	ms := &actor.Moves[slot]
	if ms.PP > 0 {
		ms.PP--
	}
	mv := ms.Move
	s.enqueue("%s used %s!", actor.DisplayName(), mv.Name)

	if !mv.Damaging() {
		s.useStatusMove(actor, target, mv)
		return
	}

	res := ResolveMove(actor, target, mv, s.src)
	s.logger.Debug("move resolved",
		zap.Stringer("side", actor.Side),
		zap.String("move", mv.Name),
		zap.Int("damage", res.Damage),
		zap.Float64("effectiveness", float64(res.Effectiveness)),
		zap.Bool("critical", res.Critical),
		zap.Bool("missed", res.Missed),
	)
	switch {
	case res.Missed:
		s.enqueue("%s's attack missed!", actor.DisplayName())
		return
	case res.Effectiveness == 0:
		s.enqueue("It doesn't affect %s...", target.DisplayName())
		return
	}

	target.ApplyDamage(res.Damage)
	if text := res.Effectiveness.Text(); text != "" {
		s.enqueue("%s", text)
	}
	if res.Critical {
		s.enqueue("A critical hit!")
	}
	if mv.Effect != nil {
		s.applyEffect(actor, target, mv)
	}
	if mv.Secondary != nil && !target.Fainted() {
		s.applySecondary(target, mv)
	}
}

// useStatusMove applies a move with no damage component. Moves below 100
// accuracy roll to hit like damaging moves.
func (s *Session) useStatusMove(actor, target *Fighter, mv *move.Move) {
	if mv.Accuracy > 0 && mv.Accuracy < 100 && dice.Percent(s.src) > float64(mv.Accuracy) {
		s.enqueue("%s's attack missed!", actor.DisplayName())
		return
	}
	if mv.Effect == nil {
		s.enqueue("But nothing happened!")
		return
	}
	s.applyEffect(actor, target, mv)
}

// applyEffect applies mv's primary effect.
func (s *Session) applyEffect(actor, target *Fighter, mv *move.Move) {
	eff := mv.Effect
	recipient := target
	if eff.Target == move.Self {
		recipient = actor
	}
	switch eff.Kind {
	case move.StatChange:
		if recipient.Fainted() {
			return
		}
		s.changeStages(recipient, eff.StatChanges)
	case move.StatusEffect:
		status, chance, ok := mv.StatusInfliction()
		if !ok {
			return
		}
		app := condition.TryApply(recipient, status, chance, s.src)
		switch {
		case app.Message != "":
			s.enqueue("%s", app.Message)
		case !app.Applied:
			s.enqueue("But it failed!")
		}
	case move.Heal:
		if recipient.CurrentHP >= recipient.MaxHP {
			s.enqueue("%s's HP is full!", recipient.DisplayName())
			return
		}
		amount := max(int(math.Floor(float64(recipient.MaxHP)*float64(eff.HealPercent)/100)), 1)
		recipient.Heal(amount)
		s.enqueue("%s regained health!", recipient.DisplayName())
	}
}

// applySecondary rolls mv's chance-based extra effect on a target that took
// damage and is still standing.
func (s *Session) applySecondary(target *Fighter, mv *move.Move) {
	sec := mv.Secondary
	if status, chance, ok := mv.StatusInfliction(); ok && sec.Status != condition.None {
		if app := condition.TryApply(target, status, chance, s.src); app.Message != "" {
			s.enqueue("%s", app.Message)
		}
	}
	if len(sec.StatChanges) == 0 && !sec.Flinch {
		return
	}
	if !dice.Chance(s.src, sec.Chance) {
		return
	}
	if len(sec.StatChanges) > 0 {
		s.changeStages(target, sec.StatChanges)
	}
	if sec.Flinch {
		s.turn.flinch[target.Side] = true
	}
}

func (s *Session) changeStages(f *Fighter, changes map[move.Stat]int) {
	for _, stat := range move.Stats {
		delta, ok := changes[stat]
		if !ok || delta == 0 {
			continue
		}
		applied, _ := f.ChangeStage(stat, delta)
		s.enqueue("%s", StageMessage(f.DisplayName(), stat, delta, applied))
	}
}

// endOfTurn deals status damage to each participant still standing, in the
// order they moved.
func (s *Session) endOfTurn() {
	order := s.turn.order
	if len(order) < 2 {
		order = []Side{SidePlayer, SideEnemy}
	}
	for _, side := range order {
		f, _ := s.fighters(side)
		if f.Fainted() {
			continue
		}
		if eot := condition.ApplyEndOfTurnDamage(f); eot != nil {
			s.enqueue("%s", eot.Message)
		}
	}
}
