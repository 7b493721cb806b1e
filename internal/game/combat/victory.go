package combat

import (
	"go.uber.org/zap"
)

// resolveFaints handles a participant that has fainted. It returns the
// phase the battle continues in and true, or false when both still stand.
// The player fainting takes precedence when both go down together.
func (s *Session) resolveFaints() (Phase, bool) {
	switch {
	case s.player.Fainted():
		s.enqueue("%s fainted!", s.player.DisplayName())
		s.logger.Info("player creature fainted", zap.String("name", s.player.DisplayName()))
		s.outcome = Defeat
		return PhaseDefeat, true

	case s.enemy.Fainted():
		s.enqueue("Enemy %s fainted!", s.enemy.DisplayName())
		s.logger.Info("enemy creature fainted", zap.String("name", s.enemy.DisplayName()))
		s.reward()
		if !s.wild {
			if s.opponent.HasNext() && s.sendOutNext() {
				return PhaseSelectAction, true
			}
			s.prize = s.opponent.PrizeMoney()
			s.enqueue("Defeated %s!", s.opponent.Name())
			s.enqueue("Got $%d for winning!", s.prize)
		}
		s.outcome = Victory
		return PhaseVictory, true
	}
	return "", false
}

// reward grants the experience for the fainted enemy, then applies any
// evolution once every level has been gained.
func (s *Session) reward() {
	exp := s.enemy.ExpYield()
	s.expGained += exp
	s.enqueue("Gained %d EXP!", exp)

	for _, up := range s.player.GainExp(exp, s.lib) {
		s.enqueue("%s grew to LV %d!", s.player.DisplayName(), up.Level)
		for _, mv := range up.Learned {
			s.enqueue("%s learned %s!", s.player.DisplayName(), mv.Name)
		}
		s.logger.Debug("level up", zap.String("name", s.player.DisplayName()), zap.Int("level", up.Level))
	}

	to, ok := s.player.EvolutionTarget(s.lib)
	if !ok {
		return
	}
	old := s.player.DisplayName()
	learned := s.player.Evolve(to, s.lib)
	s.enqueue("What? %s is evolving!", old)
	s.enqueue("%s evolved into %s!", old, to.Name)
	for _, mv := range learned {
		s.enqueue("%s learned %s!", s.player.DisplayName(), mv.Name)
	}
	s.logger.Info("evolution", zap.String("from", old), zap.String("to", to.Name))
}

// sendOutNext replaces the fainted enemy with the trainer's next creature.
// It reports false when the next creature cannot be built.
func (s *Session) sendOutNext() bool {
	next, err := s.opponent.Next()
	if err != nil {
		s.logger.Error("sending out next trainer creature", zap.String("trainer", s.opponent.Name()), zap.Error(err))
		return false
	}
	s.enemy = NewFighter(next, SideEnemy)
	s.enqueue("%s sent out %s!", s.opponent.Name(), next.DisplayName())
	return true
}
