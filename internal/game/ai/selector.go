package ai

import (
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
)

// scoredMove is one usable move slot and its score.
type scoredMove struct {
	slot  int
	score float64
}

// Selector picks moves at a fixed difficulty.
type Selector struct {
	difficulty Difficulty
	hook       ScoreHook
	logger     *zap.Logger
}

// Option customises a Selector.
type Option func(*Selector)

// WithScoreHook installs h to adjust every move score.
func WithScoreHook(h ScoreHook) Option {
	return func(s *Selector) { s.hook = h }
}

// WithLogger sets the logger decisions are written to at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSelector creates a Selector for d.
func NewSelector(d Difficulty, opts ...Option) *Selector {
	s := &Selector{difficulty: d, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Difficulty returns the selector's difficulty.
func (s *Selector) Difficulty() Difficulty { return s.difficulty }

// SelectMove picks a move slot for attacker with a default Selector.
func SelectMove(attacker, defender *creature.Instance, d Difficulty, src dice.Source) int {
	return NewSelector(d).Select(attacker, defender, src)
}

// Select returns the index of the move slot attacker should use against
// defender. Only slots with PP are considered.
//
// Precondition: attacker and defender must not be nil.
// Postcondition: Returns 0 when no slot has PP; otherwise the index of a
// slot with PP > 0.
func (s *Selector) Select(attacker, defender *creature.Instance, src dice.Source) int {
	var usable []int
	for i, slot := range attacker.Moves {
		if slot.PP > 0 {
			usable = append(usable, i)
		}
	}
	if len(usable) == 0 {
		return 0
	}

	if s.difficulty == Random {
		pick := usable[src.Intn(len(usable))]
		s.logger.Debug("ai move selected",
			zap.String("attacker", attacker.DisplayName()),
			zap.String("difficulty", string(s.difficulty)),
			zap.Int("slot", pick),
		)
		return pick
	}

	scored := make([]scoredMove, 0, len(usable))
	for _, i := range usable {
		mv := attacker.Moves[i].Move
		score := Score(attacker, defender, mv, s.difficulty)
		if s.hook != nil {
			score = s.hook.AdjustScore(newMoveContext(attacker, defender, mv), score)
		}
		scored = append(scored, scoredMove{slot: i, score: score})
		s.logger.Debug("ai move scored",
			zap.String("attacker", attacker.DisplayName()),
			zap.String("move", mv.Name),
			zap.Float64("score", score),
		)
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	pick := s.pick(scored, src)
	s.logger.Debug("ai move selected",
		zap.String("attacker", attacker.DisplayName()),
		zap.String("difficulty", string(s.difficulty)),
		zap.Int("slot", pick.slot),
		zap.Float64("score", pick.score),
	)
	return pick.slot
}

// pick applies the difficulty's randomness to moves sorted best first.
func (s *Selector) pick(scored []scoredMove, src dice.Source) scoredMove {
	if len(scored) == 1 {
		return scored[0]
	}
	if dice.Chance(src, s.difficulty.optimalChance()) {
		return scored[0]
	}

	var viable []scoredMove
	for _, m := range scored {
		if m.score > 0 {
			viable = append(viable, m)
		}
	}
	if len(viable) <= 1 {
		return scored[0]
	}

	var total float64
	for _, m := range viable {
		total += max(m.score, 1)
	}
	roll := dice.Float64(src) * total
	for _, m := range viable {
		roll -= max(m.score, 1)
		if roll <= 0 {
			return m
		}
	}
	return viable[0]
}
