package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/game/ai"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
)

// Session coordinates one battle from intro to victory or defeat. It owns
// the two active creatures until it ends; the caller syncs them back into
// the party afterwards using Result.
//
// A Session is driven one input at a time and is not safe for concurrent use.
type Session struct {
	wild     bool
	canRun   bool
	roster   Roster
	opponent Opponent
	bag      Inventory
	lib      Library
	selector *ai.Selector
	src      dice.Source
	logger   *zap.Logger

	player *Fighter
	enemy  *Fighter

	phase   Phase
	pending Phase
	message string
	queue   []string

	turn *turn

	outcome   Outcome
	turns     int
	expGained int
	caught    *creature.Instance
	prize     int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSelector sets the AI that chooses the opponent's moves. Defaults to
// ai.WildDifficulty() in wild battles and to the difficulty implied by the
// trainer's name otherwise.
func WithSelector(sel *ai.Selector) Option {
	return func(s *Session) { s.selector = sel }
}

// WithCanRun sets whether the player may flee a wild battle. Defaults to true.
// Running from a trainer battle is never allowed.
func WithCanRun(ok bool) Option {
	return func(s *Session) { s.canRun = ok }
}

// NewWildSession starts a battle against a wild creature. The player's lead
// battle-ready creature is sent out.
//
// Precondition: roster, wild, bag, lib and src must not be nil.
// Postcondition: Returns ErrNoBattleReady when the roster has no creature
// able to fight and ErrFainted when wild has fainted. Otherwise the session
// is in PhaseIntro showing its first message.
func NewWildSession(roster Roster, wild *creature.Instance, bag Inventory, lib Library, src dice.Source, opts ...Option) (*Session, error) {
	lead, err := leadOf(roster)
	if err != nil {
		return nil, err
	}
	if wild == nil || wild.Fainted() {
		return nil, ErrFainted
	}
	s := newSession(true, roster, bag, lib, src, opts)
	if s.selector == nil {
		s.selector = ai.NewSelector(ai.WildDifficulty(), ai.WithLogger(s.logger))
	}
	s.player = NewFighter(lead, SidePlayer)
	s.enemy = NewFighter(wild, SideEnemy)

	s.enqueue("Wild %s appeared!", wild.DisplayName())
	s.start()
	return s, nil
}

// NewTrainerSession starts a battle against a trainer. The trainer's first
// creature is built now; the rest are built as they are sent out.
//
// Precondition: roster, opp, bag, lib and src must not be nil.
// Postcondition: Returns ErrNoBattleReady when the roster has no creature
// able to fight and ErrFainted when the trainer has nothing to send out.
func NewTrainerSession(roster Roster, opp Opponent, bag Inventory, lib Library, src dice.Source, opts ...Option) (*Session, error) {
	lead, err := leadOf(roster)
	if err != nil {
		return nil, err
	}
	if !opp.HasNext() {
		return nil, ErrFainted
	}
	first, err := opp.Next()
	if err != nil {
		return nil, fmt.Errorf("combat: sending out %s's first creature: %w", opp.Name(), err)
	}
	s := newSession(false, roster, bag, lib, src, opts)
	s.opponent = opp
	s.canRun = false
	if s.selector == nil {
		s.selector = ai.NewSelector(ai.DifficultyForTrainer(opp.Name()), ai.WithLogger(s.logger))
	}
	s.player = NewFighter(lead, SidePlayer)
	s.enemy = NewFighter(first, SideEnemy)

	s.enqueue("%s wants to fight!", opp.Name())
	s.enqueue("%s sent out %s!", opp.Name(), first.DisplayName())
	s.start()
	return s, nil
}

func leadOf(roster Roster) (*creature.Instance, error) {
	ready := roster.BattleReady()
	if len(ready) == 0 {
		return nil, ErrNoBattleReady
	}
	return ready[0], nil
}

func newSession(wild bool, roster Roster, bag Inventory, lib Library, src dice.Source, opts []Option) *Session {
	s := &Session{
		wild:   wild,
		canRun: true,
		roster: roster,
		bag:    bag,
		lib:    lib,
		src:    src,
		logger: zap.NewNop(),
		phase:  PhaseIntro,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) start() {
	s.enqueue("Go! %s!", s.player.DisplayName())
	s.pending = PhaseSelectAction
	s.advance()
	s.logger.Info("battle started",
		zap.Bool("wild", s.wild),
		zap.String("player", s.player.DisplayName()),
		zap.String("enemy", s.enemy.DisplayName()),
		zap.String("difficulty", string(s.selector.Difficulty())),
	)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Pending returns the phase the session resumes once the message queue drains.
func (s *Session) Pending() Phase { return s.pending }

// Message returns the message currently on display.
func (s *Session) Message() string { return s.message }

// Queued returns the number of messages waiting behind the current one.
func (s *Session) Queued() int { return len(s.queue) }

// Player returns the player's active fighter.
func (s *Session) Player() *Fighter { return s.player }

// Enemy returns the opponent's active fighter.
func (s *Session) Enemy() *Fighter { return s.enemy }

// Wild reports whether this is a wild battle.
func (s *Session) Wild() bool { return s.wild }

// CanRun reports whether Run may end the battle.
func (s *Session) CanRun() bool { return s.wild && s.canRun }

// Over reports whether the battle has ended.
func (s *Session) Over() bool { return s.outcome != Ongoing }

// Log returns the session's logger.
func (s *Session) Log() *zap.Logger { return s.logger }

// Result returns the battle summary. Outcome is Ongoing until the battle ends.
func (s *Session) Result() Report {
	return Report{
		Outcome:    s.outcome,
		Turns:      s.turns,
		ExpGained:  s.expGained,
		Caught:     s.caught,
		PrizeMoney: s.prize,
	}
}

// Confirm acknowledges the message on display. When the queue is empty the
// session moves on to the pending phase.
//
// Precondition: Phase() is PhaseIntro or PhaseMessage.
func (s *Session) Confirm() error {
	if s.phase != PhaseIntro && s.phase != PhaseMessage {
		return s.wrongPhase("confirm")
	}
	if len(s.queue) > 0 {
		s.advance()
		return nil
	}
	s.enter(s.pending)
	return nil
}

// Fight opens the move menu.
//
// Precondition: Phase() is PhaseSelectAction.
func (s *Session) Fight() error {
	if s.phase != PhaseSelectAction {
		return s.wrongPhase("fight")
	}
	s.setPhase(PhaseSelectMove)
	return nil
}

// Back closes the move menu.
//
// Precondition: Phase() is PhaseSelectMove.
func (s *Session) Back() error {
	if s.phase != PhaseSelectMove {
		return s.wrongPhase("back")
	}
	s.enter(PhaseSelectAction)
	return nil
}

// SelectMove uses the move in slot i. A move without PP is refused with a
// message and the move menu comes back; otherwise the opponent chooses its
// move and the turn begins.
//
// Precondition: Phase() is PhaseSelectMove; i indexes a known move.
func (s *Session) SelectMove(i int) error {
	if s.phase != PhaseSelectMove {
		return s.wrongPhase("select move")
	}
	if i < 0 || i >= len(s.player.Moves) {
		return fmt.Errorf("%w: %d", ErrInvalidMove, i)
	}
	if s.player.Moves[i].PP <= 0 {
		s.reject(PhaseSelectMove, "No PP left!")
		return nil
	}
	enemySlot := s.selector.Select(s.enemy.Instance, s.player.Instance, s.src)
	s.beginTurn(s.order(i, enemySlot)...)
	return nil
}

// Run flees a wild battle when running is allowed. A successful escape ends
// the battle at once, without experience or evolution.
//
// Precondition: Phase() is PhaseSelectAction.
func (s *Session) Run() error {
	if s.phase != PhaseSelectAction {
		return s.wrongPhase("run")
	}
	if !s.wild || !s.canRun {
		s.reject(PhaseSelectAction, "Can't escape!")
		return nil
	}
	s.enqueue("Got away safely!")
	s.outcome = Escaped
	s.flush(PhaseVictory)
	return nil
}

// Switch sends c out in place of the active creature. The switch uses the
// player's turn and the opponent then attacks the newcomer.
//
// Precondition: Phase() is PhaseSelectAction.
// Postcondition: Returns ErrInvalidSwitch when c is not another battle-ready
// party member. With no other battle-ready member the request is refused
// with a message.
func (s *Session) Switch(c *creature.Instance) error {
	if s.phase != PhaseSelectAction {
		return s.wrongPhase("switch")
	}
	var others []*creature.Instance
	for _, m := range s.roster.BattleReady() {
		if m != s.player.Instance {
			others = append(others, m)
		}
	}
	if len(others) == 0 {
		s.reject(PhaseSelectAction, "No other sharks!")
		return nil
	}
	found := false
	for _, m := range others {
		if m == c {
			found = true
			break
		}
	}
	if !found {
		return ErrInvalidSwitch
	}

	s.enqueue("Come back, %s!", s.player.DisplayName())
	s.player = NewFighter(c, SidePlayer)
	s.enqueue("Go! %s!", c.DisplayName())
	s.logger.Debug("player switched", zap.String("in", c.DisplayName()))
	s.beginTurn(s.enemyStep())
	return nil
}

func (s *Session) wrongPhase(op string) error {
	return fmt.Errorf("%w: %s during %s", ErrWrongPhase, op, s.phase)
}

// reject shows msg and then returns to the menu in back.
func (s *Session) reject(back Phase, msg string) {
	s.enqueue("%s", msg)
	s.flush(back)
}

func (s *Session) enqueue(format string, args ...any) {
	s.queue = append(s.queue, fmt.Sprintf(format, args...))
}

func (s *Session) advance() {
	if len(s.queue) == 0 {
		return
	}
	s.message = s.queue[0]
	s.queue = s.queue[1:]
}

// flush shows queued messages, then resumes pending.
func (s *Session) flush(pending Phase) {
	s.pending = pending
	if len(s.queue) == 0 {
		s.enter(pending)
		return
	}
	s.setPhase(PhaseMessage)
	s.advance()
}

func (s *Session) enter(p Phase) {
	switch p {
	case PhaseTurnEnd:
		s.setPhase(PhaseTurnEnd)
		s.continueTurn()
	case PhaseSelectAction:
		s.setPhase(PhaseSelectAction)
		s.message = fmt.Sprintf("What will %s do?", s.player.DisplayName())
	case PhaseVictory, PhaseDefeat:
		s.setPhase(p)
		s.logger.Info("battle ended",
			zap.Stringer("outcome", s.outcome),
			zap.Int("turns", s.turns),
			zap.Int("exp", s.expGained),
			zap.Int("prize", s.prize),
			zap.Bool("caught", s.caught != nil),
		)
	default:
		s.setPhase(p)
	}
}

func (s *Session) setPhase(p Phase) {
	if s.phase != p {
		s.logger.Debug("battle phase", zap.String("from", string(s.phase)), zap.String("to", string(p)))
	}
	s.phase = p
}

func (s *Session) fighters(side Side) (actor, target *Fighter) {
	if side == SidePlayer {
		return s.player, s.enemy
	}
	return s.enemy, s.player
}
