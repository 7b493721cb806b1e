// Package sim drives complete battles without a human player. The battle
// simulator uses it to exercise content, scripts and persistence end to end.
package sim

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/game/ai"
	"github.com/cory-johannsen/reefbattle/internal/game/combat"
	"github.com/cory-johannsen/reefbattle/internal/game/dex"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
	"github.com/cory-johannsen/reefbattle/internal/game/trainer"
	"github.com/cory-johannsen/reefbattle/internal/scripting"
)

// DefaultMaxSteps bounds how many actions one battle may take.
const DefaultMaxSteps = 5000

// ErrStalled is returned when a battle does not finish within MaxSteps.
var ErrStalled = errors.New("sim: battle did not finish")

// ErrOutOfMoves is returned when the player's active creature has no PP left
// and can neither run nor switch to a teammate that can attack.
var ErrOutOfMoves = errors.New("sim: no move left to use")

// Encounter names the opponent. TrainerID selects a trainer battle;
// otherwise SpeciesID and Level describe a wild creature.
type Encounter struct {
	TrainerID string
	SpeciesID int
	Level     int
}

// Env is everything a simulated battle needs.
type Env struct {
	Dex    *dex.Dex
	Party  *party.Party
	Bag    *item.Bag
	Src    dice.Source
	Logger *zap.Logger
	// Scripts supplies trainer score_move hooks. Nil disables them.
	Scripts *scripting.Manager
	// WildDifficulty is the AI level for wild creatures.
	WildDifficulty ai.Difficulty
	// TrainerDifficulty overrides every trainer's own difficulty when set.
	TrainerDifficulty ai.Difficulty
	// MaxSteps defaults to DefaultMaxSteps.
	MaxSteps int
}

// Run plays one battle to completion, passing every battle message to out
// in order. The player's side chooses moves with a Hard selector, heals with
// potions when low and throws cages at weakened wild creatures.
//
// Precondition: Dex, Party, Bag and Src must be set; out must not be nil.
// Postcondition: Returns the battle report, ctx.Err() when cancelled, or
// ErrStalled when MaxSteps actions did not finish the battle.
func Run(ctx context.Context, env Env, enc Encounter, out func(string)) (combat.Report, error) {
	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := newSession(env, enc, logger)
	if err != nil {
		return combat.Report{}, err
	}

	limit := env.MaxSteps
	if limit <= 0 {
		limit = DefaultMaxSteps
	}
	p := &pilot{s: s, party: env.Party, bag: env.Bag, src: env.Src, moves: ai.NewSelector(ai.Hard, ai.WithLogger(logger.Named("pilot")))}
	for step := 0; !s.Phase().Terminal(); step++ {
		if err := ctx.Err(); err != nil {
			return s.Result(), err
		}
		if step >= limit {
			return s.Result(), fmt.Errorf("%w after %d steps", ErrStalled, limit)
		}
		if err := p.act(out); err != nil {
			return s.Result(), err
		}
	}
	return s.Result(), nil
}

func newSession(env Env, enc Encounter, logger *zap.Logger) (*combat.Session, error) {
	if enc.TrainerID != "" {
		tmpl, ok := env.Dex.Trainer(enc.TrainerID)
		if !ok {
			return nil, fmt.Errorf("%w %q", dex.ErrUnknownTrainer, enc.TrainerID)
		}
		roster, err := trainer.NewRoster(tmpl, env.Dex, env.Dex, env.Src)
		if err != nil {
			return nil, err
		}
		return combat.NewTrainerSession(env.Party, roster, env.Bag, env.Dex, env.Src,
			combat.WithLogger(logger),
			combat.WithSelector(trainerSelector(env, tmpl, logger)),
		)
	}

	wild, err := env.Dex.NewCreature(enc.SpeciesID, enc.Level, env.Src)
	if err != nil {
		return nil, err
	}
	d := env.WildDifficulty
	if d == "" {
		d = ai.WildDifficulty()
	}
	return combat.NewWildSession(env.Party, wild, env.Bag, env.Dex, env.Src,
		combat.WithLogger(logger),
		combat.WithSelector(ai.NewSelector(d, ai.WithLogger(logger))),
	)
}

func trainerSelector(env Env, tmpl *trainer.Template, logger *zap.Logger) *ai.Selector {
	d := tmpl.AIDifficulty()
	if env.TrainerDifficulty != "" {
		d = env.TrainerDifficulty
	}
	opts := []ai.Option{ai.WithLogger(logger)}
	if tmpl.Script != "" && env.Scripts != nil && env.Scripts.HasScope(tmpl.Script) {
		opts = append(opts, ai.WithScoreHook(ai.NewScriptHook(env.Scripts, tmpl.Script)))
	}
	return ai.NewSelector(d, opts...)
}

// LoadTrainerScripts loads one scope per trainer script found under
// scriptsDir/ai/<script>. Trainers whose script directory is missing keep
// the built-in scoring.
//
// Postcondition: Returns the names of the loaded scopes, or the first Lua
// load error.
func LoadTrainerScripts(mgr *scripting.Manager, d *dex.Dex, scriptsDir string, instLimit int) ([]string, error) {
	var loaded []string
	for _, id := range d.TrainerIDs() {
		tmpl, _ := d.Trainer(id)
		if tmpl.Script == "" || mgr.HasScope(tmpl.Script) {
			continue
		}
		dir := filepath.Join(scriptsDir, "ai", tmpl.Script)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := mgr.LoadScope(tmpl.Script, dir, instLimit); err != nil {
			return loaded, fmt.Errorf("loading script %q for trainer %q: %w", tmpl.Script, id, err)
		}
		loaded = append(loaded, tmpl.Script)
	}
	return loaded, nil
}
