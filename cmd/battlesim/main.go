// Package main runs auto-piloted battles against the loaded content and
// prints the battle messages. With -owner it loads and saves the player's
// roster in PostgreSQL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/config"
	"github.com/cory-johannsen/reefbattle/internal/game/dex"
	"github.com/cory-johannsen/reefbattle/internal/game/dice"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
	"github.com/cory-johannsen/reefbattle/internal/observability"
	"github.com/cory-johannsen/reefbattle/internal/scripting"
	"github.com/cory-johannsen/reefbattle/internal/sim"
	"github.com/cory-johannsen/reefbattle/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and REEF_ environment only when empty)")
	trainerID := flag.String("trainer", "", "trainer id to battle; empty for a wild battle")
	wildSpecies := flag.Int("species", 1, "wild species id")
	wildLevel := flag.Int("level", 5, "wild creature level")
	starter := flag.Int("starter", 1, "species id of the starter when no roster is loaded")
	starterLevel := flag.Int("starter-level", 5, "starter level")
	owner := flag.String("owner", "", "roster owner to load and save; empty disables persistence")
	logPath := flag.String("log", "stderr", "log output path")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging,
		observability.WithOutputPaths(*logPath),
		observability.WithFields(map[string]any{"seed": cfg.Battle.Seed}),
	)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, options{
		trainerID:    *trainerID,
		wildSpecies:  *wildSpecies,
		wildLevel:    *wildLevel,
		starter:      *starter,
		starterLevel: *starterLevel,
		owner:        *owner,
	}); err != nil {
		logger.Fatal("battle simulation failed", zap.Error(err))
	}
	logger.Info("battle simulation finished", zap.Duration("elapsed", time.Since(start)))
}

type options struct {
	trainerID    string
	wildSpecies  int
	wildLevel    int
	starter      int
	starterLevel int
	owner        string
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, opts options) error {
	d, err := dex.Load(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	logger.Info("content loaded",
		zap.String("dir", cfg.Content.Dir),
		zap.Int("species", len(d.SpeciesRegistry().All())),
		zap.Int("trainers", len(d.TrainerIDs())),
	)

	var src dice.Source
	if cfg.Battle.Seed != 0 {
		src = dice.NewSeededSource(cfg.Battle.Seed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewLoggedRoller(src, logger.Named("dice"))

	scripts := scripting.NewManager(roller, logger.Named("scripting"))
	defer scripts.Close()
	if cfg.Content.ScriptsDir != "" {
		loaded, err := sim.LoadTrainerScripts(scripts, d, cfg.Content.ScriptsDir, 0)
		if err != nil {
			return err
		}
		logger.Info("trainer scripts loaded", zap.Strings("scopes", loaded))
	}

	var repo *postgres.RosterRepository
	if opts.owner != "" {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()
		repo = postgres.NewRosterRepository(pool.DB(), logger.Named("storage"))
	}

	roster, bag, err := loadRoster(ctx, repo, d, cfg, opts, roller)
	if err != nil {
		return err
	}

	env := sim.Env{
		Dex:               d,
		Party:             roster,
		Bag:               bag,
		Src:               roller,
		Logger:            logger.Named("battle"),
		Scripts:           scripts,
		WildDifficulty:    cfg.Battle.Wild(),
		TrainerDifficulty: cfg.Battle.Trainer(),
	}
	enc := sim.Encounter{TrainerID: opts.trainerID, SpeciesID: opts.wildSpecies, Level: opts.wildLevel}
	rep, err := sim.Run(ctx, env, enc, func(msg string) { fmt.Println(msg) })
	if err != nil {
		return err
	}

	fmt.Printf("\n%s after %d turns (exp %d, prize $%d)\n", rep.Outcome, rep.Turns, rep.ExpGained, rep.PrizeMoney)
	if rep.Caught != nil {
		fmt.Printf("caught %s (LV %d)\n", rep.Caught.DisplayName(), rep.Caught.Level)
	}

	if repo != nil {
		if err := repo.Save(ctx, opts.owner, roster, bag); err != nil {
			return fmt.Errorf("saving roster: %w", err)
		}
	}
	return nil
}

// loadRoster restores the owner's saved roster, or builds a fresh one with a
// starter and a basic bag.
func loadRoster(ctx context.Context, repo *postgres.RosterRepository, d *dex.Dex, cfg config.Config, opts options, src dice.Source) (*party.Party, *item.Bag, error) {
	if repo != nil {
		p, bag, err := repo.Load(ctx, opts.owner, d, d.Items())
		if err == nil {
			p.HealAll()
			return p, bag, nil
		}
		if !errors.Is(err, postgres.ErrRosterNotFound) {
			return nil, nil, fmt.Errorf("loading roster: %w", err)
		}
	}

	p := party.New(cfg.Battle.PartySize)
	lead, err := d.NewCreature(opts.starter, opts.starterLevel, src)
	if err != nil {
		return nil, nil, fmt.Errorf("creating starter: %w", err)
	}
	if _, err := p.Add(lead); err != nil {
		return nil, nil, err
	}

	bag := item.NewBag(d.Items())
	for _, k := range []item.Kind{item.Cage, item.Potion} {
		if first, ok := firstOfKind(d.Items(), k); ok {
			if err := bag.Add(first, 5); err != nil {
				return nil, nil, err
			}
		}
	}
	return p, bag, nil
}

func firstOfKind(reg *item.Registry, k item.Kind) (int, bool) {
	for _, it := range reg.All() {
		if it.Kind == k {
			return it.ID, true
		}
	}
	return 0, false
}
