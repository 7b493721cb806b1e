package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/reefbattle/internal/game/condition"
	"github.com/cory-johannsen/reefbattle/internal/game/creature"
	"github.com/cory-johannsen/reefbattle/internal/game/item"
	"github.com/cory-johannsen/reefbattle/internal/game/party"
)

// ErrRosterNotFound is returned when no roster is saved for an owner.
var ErrRosterNotFound = errors.New("roster not found")

// ErrCreatureOwned is returned when a saved creature id already belongs to
// another owner's roster.
var ErrCreatureOwned = errors.New("creature already belongs to another roster")

// ErrUnknownContent is returned when a saved row references a species, move
// or item the loaded content does not define.
var ErrUnknownContent = errors.New("saved roster references unknown content")

// Content resolves the species and moves a saved roster refers to.
type Content interface {
	creature.SpeciesLookup
	creature.MoveLookup
}

// RosterRepository saves and restores a player's party, storage and bag.
type RosterRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewRosterRepository creates a RosterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool. A nil logger
// disables logging.
func NewRosterRepository(db *pgxpool.Pool, logger *zap.Logger) *RosterRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterRepository{db: db, logger: logger}
}

// storedMove is one element of the moves JSONB column.
type storedMove struct {
	MoveID int `json:"move_id"`
	PP     int `json:"pp"`
}

const insertCreature = `
	INSERT INTO roster_creatures
		(id, owner, in_storage, position, species_id, nickname, level, exp,
		 current_hp, status, status_turns, nature,
		 iv_hp, iv_attack, iv_defense, iv_sp_attack, iv_sp_defense, iv_speed,
		 moves)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

func creatureArgs(owner string, inStorage bool, position int, c *creature.Instance) []any {
	moves := make([]storedMove, len(c.Moves))
	for i, slot := range c.Moves {
		moves[i] = storedMove{MoveID: slot.Move.ID, PP: slot.PP}
	}
	return []any{
		c.ID, owner, inStorage, position, c.Species.ID, c.Nickname, c.Level, c.Exp,
		c.CurrentHP, string(c.Condition.Status), c.Condition.Turns, string(c.Nature),
		c.IVs.HP, c.IVs.Attack, c.IVs.Defense, c.IVs.SpAttack, c.IVs.SpDefense, c.IVs.Speed,
		moves,
	}
}

// Save replaces everything stored for owner with p and bag in one
// transaction. A nil bag clears the saved items.
//
// Precondition: owner must be non-empty; p must not be nil.
// Postcondition: Returns ErrCreatureOwned when a creature id is saved under a
// different owner; nothing is written on error.
func (r *RosterRepository) Save(ctx context.Context, owner string, p *party.Party, bag *item.Bag) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning roster save: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO rosters (owner, party_size) VALUES ($1, $2)
		ON CONFLICT (owner) DO UPDATE SET party_size = EXCLUDED.party_size, updated_at = NOW()`,
		owner, p.Size(),
	); err != nil {
		return fmt.Errorf("upserting roster: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM roster_creatures WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("clearing roster creatures: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM roster_items WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("clearing roster items: %w", err)
	}

	batch := &pgx.Batch{}
	for i, c := range p.Members() {
		batch.Queue(insertCreature, creatureArgs(owner, false, i, c)...)
	}
	for i, c := range p.Storage() {
		batch.Queue(insertCreature, creatureArgs(owner, true, i, c)...)
	}
	if bag != nil {
		for _, id := range bag.IDs() {
			if qty := bag.Quantity(id); qty > 0 {
				batch.Queue(`INSERT INTO roster_items (owner, item_id, quantity) VALUES ($1, $2, $3)`, owner, id, qty)
			}
		}
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isDuplicateKeyError(err) {
				return ErrCreatureOwned
			}
			return fmt.Errorf("inserting roster row: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("closing roster batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing roster save: %w", err)
	}
	r.logger.Info("roster saved",
		zap.String("owner", owner),
		zap.Int("party", len(p.Members())),
		zap.Int("storage", len(p.Storage())),
	)
	return nil
}

// Load rebuilds the party and bag saved for owner. Stats are re-derived from
// the species, level, individual values and nature; HP and PP are restored
// and clamped to the derived maxima.
//
// Precondition: content and items must resolve every saved id.
// Postcondition: Returns ErrRosterNotFound when nothing is saved for owner,
// or an error wrapping ErrUnknownContent for dangling references.
func (r *RosterRepository) Load(ctx context.Context, owner string, content Content, items *item.Registry) (*party.Party, *item.Bag, error) {
	var size int
	err := r.db.QueryRow(ctx, `SELECT party_size FROM rosters WHERE owner = $1`, owner).Scan(&size)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrRosterNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading roster: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, in_storage, species_id, nickname, level, exp, current_hp,
		       status, status_turns, nature,
		       iv_hp, iv_attack, iv_defense, iv_sp_attack, iv_sp_defense, iv_speed,
		       moves
		FROM roster_creatures WHERE owner = $1
		ORDER BY in_storage ASC, position ASC`,
		owner,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("listing roster creatures: %w", err)
	}
	defer rows.Close()

	p := party.New(size)
	for rows.Next() {
		var (
			row       savedCreature
			inStorage bool
		)
		if err := rows.Scan(
			&row.ID, &inStorage, &row.SpeciesID, &row.Nickname, &row.Level, &row.Exp, &row.CurrentHP,
			&row.Status, &row.StatusTurns, &row.Nature,
			&row.IVs.HP, &row.IVs.Attack, &row.IVs.Defense, &row.IVs.SpAttack, &row.IVs.SpDefense, &row.IVs.Speed,
			&row.Moves,
		); err != nil {
			return nil, nil, fmt.Errorf("scanning roster creature: %w", err)
		}
		c, err := row.restore(content)
		if err != nil {
			return nil, nil, err
		}
		if inStorage {
			err = p.Store(c)
		} else {
			_, err = p.Add(c)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("restoring %s: %w", c.DisplayName(), err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("listing roster creatures: %w", err)
	}

	bag, err := r.loadBag(ctx, owner, items)
	if err != nil {
		return nil, nil, err
	}
	r.logger.Debug("roster loaded",
		zap.String("owner", owner),
		zap.Int("party", len(p.Members())),
		zap.Int("storage", len(p.Storage())),
	)
	return p, bag, nil
}

func (r *RosterRepository) loadBag(ctx context.Context, owner string, items *item.Registry) (*item.Bag, error) {
	rows, err := r.db.Query(ctx, `SELECT item_id, quantity FROM roster_items WHERE owner = $1 ORDER BY item_id`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing roster items: %w", err)
	}
	defer rows.Close()

	bag := item.NewBag(items)
	for rows.Next() {
		var id, qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("scanning roster item: %w", err)
		}
		if err := bag.Add(id, qty); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownContent, err)
		}
	}
	return bag, rows.Err()
}

// Delete removes everything saved for owner.
//
// Postcondition: Returns ErrRosterNotFound when nothing was saved.
func (r *RosterRepository) Delete(ctx context.Context, owner string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rosters WHERE owner = $1`, owner)
	if err != nil {
		return fmt.Errorf("deleting roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRosterNotFound
	}
	return nil
}

type savedCreature struct {
	ID          uuid.UUID
	SpeciesID   int
	Nickname    string
	Level       int
	Exp         int
	CurrentHP   int
	Status      string
	StatusTurns int
	Nature      string
	IVs         creature.Stats
	Moves       []storedMove
}

func (s savedCreature) restore(content Content) (*creature.Instance, error) {
	sp, ok := content.Species(s.SpeciesID)
	if !ok {
		return nil, fmt.Errorf("%w: species %d", ErrUnknownContent, s.SpeciesID)
	}
	nature, err := creature.ParseNature(s.Nature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownContent, err)
	}
	status, err := condition.ParseStatus(s.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownContent, err)
	}
	c, err := creature.New(sp, s.Level, content,
		creature.WithIVs(s.IVs), creature.WithNature(nature), creature.WithNickname(s.Nickname))
	if err != nil {
		return nil, fmt.Errorf("rebuilding creature %s: %w", s.ID, err)
	}

	c.ID = s.ID
	c.Exp = s.Exp
	c.CurrentHP = min(max(s.CurrentHP, 0), c.MaxHP)
	c.Condition = condition.State{Status: status, Turns: s.StatusTurns}
	if len(s.Moves) > 0 {
		slots := make([]creature.MoveSlot, 0, len(s.Moves))
		for _, sm := range s.Moves {
			mv, ok := content.Move(sm.MoveID)
			if !ok {
				return nil, fmt.Errorf("%w: move %d", ErrUnknownContent, sm.MoveID)
			}
			slots = append(slots, creature.MoveSlot{Move: mv, PP: min(max(sm.PP, 0), mv.PP)})
		}
		c.Moves = slots
	}
	return c, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
