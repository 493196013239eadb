// Package postgres stores quest progress in PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzehuels/questgraph/pkg/progress"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS quest_progress (
    quest_id     TEXT PRIMARY KEY,
    completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Store implements progress.Store on a quest_progress table.
type Store struct {
	db    *pgxpool.Pool
	owned bool
}

var _ progress.Store = (*Store)(nil)

// New creates a Store backed by the given pool. Close does not close a pool
// passed in here.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Open connects to dsn, checks the connection and creates the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("progress: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("progress: ping postgres: %w", err)
	}
	s := &Store{db: pool, owned: true}
	if err := s.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// CreateSchema creates the quest_progress table if it doesn't exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("progress: create schema: %w", err)
	}
	return nil
}

// DropSchema drops the quest_progress table.
func (s *Store) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS quest_progress`)
	return err
}

func (s *Store) Load(ctx context.Context) (progress.Set, error) {
	rows, err := s.db.Query(ctx, `SELECT quest_id FROM quest_progress ORDER BY completed_at`)
	if err != nil {
		return nil, fmt.Errorf("progress: query: %w", err)
	}
	defer rows.Close()

	set := progress.NewSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("progress: scan: %w", err)
		}
		set.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("progress: rows: %w", err)
	}
	return set, nil
}

func (s *Store) Mark(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx,
		`INSERT INTO quest_progress (quest_id) VALUES ($1) ON CONFLICT (quest_id) DO NOTHING`, id,
	); err != nil {
		return fmt.Errorf("progress: mark %s: %w", id, err)
	}
	return nil
}

func (s *Store) Unmark(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM quest_progress WHERE quest_id = $1`, id); err != nil {
		return fmt.Errorf("progress: unmark %s: %w", id, err)
	}
	return nil
}

// Toggle flips id inside a transaction.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("progress: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM quest_progress WHERE quest_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("progress: toggle %s: %w", id, err)
	}
	done := tag.RowsAffected() == 0
	if done {
		if _, err := tx.Exec(ctx, `INSERT INTO quest_progress (quest_id) VALUES ($1)`, id); err != nil {
			return false, fmt.Errorf("progress: toggle %s: %w", id, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("progress: commit: %w", err)
	}
	return done, nil
}

// Close releases the pool if Open created it.
func (s *Store) Close() error {
	if s.owned {
		s.db.Close()
	}
	return nil
}
