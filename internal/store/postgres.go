package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/scoreboard/internal/leaderboard"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS leaderboard_entries (
		position   INTEGER PRIMARY KEY,
		id         TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		score      BIGINT NOT NULL,
		level      BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)
`

var entryColumns = []string{"position", "id", "name", "score", "level", "created_at"}

// PostgresSnapshots stores the board as rows ordered by position.
// Each save rewrites the table inside one transaction.
type PostgresSnapshots struct {
	pool *pgxpool.Pool
}

// NewPostgresSnapshots creates a PostgreSQL-backed snapshot store.
func NewPostgresSnapshots(pool *pgxpool.Pool) *PostgresSnapshots {
	return &PostgresSnapshots{pool: pool}
}

// EnsureSchema creates the entries table when missing.
func (p *PostgresSnapshots) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, postgresSchema)

	return err
}

func (p *PostgresSnapshots) Load(ctx context.Context) ([]leaderboard.Entry, error) {
	query := `
		SELECT id, name, score, level, created_at
		FROM leaderboard_entries
		ORDER BY position
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []leaderboard.Entry{}

	for rows.Next() {
		var (
			e         leaderboard.Entry
			createdAt time.Time
		)

		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, err
		}

		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (p *PostgresSnapshots) Save(ctx context.Context, entries []leaderboard.Entry) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return err
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"leaderboard_entries"},
		entryColumns,
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]

			return []any{i + 1, e.ID, e.Name, e.Score, e.Level, e.CreatedAt}, nil
		}),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Ping checks PostgreSQL connectivity.
func (p *PostgresSnapshots) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

var _ leaderboard.SnapshotStore = (*PostgresSnapshots)(nil)
