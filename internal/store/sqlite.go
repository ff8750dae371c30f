package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/serroba/scoreboard/internal/leaderboard"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS leaderboard_entries (
		position   INTEGER PRIMARY KEY,
		id         TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		score      INTEGER NOT NULL,
		level      INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)
`

var errSQLitePathRequired = errors.New("sqlite path is required")

// SQLiteSnapshots stores the board in a local SQLite database.
type SQLiteSnapshots struct {
	db *sql.DB
}

// OpenSQLiteSnapshots opens (or creates) the database at path and ensures the schema.
func OpenSQLiteSnapshots(path string) (*SQLiteSnapshots, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errSQLitePathRequired
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteSnapshots{db: db}, nil
}

func (s *SQLiteSnapshots) Load(ctx context.Context) ([]leaderboard.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, score, level, created_at
		FROM leaderboard_entries
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []leaderboard.Entry{}

	for rows.Next() {
		var (
			e     leaderboard.Entry
			nanos int64
		)

		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Level, &nanos); err != nil {
			return nil, err
		}

		e.CreatedAt = time.Unix(0, nanos).UTC()
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *SQLiteSnapshots) Save(ctx context.Context, entries []leaderboard.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leaderboard_entries (position, id, name, score, level, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, i+1, e.ID, e.Name, e.Score, e.Level, e.CreatedAt.UnixNano()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Ping checks the database handle.
func (s *SQLiteSnapshots) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Shutdown closes the database.
func (s *SQLiteSnapshots) Shutdown() error {
	return s.db.Close()
}

var _ leaderboard.SnapshotStore = (*SQLiteSnapshots)(nil)
