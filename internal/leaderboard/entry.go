package leaderboard

import (
	"context"
	"time"
)

const (
	// MaxRetained is the number of entries the board keeps after every insert.
	MaxRetained = 100
	// MaxNameLength is the longest accepted player name, in characters, after trimming.
	MaxNameLength = 20
	// MaxTopLimit caps the size of a limited top view.
	MaxTopLimit = 50
	// DefaultTopLimit is used by the limited top view when the requested limit is unusable.
	DefaultTopLimit = 10
	// DefaultListSize is the size of the unlimited top view when no size is requested.
	DefaultListSize = 50
	// MaxPlayerEntries caps the per-player view.
	MaxPlayerEntries = 10
	// LocalCapacity is the capacity of the client-side fallback board.
	LocalCapacity = 10
	// DefaultDuplicateWindow is how long a name is blocked after a stored submission.
	DefaultDuplicateWindow = 10 * time.Second
)

// ScoreSubmission is the untrusted payload a game client sends at the end of a session.
// Score and Level hold whatever the client encoded and are coerced by the Sanitizer.
type ScoreSubmission struct {
	Name  string
	Score any
	Level any
}

// Entry is a validated score stored on the board.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Score     int64     `json:"score"`
	Level     int64     `json:"level"`
	CreatedAt time.Time `json:"date"`
}

// SnapshotStore persists the complete board. Save replaces the previous snapshot as a whole;
// Load returns an empty slice when nothing was saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

// IDGenerator returns a fresh unique entry id.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time
