package store

import (
	"context"
	"sync"

	"github.com/serroba/scoreboard/internal/leaderboard"
)

// MemorySnapshots keeps the board snapshot in process memory. Nothing survives a restart.
type MemorySnapshots struct {
	mu      sync.RWMutex
	entries []leaderboard.Entry
}

// NewMemorySnapshots creates an empty in-memory snapshot store.
func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{}
}

func (m *MemorySnapshots) Load(_ context.Context) ([]leaderboard.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneEntries(m.entries), nil
}

func (m *MemorySnapshots) Save(_ context.Context, entries []leaderboard.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = cloneEntries(entries)

	return nil
}

// Ping always succeeds.
func (m *MemorySnapshots) Ping(_ context.Context) error {
	return nil
}

func cloneEntries(entries []leaderboard.Entry) []leaderboard.Entry {
	out := make([]leaderboard.Entry, len(entries))
	copy(out, entries)

	return out
}

var _ leaderboard.SnapshotStore = (*MemorySnapshots)(nil)
