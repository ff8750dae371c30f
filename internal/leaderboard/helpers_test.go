package leaderboard_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/serroba/scoreboard/internal/leaderboard"
)

var errDisk = errors.New("disk full")

// memorySnapshots is a SnapshotStore double that records saves and can fail on demand.
type memorySnapshots struct {
	mu      sync.Mutex
	saved   []leaderboard.Entry
	saves   int
	saveErr error
	loadErr error
}

func (m *memorySnapshots) Load(_ context.Context) ([]leaderboard.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}

	out := make([]leaderboard.Entry, len(m.saved))
	copy(out, m.saved)

	return out, nil
}

func (m *memorySnapshots) Save(_ context.Context, entries []leaderboard.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}

	m.saves++
	m.saved = make([]leaderboard.Entry, len(entries))
	copy(m.saved, entries)

	return nil
}

func (m *memorySnapshots) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saves
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

func sequentialIDs() leaderboard.IDGenerator {
	var n atomic.Int64

	return func() string {
		return fmt.Sprintf("id-%04d", n.Add(1))
	}
}

func newTestService(snapshots *memorySnapshots, clock *fakeClock) *leaderboard.Service {
	board := leaderboard.NewBoard(snapshots, leaderboard.MaxRetained)

	return leaderboard.NewService(
		board,
		leaderboard.NewSanitizer(sequentialIDs(), clock.Now),
		leaderboard.NewDuplicateGuard(leaderboard.DefaultDuplicateWindow),
		leaderboard.ServiceConfig{Clock: clock.Now},
	)
}

func entry(id, name string, score int64) leaderboard.Entry {
	return leaderboard.Entry{
		ID:        id,
		Name:      name,
		Score:     score,
		Level:     1,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// fillBoard inserts count entries with scores count..1, best first.
func fillBoard(b *leaderboard.Board, count int) {
	for i := range count {
		score := int64(count - i)
		_, _ = b.Insert(context.Background(), entry(fmt.Sprintf("seed-%03d", i), fmt.Sprintf("seed%d", i), score), nil)
	}
}

func isSortedDesc(entries []leaderboard.Entry) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i].Score > entries[i-1].Score {
			return false
		}
	}

	return true
}
