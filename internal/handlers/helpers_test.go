package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/serroba/scoreboard/internal/analytics"
	"github.com/serroba/scoreboard/internal/handlers"
	"github.com/serroba/scoreboard/internal/leaderboard"
	"github.com/serroba/scoreboard/internal/store"
	"go.uber.org/zap"
)

var (
	errDiskFull  = errors.New("disk full")
	errBrokerOff = errors.New("broker unavailable")
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// brokenSnapshots fails every save.
type brokenSnapshots struct{}

func (brokenSnapshots) Load(_ context.Context) ([]leaderboard.Entry, error) { return nil, nil }

func (brokenSnapshots) Save(_ context.Context, _ []leaderboard.Entry) error { return errDiskFull }

type recordedEvents struct {
	mu        sync.Mutex
	submitted []*analytics.ScoreSubmittedEvent
	rejected  []*analytics.ScoreRejectedEvent
	err       error
}

func (r *recordedEvents) ScoreSubmitted(_ context.Context, e *analytics.ScoreSubmittedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.submitted = append(r.submitted, e)

	return r.err
}

func (r *recordedEvents) ScoreRejected(_ context.Context, e *analytics.ScoreRejectedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rejected = append(r.rejected, e)

	return r.err
}

type fixture struct {
	api    humatest.TestAPI
	clock  *testClock
	events *recordedEvents
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	snapshots  leaderboard.SnapshotStore
	production bool
}

func withSnapshots(s leaderboard.SnapshotStore) fixtureOption {
	return func(c *fixtureConfig) { c.snapshots = s }
}

func inProduction() fixtureOption {
	return func(c *fixtureConfig) { c.production = true }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := fixtureConfig{snapshots: store.NewMemorySnapshots()}
	for _, opt := range opts {
		opt(&cfg)
	}

	clock := &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	var seq atomic.Int64

	ids := func() string { return fmt.Sprintf("id-%03d", seq.Add(1)) }

	svc := leaderboard.NewService(
		leaderboard.NewBoard(cfg.snapshots, 0),
		leaderboard.NewSanitizer(ids, clock.Now),
		leaderboard.NewDuplicateGuard(0),
		leaderboard.ServiceConfig{Production: cfg.production, Clock: clock.Now},
	)

	events := &recordedEvents{}

	_, api := humatest.New(t)
	handlers.RegisterRoutes(api, handlers.NewScoreHandler(svc, events, zap.NewNop()))

	return &fixture{api: api, clock: clock, events: events}
}

func (f *fixture) submit(name any, score, level any) map[string]any {
	return map[string]any{"name": name, "score": score, "level": level}
}
