package leaderboard_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/serroba/scoreboard/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid submission and reports its rank", func(t *testing.T) {
		snapshots := &memorySnapshots{}
		svc := newTestService(snapshots, newFakeClock())

		res, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: " Ana ", Score: 500, Level: 3})

		require.NoError(t, err)
		assert.True(t, res.Ranked())
		assert.Equal(t, 1, res.Rank)
		assert.Equal(t, 1, res.TotalScores)
		assert.Equal(t, "Ana", res.Entry.Name)
		assert.NotEmpty(t, res.Entry.ID)
		assert.Equal(t, 1, snapshots.saveCount())
	})

	t.Run("rejects a resubmission two seconds later", func(t *testing.T) {
		clock := newFakeClock()
		svc := newTestService(&memorySnapshots{}, clock)

		_, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 500, Level: 3})
		require.NoError(t, err)

		clock.Advance(2 * time.Second)

		_, err = svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 10, Level: 1})

		require.ErrorIs(t, err, leaderboard.ErrTooSoon)
		assert.Len(t, svc.ListTop(0), 1)
	})

	t.Run("accepts the same name after ten seconds", func(t *testing.T) {
		clock := newFakeClock()
		svc := newTestService(&memorySnapshots{}, clock)

		_, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 500, Level: 3})
		require.NoError(t, err)

		clock.Advance(10 * time.Second)

		res, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 10, Level: 1})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Rank)
	})

	t.Run("validation failures never touch the board", func(t *testing.T) {
		snapshots := &memorySnapshots{}
		svc := newTestService(snapshots, newFakeClock())

		_, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "", Score: 1, Level: 1})

		require.ErrorIs(t, err, leaderboard.ErrEmptyName)
		assert.Zero(t, snapshots.saveCount())
	})

	t.Run("duplicate rejections never touch the board", func(t *testing.T) {
		snapshots := &memorySnapshots{}
		svc := newTestService(snapshots, newFakeClock())

		_, _ = svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 1, Level: 1})
		_, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 9999, Level: 1})

		require.ErrorIs(t, err, leaderboard.ErrTooSoon)
		assert.Equal(t, 1, snapshots.saveCount())
	})

	t.Run("reports storage failures", func(t *testing.T) {
		snapshots := &memorySnapshots{saveErr: errDisk}
		svc := newTestService(snapshots, newFakeClock())

		_, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 1, Level: 1})

		assert.Equal(t, leaderboard.KindStorageFailure, leaderboard.KindOf(err))
		assert.Empty(t, svc.ListTop(0))
	})

	t.Run("an entry below the cut is accepted but not ranked", func(t *testing.T) {
		clock := newFakeClock()
		svc := newTestService(&memorySnapshots{}, clock)

		for i := range leaderboard.MaxRetained {
			_, err := svc.Submit(ctx, leaderboard.ScoreSubmission{
				Name:  fmt.Sprintf("player%d", i),
				Score: leaderboard.MaxRetained - i,
				Level: 1,
			})
			require.NoError(t, err)
		}

		res, err := svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "late", Score: 0, Level: 1})

		require.NoError(t, err)
		assert.False(t, res.Ranked())

		top := svc.ListTop(100)
		assert.Len(t, top, leaderboard.MaxRetained)

		for _, e := range top {
			assert.NotEqual(t, res.Entry.ID, e.ID)
		}
	})
}

func TestService_ConcurrentSubmissions(t *testing.T) {
	for _, n := range []int{40, 150} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			svc := newTestService(&memorySnapshots{}, newFakeClock())

			var wg sync.WaitGroup

			errs := make(chan error, n)

			for i := range n {
				wg.Add(1)

				go func() {
					defer wg.Done()

					_, err := svc.Submit(context.Background(), leaderboard.ScoreSubmission{
						Name:  fmt.Sprintf("player-%d", i),
						Score: i * 7 % 101,
						Level: 1 + i%5,
					})
					errs <- err
				}()
			}

			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}

			top := svc.ListTop(leaderboard.MaxRetained)
			assert.Len(t, top, min(n, leaderboard.MaxRetained))
			assert.True(t, isSortedDesc(top))

			seen := make(map[string]bool, len(top))
			for _, e := range top {
				assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
				seen[e.ID] = true
			}
		})
	}
}

func TestService_ConcurrentSameNameAdmitsOne(t *testing.T) {
	svc := newTestService(&memorySnapshots{}, newFakeClock())

	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _ = svc.Submit(context.Background(), leaderboard.ScoreSubmission{Name: "Ana", Score: 5, Level: 1})
		}()
	}

	wg.Wait()

	assert.Len(t, svc.ListTop(0), 1)
}

func TestService_Views(t *testing.T) {
	ctx := context.Background()

	t.Run("limited top clamps the limit", func(t *testing.T) {
		svc := newTestService(&memorySnapshots{}, newFakeClock())
		_, _ = svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 5, Level: 1})

		page := svc.ListTopLimited(999)

		assert.Equal(t, 50, page.Limit)
		assert.Len(t, page.Scores, 1)
		assert.Equal(t, 1, svc.ListTopLimited(-3).Limit)
	})

	t.Run("stats on an empty board are zero", func(t *testing.T) {
		svc := newTestService(&memorySnapshots{}, newFakeClock())

		assert.Equal(t, leaderboard.Stats{}, svc.Stats())
	})

	t.Run("player view requires a name", func(t *testing.T) {
		svc := newTestService(&memorySnapshots{}, newFakeClock())

		_, err := svc.ListByPlayer("   ")

		require.ErrorIs(t, err, leaderboard.ErrEmptyName)
	})

	t.Run("player view of an unknown player is empty", func(t *testing.T) {
		svc := newTestService(&memorySnapshots{}, newFakeClock())

		got, err := svc.ListByPlayer("nobody")

		require.NoError(t, err)
		assert.Zero(t, got.BestScore)
		assert.Empty(t, got.Scores)
	})
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the board outside production", func(t *testing.T) {
		svc := newTestService(&memorySnapshots{}, newFakeClock())
		_, _ = svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 5, Level: 1})

		require.NoError(t, svc.Reset(ctx))
		assert.Empty(t, svc.ListTop(0))
	})

	t.Run("is refused in production", func(t *testing.T) {
		snapshots := &memorySnapshots{}
		clock := newFakeClock()
		svc := leaderboard.NewService(
			leaderboard.NewBoard(snapshots, 0),
			leaderboard.NewSanitizer(sequentialIDs(), clock.Now),
			leaderboard.NewDuplicateGuard(0),
			leaderboard.ServiceConfig{Production: true, Clock: clock.Now},
		)
		_, _ = svc.Submit(ctx, leaderboard.ScoreSubmission{Name: "Ana", Score: 5, Level: 1})

		err := svc.Reset(ctx)

		require.ErrorIs(t, err, leaderboard.ErrResetForbidden)
		assert.Equal(t, leaderboard.KindNotPermitted, leaderboard.KindOf(err))
		assert.Len(t, svc.ListTop(0), 1)
		assert.True(t, svc.Production())
	})
}
