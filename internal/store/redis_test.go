package store_test

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/scoreboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestRedisSnapshots(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key loads an empty board", func(t *testing.T) {
		client, _ := newTestRedis(t)

		got, err := store.NewRedisSnapshots(client, "").Load(ctx)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("round trips", func(t *testing.T) {
		client, _ := newTestRedis(t)

		assertRoundTrip(t, store.NewRedisSnapshots(client, "test:board"))
	})

	t.Run("writes under the configured key", func(t *testing.T) {
		client, mr := newTestRedis(t)
		s := store.NewRedisSnapshots(client, "test:board")

		require.NoError(t, s.Save(ctx, sampleEntries()))

		assert.True(t, mr.Exists("test:board"))
		assert.False(t, mr.Exists(store.DefaultRedisSnapshotKey))
	})

	t.Run("corrupt value is an error", func(t *testing.T) {
		client, mr := newTestRedis(t)
		require.NoError(t, mr.Set(store.DefaultRedisSnapshotKey, "oops"))

		_, err := store.NewRedisSnapshots(client, "").Load(ctx)

		assert.Error(t, err)
	})

	t.Run("unreachable server fails ping and save", func(t *testing.T) {
		client, mr := newTestRedis(t)
		s := store.NewRedisSnapshots(client, "")
		mr.Close()

		assert.Error(t, s.Ping(ctx))
		assert.Error(t, s.Save(ctx, sampleEntries()))
	})
}
