package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/scoreboard/internal/leaderboard"
	"github.com/serroba/scoreboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleEntries carries microsecond timestamps, the precision the sanitizer stamps.
func sampleEntries() []leaderboard.Entry {
	created := time.Date(2024, 6, 1, 12, 0, 0, 123456000, time.UTC)

	return []leaderboard.Entry{
		{ID: "id-1", Name: "Ana", Score: 500, Level: 3, CreatedAt: created},
		{ID: "id-2", Name: "Bob", Score: 300, Level: 2, CreatedAt: created.Add(time.Second)},
		{ID: "id-3", Name: "Cy", Score: 300, Level: 1, CreatedAt: created.Add(2 * time.Second)},
	}
}

// assertRoundTrip saves sample entries, loads them back and expects the same sequence.
func assertRoundTrip(t *testing.T, s leaderboard.SnapshotStore) {
	t.Helper()

	ctx := context.Background()
	want := sampleEntries()

	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.Save(ctx, want[:1]))

	got, err = s.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, want[:1], got)
}

func TestMemorySnapshots(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		got, err := store.NewMemorySnapshots().Load(context.Background())

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("round trips", func(t *testing.T) {
		assertRoundTrip(t, store.NewMemorySnapshots())
	})

	t.Run("does not alias the caller's slice", func(t *testing.T) {
		s := store.NewMemorySnapshots()
		entries := sampleEntries()
		require.NoError(t, s.Save(context.Background(), entries))

		entries[0].Name = "changed"

		got, _ := s.Load(context.Background())
		assert.Equal(t, "Ana", got[0].Name)
	})
}
