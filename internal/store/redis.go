package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/scoreboard/internal/leaderboard"
)

// DefaultRedisSnapshotKey holds the board when no key is configured.
const DefaultRedisSnapshotKey = "scoreboard:snapshot"

// RedisSnapshots stores the board as one JSON value. A single SET replaces it atomically.
type RedisSnapshots struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshots creates a Redis-backed snapshot store writing to key.
func NewRedisSnapshots(client *redis.Client, key string) *RedisSnapshots {
	if key == "" {
		key = DefaultRedisSnapshotKey
	}

	return &RedisSnapshots{client: client, key: key}
}

func (r *RedisSnapshots) Load(ctx context.Context) ([]leaderboard.Entry, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []leaderboard.Entry{}, nil
		}

		return nil, err
	}

	entries := []leaderboard.Entry{}
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *RedisSnapshots) Save(ctx context.Context, entries []leaderboard.Entry) error {
	if entries == nil {
		entries = []leaderboard.Entry{}
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.key, b, 0).Err()
}

// Ping checks Redis connectivity.
func (r *RedisSnapshots) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ leaderboard.SnapshotStore = (*RedisSnapshots)(nil)
