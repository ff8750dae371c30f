package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/scoreboard/internal/analytics"
)

const (
	DefaultRedisPrefix = "scoreboard:player:"

	fieldSubmitted = "submitted"
	fieldRejected  = "rejected"
	fieldBest      = "best"
)

// recordSubmission bumps the submission counter and raises the best score when beaten.
var recordSubmission = redis.NewScript(`
local best = tonumber(redis.call('HGET', KEYS[1], 'best') or '-1')
if tonumber(ARGV[1]) > best then
	redis.call('HSET', KEYS[1], 'best', ARGV[1])
end
return redis.call('HINCRBY', KEYS[1], 'submitted', 1)
`)

// PlayerCounters is what RedisCounters knows about one player.
type PlayerCounters struct {
	Submitted int64
	Rejected  int64
	Best      int64
}

// RedisCounters keeps a hash of per-player counters in Redis.
type RedisCounters struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCounters creates counters under prefix. An empty prefix uses DefaultRedisPrefix.
func NewRedisCounters(client redis.Cmdable, prefix string) *RedisCounters {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	return &RedisCounters{client: client, prefix: prefix}
}

func (r *RedisCounters) key(player string) string {
	return r.prefix + player
}

func (r *RedisCounters) SaveScoreSubmitted(ctx context.Context, event *analytics.ScoreSubmittedEvent) error {
	err := recordSubmission.Run(ctx, r.client, []string{r.key(event.Player)}, event.Score).Err()
	if err != nil {
		return fmt.Errorf("count submission for %q: %w", event.Player, err)
	}

	return nil
}

// SaveScoreRejected counts the rejection. Rejections without a usable name are not attributed.
func (r *RedisCounters) SaveScoreRejected(ctx context.Context, event *analytics.ScoreRejectedEvent) error {
	if event.Player == "" {
		return nil
	}

	if err := r.client.HIncrBy(ctx, r.key(event.Player), fieldRejected, 1).Err(); err != nil {
		return fmt.Errorf("count rejection for %q: %w", event.Player, err)
	}

	return nil
}

// Counters returns the counters for player. Unknown players have zero counters.
func (r *RedisCounters) Counters(ctx context.Context, player string) (PlayerCounters, error) {
	vals, err := r.client.HGetAll(ctx, r.key(player)).Result()
	if err != nil {
		return PlayerCounters{}, fmt.Errorf("read counters for %q: %w", player, err)
	}

	var out PlayerCounters

	for field, dst := range map[string]*int64{
		fieldSubmitted: &out.Submitted,
		fieldRejected:  &out.Rejected,
		fieldBest:      &out.Best,
	} {
		raw, ok := vals[field]
		if !ok {
			continue
		}

		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return PlayerCounters{}, fmt.Errorf("parse %s for %q: %w", field, player, err)
		}

		*dst = n
	}

	return out, nil
}
