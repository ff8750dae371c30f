package store

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/scoreboard/internal/ratelimit"
)

// RateLimitRedisStore implements a sliding window on Redis sorted sets so that
// several server instances share the same counters.
type RateLimitRedisStore struct {
	client *redis.Client
	prefix string
}

// NewRateLimitRedisStore creates a Redis-backed rate limit store.
func NewRateLimitRedisStore(client *redis.Client) *RateLimitRedisStore {
	return &RateLimitRedisStore{client: client, prefix: "ratelimit:"}
}

func (r *RateLimitRedisStore) Record(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()
	redisKey := r.prefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixMicro(), 10)

	var count *redis.IntCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff)
		pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
		count = pipe.ZCard(ctx, redisKey)
		pipe.PExpire(ctx, redisKey, window)

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count.Val(), nil
}

var _ ratelimit.Store = (*RateLimitRedisStore)(nil)
