package ratelimit

import (
	"context"
	"time"
)

// Store records requests per key.
type Store interface {
	// Record adds one request for key and returns how many requests key made within window,
	// this one included. Requests older than window are forgotten.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
