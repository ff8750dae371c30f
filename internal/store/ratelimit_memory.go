package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/scoreboard/internal/ratelimit"
)

// RateLimitMemoryStore keeps sliding-window request timestamps per key in memory.
type RateLimitMemoryStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	now      func() time.Time
}

// NewRateLimitMemoryStore creates an empty in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		requests: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Record adds a request for key and returns how many requests fall inside window.
func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	valid := prune(s.requests[key], now.Add(-window))
	valid = append(valid, now)
	s.requests[key] = valid

	return int64(len(valid)), nil
}

// Keys returns how many clients are currently tracked.
func (s *RateLimitMemoryStore) Keys() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

// Sweep drops keys with no request newer than maxAge.
func (s *RateLimitMemoryStore) Sweep(maxAge time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)

	for key, timestamps := range s.requests {
		if len(prune(timestamps, cutoff)) == 0 {
			delete(s.requests, key)
		}
	}
}

func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	valid := make([]time.Time, 0, len(timestamps)+1)

	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	return valid
}

var _ ratelimit.Store = (*RateLimitMemoryStore)(nil)
