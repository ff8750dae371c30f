package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// LimitConfig allows at most Max requests per Window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps each scope to the limits enforced for it.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// PolicyBuilder assembles a Policy.
type PolicyBuilder struct {
	limits map[Scope][]LimitConfig
}

// NewPolicyBuilder starts an empty policy.
func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{limits: make(map[Scope][]LimitConfig)}
}

// AddLimit adds a limit of max requests per window to scope.
func (b *PolicyBuilder) AddLimit(scope Scope, maxRequests int64, window time.Duration) *PolicyBuilder {
	b.limits[scope] = append(b.limits[scope], LimitConfig{Window: window, Max: maxRequests})

	return b
}

// Build returns the assembled policy.
func (b *PolicyBuilder) Build() *Policy {
	return &Policy{Limits: b.limits}
}

// DefaultPolicy is tuned for a game leaderboard: reads are cheap and frequent,
// writes happen about once per play session.
func DefaultPolicy() *Policy {
	return NewPolicyBuilder().
		AddLimit(ScopeGlobal, 600, time.Minute).
		AddLimit(ScopeRead, 300, time.Minute).
		AddLimit(ScopeWrite, 30, time.Minute).
		AddLimit(ScopeWrite, 500, 24*time.Hour).
		Build()
}

// LimitExceeded describes the limit a request ran into.
type LimitExceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

// PolicyLimiter enforces a Policy against a Store.
type PolicyLimiter struct {
	store  Store
	policy *Policy
}

// NewPolicyLimiter creates a limiter for policy backed by store.
func NewPolicyLimiter(store Store, policy *Policy) *PolicyLimiter {
	return &PolicyLimiter{store: store, policy: policy}
}

// Allow records the request under every applicable limit and reports whether all of them
// still hold. When a limit is hit, the returned LimitExceeded says which one.
func (l *PolicyLimiter) Allow(ctx context.Context, clientKey string, scopes []Scope) (bool, *LimitExceeded, error) {
	for _, scope := range scopes {
		for _, limit := range l.policy.Limits[scope] {
			key := fmt.Sprintf("%s:%s:%d", clientKey, scope, limit.Window.Milliseconds())

			count, err := l.store.Record(ctx, key, limit.Window)
			if err != nil {
				return false, nil, err
			}

			if count > limit.Max {
				return false, &LimitExceeded{Scope: scope, Config: limit, Count: count}, nil
			}
		}
	}

	return true, nil, nil
}

// Store returns the store counters are kept in.
func (l *PolicyLimiter) Store() Store {
	return l.store
}
