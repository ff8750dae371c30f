package container

import (
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/scoreboard/internal/ratelimit"
	"github.com/serroba/scoreboard/internal/store"
	"go.uber.org/zap"
)

const (
	sweepInterval = time.Minute
	sweepMaxAge   = 24 * time.Hour
)

// sweeper drops idle clients from the in-memory rate limit store.
type sweeper struct {
	store *store.RateLimitMemoryStore
	stop  chan struct{}
	once  sync.Once
	done  chan struct{}
}

func startSweeper(s *store.RateLimitMemoryStore) *sweeper {
	sw := &sweeper{store: s, stop: make(chan struct{}), done: make(chan struct{})}

	go func() {
		defer close(sw.done)

		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-sw.stop:
				return
			case <-ticker.C:
				sw.store.Sweep(sweepMaxAge)
			}
		}
	}()

	return sw
}

func (s *sweeper) Shutdown() error {
	s.once.Do(func() { close(s.stop) })
	<-s.done

	return nil
}

// RateLimitPackage provides the policy limiter. Counters live in Redis when the server
// already talks to Redis, so several instances share them, and in memory otherwise.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*store.RateLimitMemoryStore, error) {
		return store.NewRateLimitMemoryStore(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*sweeper, error) {
		return startSweeper(do.MustInvoke[*store.RateLimitMemoryStore](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.UsesRedis() {
			logger.Info("rate limit counters in redis")

			return store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i)), nil
		}

		_ = do.MustInvoke[*sweeper](i)

		return do.MustInvoke[*store.RateLimitMemoryStore](i), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		return ratelimit.NewPolicyLimiter(do.MustInvoke[ratelimit.Store](i), ratelimit.DefaultPolicy()), nil
	})
}
