package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

// redisConn lets the injector close the client on shutdown.
type redisConn struct {
	client *redis.Client
}

func (c *redisConn) Shutdown() error {
	return c.client.Close()
}

// RedisPackage provides a lazily connected Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redisConn, error) {
		opts := do.MustInvoke[*Options](i)

		return &redisConn{client: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		return do.MustInvoke[*redisConn](i).client, nil
	})
}
