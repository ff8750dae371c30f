package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do"
)

type pgConn struct {
	pool *pgxpool.Pool
}

func (c *pgConn) Shutdown() error {
	c.pool.Close()

	return nil
}

// PostgresPackage provides a connection pool. It is only invoked for the postgres storage.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgConn, error) {
		opts := do.MustInvoke[*Options](i)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()

			return nil, fmt.Errorf("ping postgres: %w", err)
		}

		return &pgConn{pool: pool}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		return do.MustInvoke[*pgConn](i).pool, nil
	})
}
