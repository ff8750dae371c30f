package container

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/scoreboard/internal/health"
	"github.com/serroba/scoreboard/internal/leaderboard"
	"github.com/serroba/scoreboard/internal/store"
	"go.uber.org/zap"
)

// Snapshots is a snapshot backend the health endpoint can probe.
type Snapshots interface {
	leaderboard.SnapshotStore
	health.Checker
}

// RepositoryPackage provides the snapshot backend selected by Options.Storage.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (Snapshots, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		snapshots, err := openSnapshots(i, opts)
		if err != nil {
			return nil, err
		}

		logger.Info("snapshot storage ready", zap.String("storage", opts.Storage))

		return snapshots, nil
	})
}

func openSnapshots(i *do.Injector, opts *Options) (Snapshots, error) {
	switch opts.Storage {
	case StorageFile:
		if err := os.MkdirAll(filepath.Dir(opts.DataFile), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}

		return store.NewFileSnapshots(opts.DataFile), nil
	case StorageRedis:
		return store.NewRedisSnapshots(do.MustInvoke[*redis.Client](i), opts.RedisKey), nil
	case StoragePostgres:
		pg := store.NewPostgresSnapshots(do.MustInvoke[*pgxpool.Pool](i))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}

		return pg, nil
	case StorageSQLite:
		sqlite, err := store.OpenSQLiteSnapshots(opts.SQLitePath)
		if err != nil {
			return nil, err
		}

		return sqlite, nil
	case StorageMemory:
		return store.NewMemorySnapshots(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", opts.Storage)
	}
}
