package container

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/samber/do"
	"github.com/serroba/scoreboard/internal/leaderboard"
	"go.uber.org/zap"
)

const nanoIDLength = 21

// LeaderboardPackage provides the id generator, the loaded board and the service.
func LeaderboardPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (leaderboard.IDGenerator, error) {
		return NewIDGenerator(do.MustInvoke[*Options](i).IDFormat)
	})

	do.Provide(injector, func(i *do.Injector) (*leaderboard.Board, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		board := leaderboard.NewBoard(do.MustInvoke[Snapshots](i), leaderboard.MaxRetained)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := board.Load(ctx); err != nil {
			logger.Error("could not load saved scores, starting with an empty board", zap.Error(err))
		} else {
			logger.Info("scores loaded", zap.Int("count", board.Len()))
		}

		return board, nil
	})

	do.Provide(injector, func(i *do.Injector) (*leaderboard.Service, error) {
		opts := do.MustInvoke[*Options](i)

		return leaderboard.NewService(
			do.MustInvoke[*leaderboard.Board](i),
			leaderboard.NewSanitizer(do.MustInvoke[leaderboard.IDGenerator](i), time.Now),
			leaderboard.NewDuplicateGuard(leaderboard.DefaultDuplicateWindow),
			leaderboard.ServiceConfig{Production: opts.Production()},
		), nil
	})
}

// NewIDGenerator returns a random id source: UUIDv4 strings or 21 character nanoids.
func NewIDGenerator(format string) (leaderboard.IDGenerator, error) {
	switch format {
	case IDFormatUUID:
		return uuid.NewString, nil
	case IDFormatNanoID:
		gen, err := nanoid.Standard(nanoIDLength)
		if err != nil {
			return nil, fmt.Errorf("nanoid generator: %w", err)
		}

		return gen, nil
	default:
		return nil, fmt.Errorf("unknown id format %q", format)
	}
}
