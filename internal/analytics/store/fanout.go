package store

import (
	"context"
	"errors"

	"github.com/serroba/scoreboard/internal/analytics"
)

// Fanout saves every event into each of its stores.
type Fanout []analytics.Store

func (f Fanout) SaveScoreSubmitted(ctx context.Context, event *analytics.ScoreSubmittedEvent) error {
	errs := make([]error, 0, len(f))
	for _, s := range f {
		errs = append(errs, s.SaveScoreSubmitted(ctx, event))
	}

	return errors.Join(errs...)
}

func (f Fanout) SaveScoreRejected(ctx context.Context, event *analytics.ScoreRejectedEvent) error {
	errs := make([]error, 0, len(f))
	for _, s := range f {
		errs = append(errs, s.SaveScoreRejected(ctx, event))
	}

	return errors.Join(errs...)
}
