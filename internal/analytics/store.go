package analytics

import "context"

// Store records score events.
type Store interface {
	SaveScoreSubmitted(ctx context.Context, event *ScoreSubmittedEvent) error
	SaveScoreRejected(ctx context.Context, event *ScoreRejectedEvent) error
}
