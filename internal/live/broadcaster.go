package live

import (
	"context"

	"github.com/serroba/scoreboard/internal/analytics"
	"github.com/serroba/scoreboard/internal/handlers"
)

// Broadcaster forwards accepted scores to a Hub before passing every event on.
type Broadcaster struct {
	hub  *Hub
	next handlers.EventPublisher
}

var _ handlers.EventPublisher = (*Broadcaster)(nil)

func NewBroadcaster(hub *Hub, next handlers.EventPublisher) *Broadcaster {
	return &Broadcaster{hub: hub, next: next}
}

func (b *Broadcaster) ScoreSubmitted(ctx context.Context, event *analytics.ScoreSubmittedEvent) error {
	b.hub.Broadcast(Update{
		ID:          event.ID,
		Player:      event.Player,
		Score:       event.Score,
		Level:       event.Level,
		Position:    event.Rank,
		Ranked:      event.Ranked,
		TotalScores: event.TotalScores,
		SubmittedAt: event.SubmittedAt,
	})

	return b.next.ScoreSubmitted(ctx, event)
}

func (b *Broadcaster) ScoreRejected(ctx context.Context, event *analytics.ScoreRejectedEvent) error {
	return b.next.ScoreRejected(ctx, event)
}
