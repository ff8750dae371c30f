package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/scoreboard/internal/messaging"
)

// Publisher publishes score events.
type Publisher struct {
	submitted messaging.Publish[ScoreSubmittedEvent]
	rejected  messaging.Publish[ScoreRejectedEvent]
}

// NewPublisher creates a Publisher writing to publisher.
func NewPublisher(publisher message.Publisher) *Publisher {
	return &Publisher{
		submitted: messaging.NewPublishFunc[ScoreSubmittedEvent](publisher, TopicScoreSubmitted),
		rejected:  messaging.NewPublishFunc[ScoreRejectedEvent](publisher, TopicScoreRejected),
	}
}

func (p *Publisher) ScoreSubmitted(ctx context.Context, event *ScoreSubmittedEvent) error {
	return p.submitted(ctx, event)
}

func (p *Publisher) ScoreRejected(ctx context.Context, event *ScoreRejectedEvent) error {
	return p.rejected(ctx, event)
}
