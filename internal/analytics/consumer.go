package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/scoreboard/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumers returns one consumer per score topic, each saving into store.
func NewConsumers(subscriber message.Subscriber, store Store, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer[ScoreSubmittedEvent](subscriber, TopicScoreSubmitted, store.SaveScoreSubmitted, logger),
		messaging.NewConsumer[ScoreRejectedEvent](subscriber, TopicScoreRejected, store.SaveScoreRejected, logger),
	}
}
