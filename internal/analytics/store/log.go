package store

import (
	"context"

	"github.com/serroba/scoreboard/internal/analytics"
	"go.uber.org/zap"
)

// Log writes score events to the log and keeps nothing.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a Log store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) SaveScoreSubmitted(_ context.Context, event *analytics.ScoreSubmittedEvent) error {
	l.logger.Info("score submitted",
		zap.String("id", event.ID),
		zap.String("player", event.Player),
		zap.Int64("score", event.Score),
		zap.Int64("level", event.Level),
		zap.Int("rank", event.Rank),
		zap.Bool("ranked", event.Ranked),
		zap.Time("submittedAt", event.SubmittedAt),
	)

	return nil
}

func (l *Log) SaveScoreRejected(_ context.Context, event *analytics.ScoreRejectedEvent) error {
	l.logger.Info("score rejected",
		zap.String("player", event.Player),
		zap.String("kind", event.Kind),
		zap.String("reason", event.Reason),
		zap.String("clientIp", event.ClientIP),
	)

	return nil
}
