package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/serroba/scoreboard/internal/analytics"
	"github.com/serroba/scoreboard/internal/leaderboard"
	"go.uber.org/zap"
)

// EventPublisher receives score events. Publishing is best effort.
type EventPublisher interface {
	ScoreSubmitted(ctx context.Context, event *analytics.ScoreSubmittedEvent) error
	ScoreRejected(ctx context.Context, event *analytics.ScoreRejectedEvent) error
}

// ScoreHandler serves the leaderboard API.
type ScoreHandler struct {
	service *leaderboard.Service
	events  EventPublisher
	logger  *zap.Logger
	now     func() time.Time
}

// NewScoreHandler creates a handler over service.
func NewScoreHandler(service *leaderboard.Service, events EventPublisher, logger *zap.Logger) *ScoreHandler {
	return &ScoreHandler{
		service: service,
		events:  events,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *ScoreHandler) SubmitScore(ctx context.Context, req *SubmitScoreRequest) (*SubmitScoreResponse, error) {
	sub := leaderboard.ScoreSubmission{
		Name:  nameOf(req.Body.Name),
		Score: req.Body.Score,
		Level: req.Body.Level,
	}

	res, err := h.service.Submit(ctx, sub)
	if err != nil {
		h.rejected(ctx, sub.Name, err)

		return nil, toHTTPError(err, "body")
	}

	h.logger.Info("score saved",
		zap.String("player", res.Entry.Name),
		zap.Int64("score", res.Entry.Score),
		zap.Int64("level", res.Entry.Level),
		zap.Int("rank", res.Rank),
	)
	h.submitted(ctx, res)

	resp := &SubmitScoreResponse{}
	resp.Body.Accepted = true
	resp.Body.Score = res.Entry
	resp.Body.Position = res.Rank
	resp.Body.Ranked = res.Ranked()
	resp.Body.TotalScores = res.TotalScores
	resp.Body.Message = "score saved"

	if !res.Ranked() {
		resp.Body.Message = "score saved but it did not reach the leaderboard"
	}

	return resp, nil
}

func (h *ScoreHandler) ListScores(_ context.Context, req *ListScoresRequest) (*ListScoresResponse, error) {
	n := req.Limit
	if n <= 0 {
		n = leaderboard.DefaultListSize
	}

	return &ListScoresResponse{Body: h.service.ListTop(min(n, MaxListSize))}, nil
}

func (h *ScoreHandler) TopScores(_ context.Context, req *TopScoresRequest) (*TopScoresResponse, error) {
	page := h.service.ListTopLimited(parseLimit(req.Limit))

	resp := &TopScoresResponse{}
	resp.Body.Limit = page.Limit
	resp.Body.Count = len(page.Scores)
	resp.Body.Scores = page.Scores

	return resp, nil
}

func (h *ScoreHandler) PlayerScores(_ context.Context, req *PlayerScoresRequest) (*PlayerScoresResponse, error) {
	scores, err := h.service.ListByPlayer(req.Name)
	if err != nil {
		return nil, toHTTPError(err, "path.name")
	}

	resp := &PlayerScoresResponse{}
	resp.Body.Player = scores.Player
	resp.Body.Count = len(scores.Scores)
	resp.Body.BestScore = scores.BestScore
	resp.Body.Scores = scores.Scores

	return resp, nil
}

func (h *ScoreHandler) Stats(_ context.Context, _ *struct{}) (*StatsResponse, error) {
	stats := h.service.Stats()

	resp := &StatsResponse{}
	resp.Body.TotalScores = stats.TotalScores
	resp.Body.TotalPlayers = stats.TotalPlayers
	resp.Body.HighestScore = stats.HighestScore
	resp.Body.AverageScore = stats.AverageScore
	resp.Body.HighestLevel = stats.HighestLevel
	resp.Body.AverageLevel = stats.AverageLevel

	return resp, nil
}

func (h *ScoreHandler) Reset(ctx context.Context, _ *struct{}) (*ResetResponse, error) {
	if err := h.service.Reset(ctx); err != nil {
		if !errors.Is(err, leaderboard.ErrResetForbidden) {
			h.logger.Error("reset failed", zap.Error(err))
		}

		return nil, toHTTPError(err, "")
	}

	h.logger.Info("leaderboard reset")

	resp := &ResetResponse{}
	resp.Body.Message = "all scores removed"

	return resp, nil
}

func (h *ScoreHandler) submitted(ctx context.Context, res *leaderboard.SubmitResult) {
	meta := RequestMetaFromContext(ctx)

	err := h.events.ScoreSubmitted(ctx, &analytics.ScoreSubmittedEvent{
		ID:          res.Entry.ID,
		Player:      res.Entry.Name,
		Score:       res.Entry.Score,
		Level:       res.Entry.Level,
		Rank:        res.Rank,
		Ranked:      res.Ranked(),
		TotalScores: res.TotalScores,
		SubmittedAt: res.Entry.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	})
	if err != nil {
		h.logger.Error("failed to publish score event", zap.String("id", res.Entry.ID), zap.Error(err))
	}
}

func (h *ScoreHandler) rejected(ctx context.Context, name string, cause error) {
	kind := leaderboard.KindOf(cause)

	switch kind {
	case leaderboard.KindStorageFailure, leaderboard.KindUnknown:
		h.logger.Error("score not saved", zap.String("player", name), zap.Error(cause))
	default:
		h.logger.Debug("score rejected", zap.String("player", name), zap.String("kind", string(kind)))
	}

	meta := RequestMetaFromContext(ctx)

	err := h.events.ScoreRejected(ctx, &analytics.ScoreRejectedEvent{
		Player:     strings.TrimSpace(name),
		Kind:       string(kind),
		Reason:     cause.Error(),
		RejectedAt: h.now().UTC(),
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
	})
	if err != nil {
		h.logger.Error("failed to publish rejection event", zap.Error(err))
	}
}

// nameOf accepts only string names. Anything else is treated as missing.
func nameOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}

// parseLimit reads the leading integer of s. Missing, unparsable or zero limits select
// leaderboard.DefaultTopLimit.
func parseLimit(s string) int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}

	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(s[:end])

	switch {
	case errors.Is(err, strconv.ErrRange) && s[0] == '-':
		return 1
	case errors.Is(err, strconv.ErrRange):
		return leaderboard.MaxTopLimit
	case err != nil, n == 0:
		return leaderboard.DefaultTopLimit
	default:
		return n
	}
}
