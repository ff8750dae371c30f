package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/scoreboard/internal/ratelimit"
)

const tagScores = "Scores"

// RegisterRoutes mounts the leaderboard API under /api/scores.
// Writes carry their own limits; reads fall back to the policy's read scope.
func RegisterRoutes(api huma.API, h *ScoreHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-score",
		Method:        http.MethodPost,
		Path:          "/api/scores",
		Summary:       "Submit a score",
		Description:   "Validates and stores a score, then reports its position on the leaderboard.",
		Tags:          []string{tagScores},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusInternalServerError},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 120},
				},
			},
		},
	}, h.SubmitScore)

	huma.Register(api, huma.Operation{
		OperationID: "list-scores",
		Method:      http.MethodGet,
		Path:        "/api/scores",
		Summary:     "List the best scores",
		Tags:        []string{tagScores},
	}, h.ListScores)

	huma.Register(api, huma.Operation{
		OperationID: "top-scores",
		Method:      http.MethodGet,
		Path:        "/api/scores/top/{limit}",
		Summary:     "Top N scores",
		Tags:        []string{tagScores},
	}, h.TopScores)

	huma.Register(api, huma.Operation{
		OperationID: "player-scores",
		Method:      http.MethodGet,
		Path:        "/api/scores/player/{name}",
		Summary:     "Best scores of one player",
		Tags:        []string{tagScores},
		Errors:      []int{http.StatusBadRequest},
	}, h.PlayerScores)

	huma.Register(api, huma.Operation{
		OperationID: "score-stats",
		Method:      http.MethodGet,
		Path:        "/api/scores/stats",
		Summary:     "Leaderboard statistics",
		Tags:        []string{tagScores},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID: "reset-scores",
		Method:      http.MethodDelete,
		Path:        "/api/scores/reset",
		Summary:     "Remove every score",
		Description: "Development only. Refused with 403 in production.",
		Tags:        []string{tagScores},
		Errors:      []int{http.StatusForbidden, http.StatusInternalServerError},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 3}},
			},
		},
	}, h.Reset)
}
