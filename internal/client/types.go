package client

import (
	"fmt"

	"github.com/serroba/scoreboard/internal/leaderboard"
)

// Submission is what a game sends at the end of a session.
type Submission struct {
	Name  string `json:"name"`
	Score int64  `json:"score"`
	Level int64  `json:"level"`
}

// SubmitResult reports where a submission ended up. When Local is true the server
// could not take it and Fallback holds the reason.
type SubmitResult struct {
	Entry       leaderboard.Entry `json:"score"`
	Position    int               `json:"position,omitempty"`
	Ranked      bool              `json:"ranked"`
	TotalScores int               `json:"totalScores"`
	Message     string            `json:"message"`
	Local       bool              `json:"-"`
	Fallback    error             `json:"-"`
}

// TopResult is a top view; Local marks entries served from the fallback board.
type TopResult struct {
	Limit  int                 `json:"limit"`
	Count  int                 `json:"count"`
	Scores []leaderboard.Entry `json:"scores"`
	Local  bool                `json:"-"`
}

// PlayerScores is a player's best entries.
type PlayerScores struct {
	Player    string              `json:"player"`
	Count     int                 `json:"count"`
	BestScore int64               `json:"bestScore"`
	Scores    []leaderboard.Entry `json:"scores"`
}

// Stats aggregates the server board.
type Stats struct {
	TotalScores  int   `json:"totalScores"`
	TotalPlayers int   `json:"totalPlayers"`
	HighestScore int64 `json:"highestScore"`
	AverageScore int64 `json:"averageScore"`
	HighestLevel int64 `json:"highestLevel"`
	AverageLevel int64 `json:"averageLevel"`
}

// HealthStatus is the server's health report.
type HealthStatus struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Events  string `json:"events,omitempty"`
}

// APIError is a problem response returned by the server.
type APIError struct {
	Status int
	Title  string
	Detail string
	Kind   leaderboard.Kind
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Kind, e.Detail)
	}

	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Errors []struct {
		Value any `json:"value"`
	} `json:"errors"`
}
