package handlers

import "github.com/serroba/scoreboard/internal/leaderboard"

// MaxListSize caps GET /api/scores.
const MaxListSize = leaderboard.MaxRetained

// SubmitScoreRequest carries an untrusted submission. Every field is optional and loosely typed
// so that malformed input reaches validation and is answered with its rejection kind.
type SubmitScoreRequest struct {
	Body struct {
		_     struct{} `additionalProperties:"true" json:"-"`
		Name  any      `doc:"Player name, 1 to 20 characters after trimming" json:"name,omitempty"  required:"false"`
		Score any      `doc:"Non-negative integer score"                     json:"score,omitempty" required:"false"`
		Level any      `doc:"Level reached, at least 1"                      json:"level,omitempty" required:"false"`
	}
}

// SubmitScoreResponse reports a stored submission.
type SubmitScoreResponse struct {
	Body struct {
		Message     string            `doc:"Human readable outcome"                          json:"message"`
		Accepted    bool              `doc:"Always true for a stored submission"             json:"accepted"`
		Score       leaderboard.Entry `doc:"The stored entry"                                json:"score"`
		Position    int               `doc:"1-based rank, absent when the entry missed the cut" json:"position,omitempty"`
		Ranked      bool              `doc:"Whether the entry is on the board"               json:"ranked"`
		TotalScores int               `doc:"Entries on the board after the submission"       json:"totalScores"`
	}
}

// ListScoresRequest selects the size of the full listing.
type ListScoresRequest struct {
	Limit int `doc:"Number of entries, default 50, at most 100" query:"limit" required:"false"`
}

// ListScoresResponse is the best-first listing.
type ListScoresResponse struct {
	Body []leaderboard.Entry
}

// TopScoresRequest takes the limit as text so unparsable values fall back to the default.
type TopScoresRequest struct {
	Limit string `doc:"Number of entries, clamped to [1, 50]" example:"10" path:"limit"`
}

// TopScoresResponse is a limited top view.
type TopScoresResponse struct {
	Body struct {
		Limit  int                 `doc:"Limit actually applied" json:"limit"`
		Count  int                 `json:"count"`
		Scores []leaderboard.Entry `json:"scores"`
	}
}

// PlayerScoresRequest selects a player.
type PlayerScoresRequest struct {
	Name string `doc:"Player name, matched ignoring case" example:"ana" path:"name"`
}

// PlayerScoresResponse lists a player's best entries.
type PlayerScoresResponse struct {
	Body struct {
		Player    string              `json:"player"`
		Count     int                 `json:"count"`
		BestScore int64               `json:"bestScore"`
		Scores    []leaderboard.Entry `json:"scores"`
	}
}

// StatsResponse aggregates the board.
type StatsResponse struct {
	Body struct {
		TotalScores  int   `json:"totalScores"`
		TotalPlayers int   `json:"totalPlayers"`
		HighestScore int64 `json:"highestScore"`
		AverageScore int64 `json:"averageScore"`
		HighestLevel int64 `json:"highestLevel"`
		AverageLevel int64 `json:"averageLevel"`
	}
}

// ResetResponse confirms a reset.
type ResetResponse struct {
	Body struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
}
