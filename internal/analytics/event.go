package analytics

import "time"

const (
	TopicScoreSubmitted = "score.submitted"
	TopicScoreRejected  = "score.rejected"
)

// ScoreSubmittedEvent is emitted after a submission was accepted and persisted.
type ScoreSubmittedEvent struct {
	ID          string    `json:"id"`
	Player      string    `json:"player"`
	Score       int64     `json:"score"`
	Level       int64     `json:"level"`
	Rank        int       `json:"rank,omitempty"`
	Ranked      bool      `json:"ranked"`
	TotalScores int       `json:"totalScores"`
	SubmittedAt time.Time `json:"submittedAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// ScoreRejectedEvent is emitted when a submission fails validation, the duplicate guard or storage.
type ScoreRejectedEvent struct {
	Player     string    `json:"player"`
	Kind       string    `json:"kind"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejectedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
}
