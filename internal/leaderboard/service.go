package leaderboard

import (
	"context"
	"strings"
	"time"
)

// ServiceConfig holds the service's runtime switches.
type ServiceConfig struct {
	// Production disables Reset.
	Production bool
	// Clock is read when the duplicate guard runs. Defaults to time.Now.
	Clock Clock
}

// SubmitResult is the outcome of an accepted submission.
type SubmitResult struct {
	Entry       Entry
	Rank        int
	TotalScores int
}

// Ranked reports whether the entry is on the board after the submission.
func (r *SubmitResult) Ranked() bool {
	return r.Rank > 0
}

// TopPage is a limited top view together with the limit actually applied.
type TopPage struct {
	Limit  int
	Scores []Entry
}

// Service orchestrates submissions and serves the read views.
type Service struct {
	sanitizer  *Sanitizer
	guard      *DuplicateGuard
	board      *Board
	now        Clock
	production bool
}

// NewService wires the submission pipeline together.
func NewService(board *Board, sanitizer *Sanitizer, guard *DuplicateGuard, cfg ServiceConfig) *Service {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &Service{
		sanitizer:  sanitizer,
		guard:      guard,
		board:      board,
		now:        now,
		production: cfg.Production,
	}
}

// Submit validates sub, checks it against recent submissions, stores it and reports its rank.
// Any failing stage aborts the remaining ones; the error's Kind is available through KindOf.
func (s *Service) Submit(ctx context.Context, sub ScoreSubmission) (*SubmitResult, error) {
	entry, err := s.sanitizer.Sanitize(sub)
	if err != nil {
		return nil, err
	}

	placement, err := s.board.Insert(ctx, entry, func(existing []Entry) error {
		return s.guard.Admit(entry, existing, s.now())
	})
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		Entry:       placement.Entry,
		Rank:        placement.Rank,
		TotalScores: placement.Total,
	}, nil
}

// ListTop returns the best n entries. A non-positive n means DefaultListSize.
func (s *Service) ListTop(n int) []Entry {
	if n <= 0 {
		n = DefaultListSize
	}

	return head(s.board.Snapshot(), n)
}

// ListTopLimited returns the best n entries with n clamped to [1, MaxTopLimit].
func (s *Service) ListTopLimited(n int) TopPage {
	limit := ClampLimit(n)

	return TopPage{Limit: limit, Scores: Top(s.board.Snapshot(), limit)}
}

// ListByPlayer returns the player's best entries. A blank name is an input error.
func (s *Service) ListByPlayer(name string) (PlayerScores, error) {
	if strings.TrimSpace(name) == "" {
		return PlayerScores{}, ErrEmptyName
	}

	return ByPlayer(s.board.Snapshot(), name), nil
}

// Stats aggregates the current board.
func (s *Service) Stats() Stats {
	return ComputeStats(s.board.Snapshot())
}

// Reset clears the board. It is refused in production.
func (s *Service) Reset(ctx context.Context) error {
	if s.production {
		return ErrResetForbidden
	}

	return s.board.Reset(ctx)
}

// Production reports whether the service runs in production mode.
func (s *Service) Production() bool {
	return s.production
}
