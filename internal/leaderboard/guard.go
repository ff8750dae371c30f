package leaderboard

import "time"

// DuplicateGuard rejects a submission when the same name was stored a moment ago.
// It is a spam heuristic keyed on the exact trimmed name, not an identity check.
type DuplicateGuard struct {
	window time.Duration
}

// NewDuplicateGuard creates a guard with the given window. A non-positive window
// falls back to DefaultDuplicateWindow.
func NewDuplicateGuard(window time.Duration) *DuplicateGuard {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}

	return &DuplicateGuard{window: window}
}

// Window returns the blocking window.
func (g *DuplicateGuard) Window() time.Duration {
	return g.window
}

// Admit returns ErrTooSoon if existing holds an entry with candidate's name created
// less than the window before now.
func (g *DuplicateGuard) Admit(candidate Entry, existing []Entry, now time.Time) error {
	for _, e := range existing {
		if e.Name != candidate.Name {
			continue
		}

		if now.Sub(e.CreatedAt) < g.window {
			return ErrTooSoon
		}
	}

	return nil
}
