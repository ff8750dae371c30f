package leaderboard

import "sync"

// LocalBoard is the small board a client keeps when the server cannot be reached.
// It orders and truncates exactly like Board but never persists.
type LocalBoard struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
}

// NewLocalBoard creates a fallback board holding at most LocalCapacity entries.
func NewLocalBoard() *LocalBoard {
	return &LocalBoard{capacity: LocalCapacity}
}

// Add inserts entry and returns its 1-based rank, or 0 if it did not make the cut.
func (l *LocalBoard) Add(entry Entry) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, rank := place(l.entries, entry, l.capacity)
	l.entries = next

	return rank
}

// Entries returns a copy of the local entries, best score first.
func (l *LocalBoard) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return head(l.entries, len(l.entries))
}
