package leaderboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
)

// AdmitFunc decides whether a candidate may join the board given its current entries.
// It runs inside the board's writer critical section.
type AdmitFunc func(existing []Entry) error

// Placement describes where an inserted entry landed.
type Placement struct {
	Entry Entry
	// Rank is the 1-based position of Entry, or 0 when the entry did not make the cut.
	Rank  int
	Total int
}

// Ranked reports whether the entry survived truncation.
func (p Placement) Ranked() bool {
	return p.Rank > 0
}

// Board is the bounded, score-ordered collection of entries.
//
// Writers are serialized by writeMu and persist the next snapshot before it becomes
// visible; readers only take mu to copy the current slice, so they never wait on I/O
// and always observe a complete snapshot.
type Board struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	entries   []Entry
	capacity  int
	snapshots SnapshotStore
}

// NewBoard creates an empty board persisted through snapshots.
// A non-positive capacity falls back to MaxRetained.
func NewBoard(snapshots SnapshotStore, capacity int) *Board {
	if capacity <= 0 {
		capacity = MaxRetained
	}

	return &Board{
		capacity:  capacity,
		snapshots: snapshots,
	}
}

// Capacity returns the maximum number of retained entries.
func (b *Board) Capacity() int {
	return b.capacity
}

// Load replaces the in-memory entries with the persisted snapshot.
// The loaded sequence is re-sorted and capped so a hand-edited snapshot cannot break ordering.
func (b *Board) Load(ctx context.Context) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	loaded, err := b.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load snapshot: %w", ErrStorage, err)
	}

	sortByScore(loaded)

	if len(loaded) > b.capacity {
		loaded = loaded[:b.capacity]
	}

	b.swap(loaded)

	return nil
}

// Insert merges entry into the board, persists the result and returns the entry's placement.
// When admit rejects the entry, its error is returned and nothing changes. When the
// snapshot cannot be saved the previous entries stay in place and ErrStorage is returned.
func (b *Board) Insert(ctx context.Context, entry Entry, admit AdmitFunc) (Placement, error) {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	current := b.entries

	if admit != nil {
		if err := admit(current); err != nil {
			return Placement{}, err
		}
	}

	next, rank := place(current, entry, b.capacity)
	if rank == 0 {
		// Evicted by its own insertion: the board is unchanged.
		return Placement{Entry: entry, Total: len(current)}, nil
	}

	if err := b.snapshots.Save(ctx, next); err != nil {
		return Placement{}, fmt.Errorf("%w: save snapshot: %w", ErrStorage, err)
	}

	b.swap(next)

	return Placement{Entry: entry, Rank: rank, Total: len(next)}, nil
}

// Reset removes every entry and persists the empty board.
func (b *Board) Reset(ctx context.Context) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if err := b.snapshots.Save(ctx, []Entry{}); err != nil {
		return fmt.Errorf("%w: save snapshot: %w", ErrStorage, err)
	}

	b.swap(nil)

	return nil
}

// Snapshot returns a copy of the current entries, best score first.
func (b *Board) Snapshot() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, len(b.entries))
	copy(out, b.entries)

	return out
}

// Len returns the number of entries currently on the board.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.entries)
}

func (b *Board) swap(entries []Entry) {
	b.mu.Lock()
	b.entries = entries
	b.mu.Unlock()
}

// place returns a new slice holding current plus candidate, sorted and capped,
// along with the candidate's 1-based rank (0 if it was cut). current is not modified.
func place(current []Entry, candidate Entry, capacity int) ([]Entry, int) {
	next := make([]Entry, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, candidate)

	sortByScore(next)

	if len(next) > capacity {
		next = next[:capacity]
	}

	rank := slices.IndexFunc(next, func(e Entry) bool { return e.ID == candidate.ID }) + 1

	return next, rank
}

// sortByScore orders entries by score, highest first, keeping insertion order on ties.
func sortByScore(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
