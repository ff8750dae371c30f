package live

import (
	"sync"
	"time"
)

// Update is what live subscribers see for each stored score. It carries no client metadata.
type Update struct {
	ID          string    `json:"id"`
	Player      string    `json:"player"`
	Score       int64     `json:"score"`
	Level       int64     `json:"level"`
	Position    int       `json:"position,omitempty"`
	Ranked      bool      `json:"ranked"`
	TotalScores int       `json:"totalScores"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Hub fans updates out to subscribers. Slow subscribers miss updates instead of blocking.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]chan Update
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Update)}
}

// Subscribe registers a subscriber with the given buffer.
func (h *Hub) Subscribe(buffer int) (int, <-chan Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	ch := make(chan Update, buffer)
	h.subs[h.next] = ch

	return h.next, ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Subscribers returns the current subscriber count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Broadcast offers u to every subscriber. The read lock is held while sending so that
// Unsubscribe cannot close a channel mid-send; sends never block.
func (h *Hub) Broadcast(u Update) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// Shutdown closes every subscriber channel, which ends their streams.
func (h *Hub) Shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}

	return nil
}
