package ingest

import (
	"sync"

	"github.com/mediascope/mediascope/internal/models"
)

// Queue is the hand-off FIFO between the producers and the ingestion loop.
// It is unbounded so producers never block on Push; the consumer bounds
// work per tick by draining in batches.
type Queue struct {
	mu    sync.Mutex
	items []models.Event
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event. Safe for concurrent use, never blocks.
func (q *Queue) Push(event models.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, event)
}

// Drain removes and returns up to max events in FIFO order
func (q *Queue) Drain(max int) []models.Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 || max <= 0 {
		return nil
	}

	n := max
	if n > len(q.items) {
		n = len(q.items)
	}

	batch := make([]models.Event, n)
	copy(batch, q.items[:n])
	q.items = q.items[n:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return batch
}

// Len returns the number of queued events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
