package ingest

import (
	"sync"
	"time"
)

// ChangeTracker is the downstream change-notification collaborator. The
// loop bumps it at most once per tick; consumers read the counter to learn
// that something changed, with no further payload.
type ChangeTracker struct {
	mu    sync.Mutex
	count uint64
	last  time.Time
}

// NewChangeTracker creates a tracker with no recorded changes
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{}
}

// Mark records one coalesced change notification
func (t *ChangeTracker) Mark() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
	t.last = time.Now()
}

// Snapshot returns the notification count and the time of the last one
func (t *ChangeTracker) Snapshot() (uint64, time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count, t.last
}
