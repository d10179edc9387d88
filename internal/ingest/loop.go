package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrLoopStopped is returned by Submit after the loop has shut down
var ErrLoopStopped = errors.New("ingestion loop stopped")

type action struct {
	fn   func() (bool, error)
	done chan error
}

// Loop is the single consumer of the hand-off queue. Each tick drains a
// bounded batch, applies it through the catalogue, runs submitted store
// actions, and fires at most one change notification. All store mutations
// happen on this goroutine.
type Loop struct {
	queue     *Queue
	catalog   *Catalog
	interval  time.Duration
	batchSize int
	notify    func()
	logger    *logrus.Logger

	actions chan action
	stopped chan struct{}
}

// NewLoop creates the ingestion loop. notify may be nil.
func NewLoop(queue *Queue, catalog *Catalog, interval time.Duration, batchSize int, notify func(), logger *logrus.Logger) *Loop {
	return &Loop{
		queue:     queue,
		catalog:   catalog,
		interval:  interval,
		batchSize: batchSize,
		notify:    notify,
		logger:    logger,
		actions:   make(chan action, 32),
		stopped:   make(chan struct{}),
	}
}

// Run ticks until ctx is cancelled. Blocking; run it on its own goroutine.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.stopped)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.WithField("interval", l.interval).Info("Ingestion loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Ingestion loop stopped")
			return
		case <-ticker.C:
			l.tick()
		}
	}
}

// Submit runs fn on the loop goroutine between batches and returns its
// error. fn reports whether it changed persisted data; changes share the
// tick's coalesced notification.
func (l *Loop) Submit(fn func() (bool, error)) error {
	act := action{fn: fn, done: make(chan error, 1)}

	select {
	case l.actions <- act:
	case <-l.stopped:
		return ErrLoopStopped
	}

	select {
	case err := <-act.done:
		return err
	case <-l.stopped:
		return ErrLoopStopped
	}
}

// tick drains one batch and any pending actions. A per-item failure is
// logged and dropped; it never aborts the batch and is never re-queued.
func (l *Loop) tick() {
	changed := false

	for _, event := range l.queue.Drain(l.batchSize) {
		ok, err := l.catalog.Ingest(event.Info, event.Origin)
		if err != nil {
			l.logger.WithError(err).WithField("origin", event.Origin).Error("Event processing failed")
			continue
		}
		if ok {
			changed = true
		}
	}

drain:
	for {
		select {
		case act := <-l.actions:
			ok, err := act.fn()
			if ok {
				changed = true
			}
			act.done <- err
		default:
			break drain
		}
	}

	if changed && l.notify != nil {
		l.notify()
	}
}
