package watchers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/models"
)

// WindowWatcher polls the foreground window title and dispatches it when
// it differs from the immediately preceding observation. Consecutive
// identical titles never re-dispatch; a title that disappears and
// reappears later dispatches again.
type WindowWatcher struct {
	dispatcher *Dispatcher
	interval   time.Duration
	titleFn    func() string
	lastTitle  string
	logger     *logrus.Logger
}

// NewWindowWatcher creates the poller using the platform title accessor
func NewWindowWatcher(dispatcher *Dispatcher, interval time.Duration, logger *logrus.Logger) *WindowWatcher {
	return &WindowWatcher{
		dispatcher: dispatcher,
		interval:   interval,
		titleFn:    ActiveWindowTitle,
		logger:     logger,
	}
}

// Run polls until ctx is cancelled. Blocking; run it on its own goroutine.
// Shutdown does not wait for an in-flight iteration.
func (w *WindowWatcher) Run(ctx context.Context) {
	w.logger.WithField("interval", w.interval).Info("Window watcher started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Window watcher stopped")
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll runs one iteration with failure isolation: a panic is logged and
// the loop continues at the next tick
func (w *WindowWatcher) poll() {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithField("panic", r).Error("Window watcher iteration failed")
		}
	}()
	w.observe()
}

func (w *WindowWatcher) observe() {
	title := w.titleFn()
	if title == "" || title == w.lastTitle {
		return
	}
	w.lastTitle = title

	w.logger.WithField("title", title).Debug("Foreground window changed")
	w.dispatcher.Dispatch(title, models.OriginWindowWatcher)
}
