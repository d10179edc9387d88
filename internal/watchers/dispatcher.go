package watchers

import (
	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/ingest"
	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/providers"
)

// Dispatcher classifies raw strings through the provider registry and
// hands identified media to the ingestion queue. A provider declining to
// match is a normal "no signal" outcome, not an error.
type Dispatcher struct {
	registry *providers.Registry
	queue    *ingest.Queue
	logger   *logrus.Logger
}

// NewDispatcher creates a dispatcher
func NewDispatcher(registry *providers.Registry, queue *ingest.Queue, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		queue:    queue,
		logger:   logger,
	}
}

// Dispatch identifies text and enqueues the result. Returns whether a
// provider claimed the string.
func (d *Dispatcher) Dispatch(text string, origin models.Origin) bool {
	info := d.registry.Identify(text)
	if info == nil {
		return false
	}

	d.logger.WithFields(logrus.Fields{
		"source": info.Source,
		"title":  info.Title,
		"origin": origin,
	}).Debug("Media identified")

	d.queue.Push(models.Event{Info: info, Origin: origin})
	return true
}
