package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/ingest"
	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/providers"
)

// StatusHandler reports catalogue counts, queue depth and change-feed
// state
type StatusHandler struct {
	db       *models.Database
	queue    *ingest.Queue
	changes  *ingest.ChangeTracker
	registry *providers.Registry
	logger   *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, queue *ingest.Queue, changes *ingest.ChangeTracker, registry *providers.Registry, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:       db,
		queue:    queue,
		changes:  changes,
		registry: registry,
		logger:   logger,
	}
}

type statusResponse struct {
	Catalogue    *models.Stats `json:"catalogue"`
	QueueDepth   int           `json:"queue_depth"`
	ChangeTicks  uint64        `json:"change_ticks"`
	LastChangeAt *time.Time    `json:"last_change_at,omitempty"`
	Providers    []string      `json:"providers"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.GetStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to collect catalogue stats")
		writeError(w, http.StatusInternalServerError, "failed to collect stats")
		return
	}

	count, last := h.changes.Snapshot()
	resp := statusResponse{
		Catalogue:   stats,
		QueueDepth:  h.queue.Len(),
		ChangeTicks: count,
		Providers:   h.registry.Names(),
	}
	if !last.IsZero() {
		resp.LastChangeAt = &last
	}

	writeJSON(w, http.StatusOK, resp)
}
