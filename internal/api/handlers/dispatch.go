package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/watchers"
)

// DispatchHandler accepts raw signals over HTTP (browser extensions,
// scripts) and feeds them through the same classification and queue as
// the pollers
type DispatchHandler struct {
	dispatcher *watchers.Dispatcher
	logger     *logrus.Logger
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(dispatcher *watchers.Dispatcher, logger *logrus.Logger) *DispatchHandler {
	return &DispatchHandler{dispatcher: dispatcher, logger: logger}
}

type dispatchRequest struct {
	Text   string `json:"text"`
	Origin string `json:"origin,omitempty"`
}

// ServeHTTP handles POST /api/dispatch
func (h *DispatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	origin := models.Origin(req.Origin)
	switch origin {
	case "":
		origin = models.OriginExternal
	case models.OriginWindowWatcher, models.OriginFileIndexer, models.OriginExternal:
	default:
		writeError(w, http.StatusBadRequest, "unknown origin")
		return
	}

	identified := h.dispatcher.Dispatch(req.Text, origin)
	writeJSON(w, http.StatusAccepted, map[string]bool{"identified": identified})
}
