package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/models"
)

// LibraryHandler lists catalogued media for display: one media type at a
// time, suppressed records excluded, favorites first
type LibraryHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(db *models.Database, logger *logrus.Logger) *LibraryHandler {
	return &LibraryHandler{db: db, logger: logger}
}

// ServeHTTP handles GET /api/library?type=movie
func (h *LibraryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(r.URL.Query().Get("type"))
	if !models.IsAllowedMediaType(mediaType) {
		writeError(w, http.StatusBadRequest, "unknown media type")
		return
	}

	medias, err := h.db.ListByType(mediaType)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list library")
		writeError(w, http.StatusInternalServerError, "failed to list library")
		return
	}
	if medias == nil {
		medias = []*models.Media{}
	}

	writeJSON(w, http.StatusOK, medias)
}
