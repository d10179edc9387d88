package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/blacklist"
	"github.com/mediascope/mediascope/internal/ingest"
	"github.com/mediascope/mediascope/internal/launcher"
	"github.com/mediascope/mediascope/internal/models"
)

// MediaHandler covers per-record actions: favorite toggle, suppression,
// deletion and opening. All store mutations go through the ingestion loop
// so write ordering and change notifications stay consistent.
type MediaHandler struct {
	db        *models.Database
	loop      *ingest.Loop
	blacklist *blacklist.Manager
	launcher  *launcher.Launcher
	logger    *logrus.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(db *models.Database, loop *ingest.Loop, bl *blacklist.Manager, l *launcher.Launcher, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{
		db:        db,
		loop:      loop,
		blacklist: bl,
		launcher:  l,
		logger:    logger,
	}
}

func (h *MediaHandler) mediaID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return 0, false
	}
	return id, true
}

func (h *MediaHandler) submit(w http.ResponseWriter, fn func() (bool, error)) bool {
	err := h.loop.Submit(fn)
	if err == nil {
		return true
	}
	if errors.Is(err, models.ErrNotFound) {
		writeError(w, http.StatusNotFound, "media not found")
	} else {
		h.logger.WithError(err).Error("Media action failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
	return false
}

// ToggleFavorite handles POST /api/media/{id}/favorite
func (h *MediaHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mediaID(w, r)
	if !ok {
		return
	}

	var favorite bool
	if !h.submit(w, func() (bool, error) {
		media, err := h.db.GetMediaByID(id)
		if err != nil {
			return false, err
		}
		media.IsFavorite = !media.IsFavorite
		favorite = media.IsFavorite
		return true, h.db.UpdateMedia(media)
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": favorite})
}

type suppressRequest struct {
	Code int `json:"code"`
}

// Suppress handles POST /api/media/{id}/blacklist
func (h *MediaHandler) Suppress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mediaID(w, r)
	if !ok {
		return
	}

	req := suppressRequest{Code: blacklist.CodeForever}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.Code < blacklist.CodeDay || req.Code > blacklist.CodeForever {
		writeError(w, http.StatusBadRequest, "invalid suppression code")
		return
	}

	if !h.submit(w, func() (bool, error) {
		err := h.blacklist.Suppress(id, req.Code)
		return err == nil, err
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"suppression_code": req.Code})
}

// Lift handles DELETE /api/media/{id}/blacklist
func (h *MediaHandler) Lift(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mediaID(w, r)
	if !ok {
		return
	}

	if !h.submit(w, func() (bool, error) {
		err := h.blacklist.Lift(id)
		return err == nil, err
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "lifted"})
}

// Delete handles DELETE /api/media/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mediaID(w, r)
	if !ok {
		return
	}

	if !h.submit(w, func() (bool, error) {
		if _, err := h.db.GetMediaByID(id); err != nil {
			return false, err
		}
		return true, h.db.DeleteMedia(id)
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Open handles POST /api/media/{id}/open
func (h *MediaHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, ok := h.mediaID(w, r)
	if !ok {
		return
	}

	media, err := h.db.GetMediaByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "media not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if err := h.launcher.Open(media); err != nil {
		h.logger.WithError(err).WithField("media_id", id).Error("Failed to open media")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "opened"})
}

// Sweep handles POST /api/blacklist/sweep, the explicit expiry sweep
// trigger
func (h *MediaHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	var lifted int
	if !h.submit(w, func() (bool, error) {
		var err error
		lifted, err = h.blacklist.Sweep()
		return lifted > 0, err
	}) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"lifted": lifted})
}
