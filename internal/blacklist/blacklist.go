package blacklist

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/models"
)

// Suppression codes. Code 0 means not suppressed; 1-5 map to fixed
// durations; 6 suppresses indefinitely and is never auto-lifted.
const (
	CodeNone    = 0
	CodeDay     = 1
	CodeWeek    = 2
	CodeMonth   = 3
	CodeQuarter = 4
	CodeYear    = 5
	CodeForever = 6
)

var durations = map[int]time.Duration{
	CodeDay:     24 * time.Hour,
	CodeWeek:    7 * 24 * time.Hour,
	CodeMonth:   30 * 24 * time.Hour,
	CodeQuarter: 90 * 24 * time.Hour,
	CodeYear:    365 * 24 * time.Hour,
}

// Duration returns the suppression duration for a code. ok is false for
// codes without an expiry (0 and 6) and for invalid codes.
func Duration(code int) (time.Duration, bool) {
	d, ok := durations[code]
	return d, ok
}

// Manager drives the suppression state machine on catalogue records
type Manager struct {
	db     *models.Database
	logger *logrus.Logger
	now    func() time.Time
}

// NewManager creates a blacklist manager
func NewManager(db *models.Database, logger *logrus.Logger) *Manager {
	return &Manager{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Suppress blacklists a record with the given code (1-6)
func (m *Manager) Suppress(id uint64, code int) error {
	if code < CodeDay || code > CodeForever {
		return fmt.Errorf("invalid suppression code: %d", code)
	}

	media, err := m.db.GetMediaByID(id)
	if err != nil {
		return err
	}

	now := m.now()
	media.Blacklisted = true
	media.BlacklistedAt = &now
	media.SuppressionCode = code

	if err := m.db.UpdateMedia(media); err != nil {
		return err
	}

	m.logger.WithFields(logrus.Fields{
		"media_id": id,
		"code":     code,
	}).Info("Media suppressed")
	return nil
}

// Lift removes the suppression from a record
func (m *Manager) Lift(id uint64) error {
	media, err := m.db.GetMediaByID(id)
	if err != nil {
		return err
	}

	media.Blacklisted = false
	media.BlacklistedAt = nil
	media.SuppressionCode = CodeNone

	if err := m.db.UpdateMedia(media); err != nil {
		return err
	}

	m.logger.WithField("media_id", id).Info("Suppression lifted")
	return nil
}

// Sweep lifts every suppression whose duration has elapsed. Code 6 never
// expires. Runs at startup and on explicit request, not on a timer.
func (m *Manager) Sweep() (int, error) {
	medias, err := m.db.ListBlacklisted()
	if err != nil {
		return 0, err
	}

	now := m.now()
	lifted := 0
	for _, media := range medias {
		if media.BlacklistedAt == nil {
			continue
		}
		d, ok := Duration(media.SuppressionCode)
		if !ok {
			continue
		}
		if now.After(media.BlacklistedAt.Add(d)) {
			media.Blacklisted = false
			media.BlacklistedAt = nil
			media.SuppressionCode = CodeNone
			if err := m.db.UpdateMedia(media); err != nil {
				m.logger.WithError(err).WithField("media_id", media.ID).Error("Failed to lift expired suppression")
				continue
			}
			lifted++
		}
	}

	if lifted > 0 {
		m.logger.WithField("lifted", lifted).Info("Expired suppressions lifted")
	}
	return lifted, nil
}
