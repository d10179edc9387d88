package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/models"
)

// ErrValidation marks ingestion rejections caused by malformed media info.
// The loop logs and drops such items without aborting the batch.
var ErrValidation = errors.New("invalid media info")

// maxTitleLength bounds persisted titles in runes, not bytes; longer
// titles are truncated to 497 characters plus an ellipsis marker
const maxTitleLength = 500

// Enrichment carries optional metadata fetched for a new record
type Enrichment struct {
	Title        string
	Description  string
	ThumbnailURL string
}

// Enricher fetches metadata for a structural provider id. Failures are
// tolerated; ingestion completes with unenriched data.
type Enricher interface {
	Fetch(providerID, source string) (*Enrichment, error)
}

// Catalog applies identified media to the store: validation, fingerprint
// dedup, optional enrichment on first sight
type Catalog struct {
	db        *models.Database
	enricher  Enricher
	autoFetch bool
	logger    *logrus.Logger
	now       func() time.Time
}

// NewCatalog creates the catalogue ingestion component
func NewCatalog(db *models.Database, enricher Enricher, autoFetch bool, logger *logrus.Logger) *Catalog {
	return &Catalog{
		db:        db,
		enricher:  enricher,
		autoFetch: autoFetch,
		logger:    logger,
		now:       time.Now,
	}
}

// Ingest validates info and inserts or updates the matching record.
// Returns whether a persisted change was made.
func (c *Catalog) Ingest(info *models.MediaInfo, origin models.Origin) (bool, error) {
	if info == nil {
		return false, fmt.Errorf("%w: nil info", ErrValidation)
	}
	if err := validate(info); err != nil {
		return false, err
	}

	if utf8.RuneCountInString(info.Title) > maxTitleLength {
		info.Title = string([]rune(info.Title)[:maxTitleLength-3]) + "..."
	}

	existing, err := c.db.GetByFingerprint(info.ProviderID, info.Source)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return false, fmt.Errorf("fingerprint lookup failed: %w", err)
	}

	if existing != nil {
		// A suppressed item must not resurrect itself from an external
		// signal.
		if existing.Blacklisted && origin == models.OriginExternal {
			return false, nil
		}
		return c.touch(existing, info)
	}

	return c.insert(info, origin)
}

// touch updates last_opened_at on a re-opened record, keeping the previous
// open method unless the signal carries one
func (c *Catalog) touch(existing *models.Media, info *models.MediaInfo) (bool, error) {
	now := c.now()
	existing.LastOpenedAt = &now
	if info.OpenMethod != "" {
		existing.OpenMethod = info.OpenMethod
	}
	if err := c.db.UpdateMedia(existing); err != nil {
		return false, fmt.Errorf("update failed: %w", err)
	}
	return true, nil
}

func (c *Catalog) insert(info *models.MediaInfo, origin models.Origin) (bool, error) {
	if c.enricher != nil && c.autoFetch && info.HasRealID && origin == models.OriginExternal {
		c.enrich(info)
	}

	title := info.Title
	if title == "" {
		title = "Unknown"
	}
	openMethod := info.OpenMethod
	if openMethod == "" {
		openMethod = "auto"
	}

	now := c.now()
	media := &models.Media{
		Title:         title,
		Type:          info.Type,
		Source:        info.Source,
		ProviderID:    info.ProviderID,
		LengthSeconds: info.LengthSeconds,
		CreatedAt:     now,
		LastOpenedAt:  &now,
		OpenMethod:    openMethod,
		IsLocalFile:   info.IsLocalFile,
		LocalPath:     info.LocalPath,
		Description:   info.Description,
		ThumbnailURL:  info.ThumbnailURL,
		Season:        info.Season,
		Episode:       info.Episode,
		Artist:        info.Artist,
		Album:         info.Album,
		Channel:       info.Channel,
	}

	if err := c.db.CreateMedia(media); err != nil {
		// A duplicate signal in the same batch can race the lookup; the
		// first insert wins and the loser is dropped.
		if models.IsUniqueViolation(err) {
			c.logger.WithFields(logrus.Fields{
				"source":      info.Source,
				"provider_id": info.ProviderID,
			}).Warn("duplicate fingerprint at insert, dropping")
			return false, nil
		}
		return false, fmt.Errorf("insert failed: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"title":  media.Title,
		"type":   media.Type,
		"source": media.Source,
	}).Debug("media record created")
	return true, nil
}

// enrich asks the metadata collaborator for better fields. Any failure is
// logged and ignored.
func (c *Catalog) enrich(info *models.MediaInfo) {
	meta, err := c.enricher.Fetch(info.ProviderID, info.Source)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"source":      info.Source,
			"provider_id": info.ProviderID,
		}).Warn("metadata fetch failed, inserting without enrichment")
		return
	}
	if meta == nil {
		return
	}
	if meta.Title != "" {
		info.Title = meta.Title
	}
	if meta.Description != "" {
		info.Description = meta.Description
	}
	if meta.ThumbnailURL != "" {
		info.ThumbnailURL = meta.ThumbnailURL
	}
}

func validate(info *models.MediaInfo) error {
	if info.Type == "" {
		return fmt.Errorf("%w: missing media type", ErrValidation)
	}
	if info.Source == "" {
		return fmt.Errorf("%w: missing source", ErrValidation)
	}
	if info.ProviderID == "" {
		return fmt.Errorf("%w: missing provider id", ErrValidation)
	}
	if !models.IsAllowedMediaType(info.Type) {
		return fmt.Errorf("%w: unknown media type %q", ErrValidation, info.Type)
	}
	if strings.ContainsAny(info.Source, `'";`) || strings.Contains(info.Source, "--") {
		return fmt.Errorf("%w: source contains invalid characters", ErrValidation)
	}
	if info.LengthSeconds != nil && *info.LengthSeconds < 0 {
		return fmt.Errorf("%w: length_seconds cannot be negative", ErrValidation)
	}
	if info.Season != nil && *info.Season < 0 {
		return fmt.Errorf("%w: season cannot be negative", ErrValidation)
	}
	if info.Episode != nil && *info.Episode < 0 {
		return fmt.Errorf("%w: episode cannot be negative", ErrValidation)
	}
	return nil
}
