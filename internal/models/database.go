package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrNotFound is returned when a record lookup finds nothing
var ErrNotFound = bolthold.ErrNotFound

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// IsUniqueViolation reports whether err is a fingerprint uniqueness violation
func IsUniqueViolation(err error) bool {
	return errors.Is(err, bolthold.ErrUniqueExists)
}

// CreateMedia inserts a new media record
func (db *Database) CreateMedia(media *Media) error {
	media.Fingerprint = FingerprintOf(media.ProviderID, media.Source)
	if media.CreatedAt.IsZero() {
		media.CreatedAt = time.Now()
	}
	return db.store.Insert(bolthold.NextSequence(), media)
}

// UpdateMedia updates an existing media record
func (db *Database) UpdateMedia(media *Media) error {
	media.Fingerprint = FingerprintOf(media.ProviderID, media.Source)
	return db.store.Update(media.ID, media)
}

// GetMediaByID retrieves a media record by ID
func (db *Database) GetMediaByID(id uint64) (*Media, error) {
	var media Media
	if err := db.store.Get(id, &media); err != nil {
		return nil, err
	}
	return &media, nil
}

// GetByFingerprint retrieves a media record by its (providerID, source) pair
func (db *Database) GetByFingerprint(providerID, source string) (*Media, error) {
	var media Media
	err := db.store.FindOne(&media,
		bolthold.Where("Fingerprint").Eq(FingerprintOf(providerID, source)))
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// DeleteMedia deletes a media record by ID
func (db *Database) DeleteMedia(id uint64) error {
	return db.store.Delete(id, &Media{})
}

// ListByType retrieves all non-blacklisted records of one media type,
// favorites first, most recently opened first within each group
func (db *Database) ListByType(mediaType MediaType) ([]*Media, error) {
	var medias []*Media
	err := db.store.Find(&medias,
		bolthold.Where("Type").Eq(mediaType).And("Blacklisted").Eq(false))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(medias, func(i, j int) bool {
		if medias[i].IsFavorite != medias[j].IsFavorite {
			return medias[i].IsFavorite
		}
		return lastOpened(medias[i]).After(lastOpened(medias[j]))
	})
	return medias, nil
}

func lastOpened(m *Media) time.Time {
	if m.LastOpenedAt != nil {
		return *m.LastOpenedAt
	}
	return m.CreatedAt
}

// ListFavorites retrieves all non-blacklisted favorite records
func (db *Database) ListFavorites() ([]*Media, error) {
	var medias []*Media
	err := db.store.Find(&medias,
		bolthold.Where("IsFavorite").Eq(true).And("Blacklisted").Eq(false))
	return medias, err
}

// ListBlacklisted retrieves all currently suppressed records
func (db *Database) ListBlacklisted() ([]*Media, error) {
	var medias []*Media
	err := db.store.Find(&medias, bolthold.Where("Blacklisted").Eq(true))
	return medias, err
}

// GetAllMedias retrieves every media record
func (db *Database) GetAllMedias() ([]*Media, error) {
	var medias []*Media
	err := db.store.Find(&medias, nil)
	return medias, err
}

// Stats summarizes catalogue contents for the status endpoint and the
// scheduled stats job
type Stats struct {
	Total       int               `json:"total"`
	ByType      map[MediaType]int `json:"by_type"`
	Favorites   int               `json:"favorites"`
	Blacklisted int               `json:"blacklisted"`
	LocalFiles  int               `json:"local_files"`
}

// GetStats counts records by type, favorite and suppression state
func (db *Database) GetStats() (*Stats, error) {
	medias, err := db.GetAllMedias()
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByType: make(map[MediaType]int)}
	for _, m := range medias {
		stats.Total++
		stats.ByType[m.Type]++
		if m.IsFavorite {
			stats.Favorites++
		}
		if m.Blacklisted {
			stats.Blacklisted++
		}
		if m.IsLocalFile {
			stats.LocalFiles++
		}
	}
	return stats, nil
}
