package ingest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/utils"
)

func testDB(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testInfo() *models.MediaInfo {
	return &models.MediaInfo{
		Title:      "Some Video",
		Type:       models.MediaTypeClip,
		Source:     "youtube",
		ProviderID: "dQw4w9WgXcQ",
		HasRealID:  true,
	}
}

type fakeEnricher struct {
	meta  *Enrichment
	err   error
	calls int
}

func (f *fakeEnricher) Fetch(providerID, source string) (*Enrichment, error) {
	f.calls++
	return f.meta, f.err
}

func TestIngestInsertsNewRecord(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	changed, err := c.Ingest(testInfo(), models.OriginExternal)
	require.NoError(t, err)
	assert.True(t, changed)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.Equal(t, "Some Video", media.Title)
	assert.Equal(t, "auto", media.OpenMethod)
	assert.NotNil(t, media.LastOpenedAt)
	assert.False(t, media.Blacklisted)
}

func TestIngestSameFingerprintUpdatesInPlace(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return t0 }

	_, err := c.Ingest(testInfo(), models.OriginExternal)
	require.NoError(t, err)

	t1 := t0.Add(2 * time.Hour)
	c.now = func() time.Time { return t1 }

	changed, err := c.Ingest(testInfo(), models.OriginWindowWatcher)
	require.NoError(t, err)
	assert.True(t, changed)

	all, err := db.GetAllMedias()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].LastOpenedAt.Equal(t1))
	assert.True(t, all[0].CreatedAt.Equal(t0))
}

func TestIngestValidationRejections(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	negative := -1
	tests := []struct {
		name   string
		mutate func(*models.MediaInfo)
	}{
		{"missing type", func(i *models.MediaInfo) { i.Type = "" }},
		{"missing source", func(i *models.MediaInfo) { i.Source = "" }},
		{"missing provider id", func(i *models.MediaInfo) { i.ProviderID = "" }},
		{"unknown type", func(i *models.MediaInfo) { i.Type = "hologram" }},
		{"quoted source", func(i *models.MediaInfo) { i.Source = `you"tube` }},
		{"sql comment in source", func(i *models.MediaInfo) { i.Source = "you--tube" }},
		{"negative length", func(i *models.MediaInfo) { i.LengthSeconds = &negative }},
		{"negative season", func(i *models.MediaInfo) { i.Season = &negative }},
		{"negative episode", func(i *models.MediaInfo) { i.Episode = &negative }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := testInfo()
			tt.mutate(info)
			changed, err := c.Ingest(info, models.OriginExternal)
			assert.False(t, changed)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}

	all, err := db.GetAllMedias()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIngestNilInfo(t *testing.T) {
	c := NewCatalog(testDB(t), nil, false, utils.NewNopLogger())
	changed, err := c.Ingest(nil, models.OriginExternal)
	assert.False(t, changed)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestIngestTruncatesLongTitle(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	info := testInfo()
	info.Title = strings.Repeat("x", 600)

	_, err := c.Ingest(info, models.OriginExternal)
	require.NoError(t, err)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.Len(t, media.Title, 500)
	assert.True(t, strings.HasSuffix(media.Title, "..."))
}

func TestIngestTruncatesLongMultibyteTitle(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	// The limit is in characters, not bytes: 600 two-byte runes
	info := testInfo()
	info.Title = strings.Repeat("ü", 600)

	_, err := c.Ingest(info, models.OriginExternal)
	require.NoError(t, err)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.Equal(t, 500, utf8.RuneCountInString(media.Title))
	assert.True(t, utf8.ValidString(media.Title))
	assert.True(t, strings.HasSuffix(media.Title, "..."))
}

func TestIngestKeepsMultibyteTitleWithinLimit(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	// 300 runes but 600 bytes; must survive untouched
	title := strings.Repeat("ü", 300)
	info := testInfo()
	info.Title = title

	_, err := c.Ingest(info, models.OriginExternal)
	require.NoError(t, err)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.Equal(t, title, media.Title)
	assert.True(t, utf8.ValidString(media.Title))
}

func TestIngestBlacklistedIgnoresExternalSignal(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	_, err := c.Ingest(testInfo(), models.OriginExternal)
	require.NoError(t, err)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	now := time.Now()
	media.Blacklisted = true
	media.BlacklistedAt = &now
	media.SuppressionCode = 6
	require.NoError(t, db.UpdateMedia(media))

	changed, err := c.Ingest(testInfo(), models.OriginExternal)
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.True(t, after.Blacklisted)
}

func TestIngestBlacklistedStillTouchedByWatcher(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	_, err := c.Ingest(testInfo(), models.OriginExternal)
	require.NoError(t, err)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	now := time.Now()
	media.Blacklisted = true
	media.BlacklistedAt = &now
	media.SuppressionCode = 2
	require.NoError(t, db.UpdateMedia(media))

	changed, err := c.Ingest(testInfo(), models.OriginWindowWatcher)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestIngestDefaultsEmptyTitle(t *testing.T) {
	db := testDB(t)
	c := NewCatalog(db, nil, false, utils.NewNopLogger())

	info := testInfo()
	info.Title = ""

	_, err := c.Ingest(info, models.OriginExternal)
	require.NoError(t, err)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", media.Title)
}

func TestIngestEnrichesNewExternalRecords(t *testing.T) {
	db := testDB(t)
	enricher := &fakeEnricher{meta: &Enrichment{
		Title:        "Never Gonna Give You Up",
		Description:  "Official video",
		ThumbnailURL: "https://example.com/thumb.jpg",
	}}
	c := NewCatalog(db, enricher, true, utils.NewNopLogger())

	_, err := c.Ingest(testInfo(), models.OriginExternal)
	require.NoError(t, err)
	assert.Equal(t, 1, enricher.calls)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", media.Title)
	assert.Equal(t, "Official video", media.Description)
	assert.Equal(t, "https://example.com/thumb.jpg", media.ThumbnailURL)
}

func TestIngestSkipsEnrichmentWithoutRealID(t *testing.T) {
	enricher := &fakeEnricher{meta: &Enrichment{Title: "nope"}}
	c := NewCatalog(testDB(t), enricher, true, utils.NewNopLogger())

	info := testInfo()
	info.HasRealID = false
	info.ProviderID = info.Title

	_, err := c.Ingest(info, models.OriginExternal)
	require.NoError(t, err)
	assert.Equal(t, 0, enricher.calls)
}

func TestIngestSkipsEnrichmentForWatcherSignals(t *testing.T) {
	enricher := &fakeEnricher{meta: &Enrichment{Title: "nope"}}
	c := NewCatalog(testDB(t), enricher, true, utils.NewNopLogger())

	_, err := c.Ingest(testInfo(), models.OriginWindowWatcher)
	require.NoError(t, err)
	assert.Equal(t, 0, enricher.calls)
}

func TestIngestToleratesEnrichmentFailure(t *testing.T) {
	db := testDB(t)
	enricher := &fakeEnricher{err: errors.New("timeout")}
	c := NewCatalog(db, enricher, true, utils.NewNopLogger())

	changed, err := c.Ingest(testInfo(), models.OriginExternal)
	require.NoError(t, err)
	assert.True(t, changed)

	media, err := db.GetByFingerprint("dQw4w9WgXcQ", "youtube")
	require.NoError(t, err)
	assert.Equal(t, "Some Video", media.Title)
}
