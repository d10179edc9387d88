package metadata

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/ingest"
)

const (
	fetchTimeout = 5 * time.Second
	cacheTTL     = 7 * 24 * time.Hour
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
)

// Fetcher enriches new records with OpenGraph metadata fetched from the
// provider's canonical watch URL. Results are cached with a 7-day TTL.
// Every failure is returned to the caller, which tolerates it.
type Fetcher struct {
	client *http.Client
	cache  *gocache.Cache
	logger *logrus.Logger
	urlFor func(providerID, source string) string
}

// NewFetcher creates the enrichment collaborator
func NewFetcher(logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  gocache.New(cacheTTL, 12*time.Hour),
		logger: logger,
		urlFor: watchURL,
	}
}

// Fetch implements ingest.Enricher. Returns (nil, nil) for sources without
// a reconstructible watch URL.
func (f *Fetcher) Fetch(providerID, source string) (*ingest.Enrichment, error) {
	url := f.urlFor(providerID, source)
	if url == "" {
		return nil, nil
	}

	key := source + ":" + providerID
	if cached, ok := f.cache.Get(key); ok {
		return cached.(*ingest.Enrichment), nil
	}

	var meta *ingest.Enrichment
	op := func() error {
		var err error
		meta, err = f.fetchOpenGraph(url)
		return err
	}
	if err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)); err != nil {
		return nil, err
	}

	f.cache.Set(key, meta, gocache.DefaultExpiration)
	f.logger.WithFields(logrus.Fields{
		"source": source,
		"title":  meta.Title,
	}).Debug("Metadata fetched")
	return meta, nil
}

func (f *Fetcher) fetchOpenGraph(url string) (*ingest.Enrichment, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return parseOpenGraph(resp.Body)
}

// watchURL rebuilds the canonical watch URL for sources whose structural
// ids map back to one. Other sources get no enrichment.
func watchURL(providerID, source string) string {
	switch source {
	case "youtube":
		return "https://www.youtube.com/watch?v=" + providerID
	case "netflix":
		return "https://www.netflix.com/watch/" + providerID
	case "spotify":
		return "https://open.spotify.com/track/" + providerID
	}
	return ""
}
