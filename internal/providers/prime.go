package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

var (
	primePattern       = regexp.MustCompile(`primevideo\.com/detail/([a-zA-Z0-9]+)`)
	primeAmazonPattern = regexp.MustCompile(`amazon\.[a-z]+/gp/video/detail/([a-zA-Z0-9]+)`)
)

// AmazonPrime recognizes primevideo.com and amazon.tld video detail URLs
// and "Title - Prime Video" window titles
type AmazonPrime struct{}

func (AmazonPrime) Name() string   { return "Amazon Prime" }
func (AmazonPrime) Source() string { return "prime" }

func (AmazonPrime) Matches(s string) bool {
	return primePattern.MatchString(s) ||
		primeAmazonPattern.MatchString(s) ||
		strings.Contains(s, "Prime Video") ||
		strings.Contains(strings.ToLower(s), "primevideo")
}

func (p AmazonPrime) Extract(s string) *models.MediaInfo {
	m := primePattern.FindStringSubmatch(s)
	if m == nil {
		m = primeAmazonPattern.FindStringSubmatch(s)
	}
	if m != nil {
		return &models.MediaInfo{
			Title:      fmt.Sprintf("Prime Video %s", m[1]),
			Type:       models.MediaTypeMovie,
			Source:     p.Source(),
			ProviderID: m[1],
			HasRealID:  true,
		}
	}

	return fallbackInfo(p.Name(), p.Source(), s,
		[]string{" - Prime Video", " | Prime Video", "Prime Video -"},
		models.MediaTypeMovie,
		[]string{"Prime Video", "Amazon Prime Video"})
}

func (AmazonPrime) BrowserURL(providerID string) string {
	return "https://www.primevideo.com/detail/" + providerID
}
