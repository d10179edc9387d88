package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

var netflixPattern = regexp.MustCompile(`netflix\.com/watch/(\d+)`)

// Netflix recognizes netflix.com watch URLs and "Title - Netflix" window
// titles
type Netflix struct{}

func (Netflix) Name() string   { return "Netflix" }
func (Netflix) Source() string { return "netflix" }

func (Netflix) Matches(s string) bool {
	if netflixPattern.MatchString(s) {
		return true
	}
	return strings.Contains(s, "Netflix") && !strings.Contains(s, "Netflix Party")
}

func (p Netflix) Extract(s string) *models.MediaInfo {
	if m := netflixPattern.FindStringSubmatch(s); m != nil {
		return &models.MediaInfo{
			Title:      fmt.Sprintf("Netflix Title %s", m[1]),
			Type:       models.MediaTypeMovie,
			Source:     p.Source(),
			ProviderID: m[1],
			HasRealID:  true,
		}
	}

	return fallbackInfo(p.Name(), p.Source(), s,
		[]string{" - Netflix", " | Netflix"},
		models.MediaTypeMovie,
		[]string{"Netflix"})
}

func (Netflix) BrowserURL(providerID string) string {
	return "https://www.netflix.com/watch/" + providerID
}

func (Netflix) DeepLink(providerID string) string {
	return "netflix://title/" + providerID
}
