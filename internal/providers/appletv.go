package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

var appleTVPattern = regexp.MustCompile(`tv\.apple\.com/[a-z]+/(?:movie|show|episode)/[^/]+/([a-z0-9]+)`)

// AppleTV recognizes tv.apple.com movie/show/episode URLs and
// "Title - Apple TV+" window titles
type AppleTV struct{}

func (AppleTV) Name() string   { return "Apple TV+" }
func (AppleTV) Source() string { return "appletv" }

func (AppleTV) Matches(s string) bool {
	return appleTVPattern.MatchString(s) ||
		strings.Contains(s, "Apple TV") ||
		strings.Contains(strings.ToLower(s), "tv.apple.com")
}

func (p AppleTV) Extract(s string) *models.MediaInfo {
	if m := appleTVPattern.FindStringSubmatch(s); m != nil {
		return &models.MediaInfo{
			Title:      fmt.Sprintf("Apple TV+ %s", m[1]),
			Type:       models.MediaTypeMovie,
			Source:     p.Source(),
			ProviderID: m[1],
			HasRealID:  true,
		}
	}

	return fallbackInfo(p.Name(), p.Source(), s,
		[]string{" - Apple TV+", " | Apple TV+", "Apple TV+ -"},
		models.MediaTypeMovie,
		[]string{"Apple TV+", "Apple TV"})
}
