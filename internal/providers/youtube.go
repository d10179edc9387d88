package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

var youtubePattern = regexp.MustCompile(`youtube\.com/watch\?v=([A-Za-z0-9_-]+)`)

// YouTube recognizes youtube.com watch URLs and "Title - YouTube" window
// titles. Structural matches get a thumbnail URL derived from the video id.
type YouTube struct{}

func (YouTube) Name() string   { return "YouTube" }
func (YouTube) Source() string { return "youtube" }

func (YouTube) Matches(s string) bool {
	return youtubePattern.MatchString(s) || strings.Contains(s, "YouTube")
}

func (p YouTube) Extract(s string) *models.MediaInfo {
	if m := youtubePattern.FindStringSubmatch(s); m != nil {
		id := m[1]
		return &models.MediaInfo{
			Title:        fmt.Sprintf("YouTube Video %s", id),
			Type:         models.MediaTypeClip,
			Source:       p.Source(),
			ProviderID:   id,
			ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", id),
			HasRealID:    true,
		}
	}

	return fallbackInfo(p.Name(), p.Source(), s,
		[]string{" - YouTube"},
		models.MediaTypeClip,
		nil)
}

func (YouTube) BrowserURL(providerID string) string {
	return "https://www.youtube.com/watch?v=" + providerID
}

func (YouTube) DeepLink(providerID string) string {
	return "vnd.youtube:" + providerID
}
