package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

var spotifyPattern = regexp.MustCompile(`open\.spotify\.com/(track|album|playlist)/([a-zA-Z0-9]+)`)

// Spotify recognizes open.spotify.com track, album and playlist URLs and
// "Title - Spotify" window titles
type Spotify struct{}

func (Spotify) Name() string   { return "Spotify" }
func (Spotify) Source() string { return "spotify" }

func (Spotify) Matches(s string) bool {
	return spotifyPattern.MatchString(s) || strings.Contains(s, "Spotify")
}

func (p Spotify) Extract(s string) *models.MediaInfo {
	if m := spotifyPattern.FindStringSubmatch(s); m != nil {
		contentType, id := m[1], m[2]
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		return &models.MediaInfo{
			Title:      fmt.Sprintf("Spotify %s %s", capitalize(contentType), short),
			Type:       models.MediaTypeMusic,
			Source:     p.Source(),
			ProviderID: id,
			HasRealID:  true,
		}
	}

	return fallbackInfo(p.Name(), p.Source(), s,
		[]string{" - Spotify", " | Spotify"},
		models.MediaTypeMusic,
		nil)
}

func (Spotify) BrowserURL(providerID string) string {
	return "https://open.spotify.com/track/" + providerID
}

func (Spotify) DeepLink(providerID string) string {
	return "spotify:track:" + providerID
}
