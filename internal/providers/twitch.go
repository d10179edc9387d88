package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

var twitchPattern = regexp.MustCompile(`twitch\.tv/([a-zA-Z0-9_]+)`)

// twitchSystemPages are twitch.tv paths that are not channels
var twitchSystemPages = map[string]bool{
	"directory": true,
	"settings":  true,
	"videos":    true,
}

// Twitch recognizes twitch.tv channel URLs and "Title - Twitch" window
// titles, skipping system pages like /directory
type Twitch struct{}

func (Twitch) Name() string   { return "Twitch" }
func (Twitch) Source() string { return "twitch" }

func (Twitch) Matches(s string) bool {
	return twitchPattern.MatchString(s) || strings.Contains(s, "Twitch")
}

func (p Twitch) Extract(s string) *models.MediaInfo {
	if m := twitchPattern.FindStringSubmatch(s); m != nil {
		channel := m[1]
		if !twitchSystemPages[strings.ToLower(channel)] {
			return &models.MediaInfo{
				Title:      fmt.Sprintf("Twitch: %s", channel),
				Type:       models.MediaTypeClip,
				Source:     p.Source(),
				ProviderID: channel,
				Channel:    channel,
				HasRealID:  true,
			}
		}
	}

	return fallbackInfo(p.Name(), p.Source(), s,
		[]string{" - Twitch"},
		models.MediaTypeClip,
		nil)
}

func (Twitch) BrowserURL(providerID string) string {
	return "https://www.twitch.tv/" + providerID
}
