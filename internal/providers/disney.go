package providers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

var disneyPattern = regexp.MustCompile(`disneyplus\.com/video/([a-zA-Z0-9-]+)`)

// DisneyPlus recognizes disneyplus.com video URLs and "Title - Disney+"
// window titles
type DisneyPlus struct{}

func (DisneyPlus) Name() string   { return "Disney+" }
func (DisneyPlus) Source() string { return "disney" }

func (DisneyPlus) Matches(s string) bool {
	return disneyPattern.MatchString(s) ||
		strings.Contains(s, "Disney+") ||
		strings.Contains(strings.ToLower(s), "disneyplus")
}

func (p DisneyPlus) Extract(s string) *models.MediaInfo {
	if m := disneyPattern.FindStringSubmatch(s); m != nil {
		id := m[1]
		short := id
		if len(short) > 12 {
			short = short[:12]
		}
		return &models.MediaInfo{
			Title:      fmt.Sprintf("Disney+ Video %s", short),
			Type:       models.MediaTypeMovie,
			Source:     p.Source(),
			ProviderID: id,
			HasRealID:  true,
		}
	}

	return fallbackInfo(p.Name(), p.Source(), s,
		[]string{" - Disney+", " | Disney+", "Disney+ |"},
		models.MediaTypeMovie,
		[]string{"Disney+", "Disney Plus"})
}

func (DisneyPlus) BrowserURL(providerID string) string {
	return "https://www.disneyplus.com/video/" + providerID
}
