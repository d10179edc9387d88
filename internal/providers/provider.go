package providers

import (
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

// Provider identifies media from a raw string (URL, window title or file
// path). Matches is a cheap pre-check; Extract returns nil when the string
// yields no usable identification even though Matches was true.
type Provider interface {
	Name() string
	Source() string
	Matches(s string) bool
	Extract(s string) *models.MediaInfo
}

// URLBuilder is implemented by providers that can rebuild a browser URL
// from a structural provider id
type URLBuilder interface {
	BrowserURL(providerID string) string
}

// DeepLinker is implemented by providers that support app deep links
type DeepLinker interface {
	DeepLink(providerID string) string
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fallbackInfo builds a title-based identification for a window title that
// carried no structural id. Returns nil when cleaning leaves nothing.
func fallbackInfo(name, source, raw string, cleanPhrases []string, defaultType models.MediaType, overviewNames []string) *models.MediaInfo {
	title := CleanWindowTitle(raw, cleanPhrases)
	if title == "" {
		return nil
	}

	for _, overview := range overviewNames {
		if title == overview {
			title = name + " Overview"
			break
		}
	}

	return &models.MediaInfo{
		Title:       title,
		Type:        defaultType,
		Source:      source,
		ProviderID:  title,
		Description: "Automatically detected (browser)",
		HasRealID:   false,
	}
}
