package providers

import "github.com/mediascope/mediascope/internal/models"

// Registry holds all providers in fixed priority order. More specific
// structural matchers come first, the generic local-file matcher last;
// evaluation order is the tie-break, so the first non-nil extraction wins.
type Registry struct {
	providers []Provider
}

// NewRegistry creates the registry with the closed provider set
func NewRegistry(extensions map[string]models.MediaType) *Registry {
	return &Registry{
		providers: []Provider{
			Netflix{},
			DisneyPlus{},
			AmazonPrime{},
			AppleTV{},
			YouTube{},
			Twitch{},
			Spotify{},
			NewLocal(extensions),
		},
	}
}

// Identify scans providers in priority order and returns the first
// successful extraction, or nil when no provider claims the string
func (r *Registry) Identify(s string) *models.MediaInfo {
	for _, p := range r.providers {
		if !p.Matches(s) {
			continue
		}
		if info := p.Extract(s); info != nil {
			return info
		}
	}
	return nil
}

// BySource returns the provider registered under the given source id
func (r *Registry) BySource(source string) Provider {
	for _, p := range r.providers {
		if p.Source() == source {
			return p
		}
	}
	return nil
}

// Names lists all provider display names in priority order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}
