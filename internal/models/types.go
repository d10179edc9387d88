package models

// MediaType represents the kind of media a record describes
type MediaType string

const (
	MediaTypeMovie     MediaType = "movie"
	MediaTypeSeries    MediaType = "series"
	MediaTypeMusic     MediaType = "music"
	MediaTypeClip      MediaType = "clip"
	MediaTypePodcast   MediaType = "podcast"
	MediaTypeAudiobook MediaType = "audiobook"
	MediaTypeDocument  MediaType = "document"
	MediaTypeFile      MediaType = "file"
)

// AllowedMediaTypes is the closed set of media types accepted by ingestion
var AllowedMediaTypes = []MediaType{
	MediaTypeMovie,
	MediaTypeSeries,
	MediaTypeMusic,
	MediaTypeClip,
	MediaTypePodcast,
	MediaTypeAudiobook,
	MediaTypeDocument,
	MediaTypeFile,
}

// IsAllowedMediaType reports whether t is part of the accepted set
func IsAllowedMediaType(t MediaType) bool {
	for _, allowed := range AllowedMediaTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

// Origin identifies which producer generated a signal
type Origin string

const (
	OriginWindowWatcher Origin = "window_watcher"
	OriginFileIndexer   Origin = "file_indexer"
	OriginExternal      Origin = "external"
)

// MediaInfo is the structured output of a provider's Extract.
// It is never persisted directly; ingestion validates it first.
type MediaInfo struct {
	Title      string
	Type       MediaType
	Source     string // provider source id, e.g. "netflix", "youtube", "local"
	ProviderID string

	// HasRealID is true only when ProviderID was captured from a structural
	// identifier (URL path segment), false when derived from a cleaned
	// window title. Every provider sets it explicitly on every path.
	HasRealID bool

	Description   string
	ThumbnailURL  string
	LocalPath     string
	IsLocalFile   bool
	OpenMethod    string
	LengthSeconds *int
	Season        *int
	Episode       *int
	Artist        string
	Album         string
	Channel       string
}

// Event is the unit carried on the hand-off queue between the producers
// and the ingestion loop
type Event struct {
	Info   *MediaInfo
	Origin Origin
}
