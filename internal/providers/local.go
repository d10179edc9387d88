package providers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mediascope/mediascope/internal/models"
)

// DefaultExtensions maps supported file extensions to media types. The
// configuration layer can override it; everything else falls back to
// "file".
var DefaultExtensions = map[string]models.MediaType{
	".mp4":  models.MediaTypeMovie,
	".mkv":  models.MediaTypeMovie,
	".avi":  models.MediaTypeMovie,
	".mov":  models.MediaTypeMovie,
	".wmv":  models.MediaTypeMovie,
	".webm": models.MediaTypeClip,
	".mp3":  models.MediaTypeMusic,
	".flac": models.MediaTypeMusic,
	".wav":  models.MediaTypeMusic,
	".m4a":  models.MediaTypeMusic,
	".aac":  models.MediaTypeMusic,
	".ogg":  models.MediaTypeMusic,
	".pdf":  models.MediaTypeDocument,
	".epub": models.MediaTypeDocument,
	".m4b":  models.MediaTypeAudiobook,
}

// Local recognizes paths of existing local files. It runs last in the
// registry so service matchers get first pick.
type Local struct {
	extensions map[string]models.MediaType
}

// NewLocal creates the local-file provider with the given extension table
func NewLocal(extensions map[string]models.MediaType) *Local {
	if extensions == nil {
		extensions = DefaultExtensions
	}
	return &Local{extensions: extensions}
}

func (*Local) Name() string   { return "Local" }
func (*Local) Source() string { return "local" }

func (*Local) Matches(s string) bool {
	info, err := os.Stat(s)
	return err == nil && info.Mode().IsRegular()
}

func (p *Local) Extract(s string) *models.MediaInfo {
	resolved := ResolvePath(s)
	ext := strings.ToLower(filepath.Ext(resolved))

	mediaType, ok := p.extensions[ext]
	if !ok {
		mediaType = models.MediaTypeFile
	}

	base := filepath.Base(resolved)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	return &models.MediaInfo{
		Title:       title,
		Type:        mediaType,
		Source:      p.Source(),
		ProviderID:  resolved,
		IsLocalFile: true,
		LocalPath:   resolved,
		HasRealID:   true,
	}
}

// SupportsExtension reports whether ext (with leading dot) is in the table
func (p *Local) SupportsExtension(ext string) bool {
	_, ok := p.extensions[strings.ToLower(ext)]
	return ok
}

// ResolvePath canonicalizes a file path, following symlinks when possible.
// The result is the dedup key for local files.
func ResolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
