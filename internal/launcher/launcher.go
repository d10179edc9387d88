package launcher

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/ingest"
	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/providers"
)

// Launcher opens catalogued media with the preferred method: local files
// with the OS opener, online content in the browser or via an app deep
// link. The method used and the open timestamp are recorded through the
// ingestion loop so all store writes stay on one goroutine.
type Launcher struct {
	registry    *providers.Registry
	loop        *ingest.Loop
	db          *models.Database
	openMethods map[string]string // source -> preferred method
	openCmd     func(target string) error
	logger      *logrus.Logger
}

// New creates a launcher. openMethods maps a source id to "browser",
// "app", "local" or "auto".
func New(registry *providers.Registry, loop *ingest.Loop, db *models.Database, openMethods map[string]string, logger *logrus.Logger) *Launcher {
	return &Launcher{
		registry:    registry,
		loop:        loop,
		db:          db,
		openMethods: openMethods,
		openCmd:     openWithOS,
		logger:      logger,
	}
}

// Open launches a media record and records the method used
func (l *Launcher) Open(item *models.Media) error {
	if item.IsLocalFile {
		if item.LocalPath == "" {
			return fmt.Errorf("local media %d has no path", item.ID)
		}
		if err := l.openCmd(item.LocalPath); err != nil {
			return fmt.Errorf("failed to open local file: %w", err)
		}
		return l.recordOpen(item.ID, "local")
	}

	method := l.preferredMethod(item)
	if method == "app" {
		if deep := l.deepLink(item); deep != "" {
			if err := l.openCmd(deep); err == nil {
				return l.recordOpen(item.ID, "app")
			}
			l.logger.WithField("media_id", item.ID).Warn("Deep link failed, falling back to browser")
		}
	}

	url := l.browserURL(item)
	if url == "" {
		return fmt.Errorf("no way to open media from source %q", item.Source)
	}
	if err := l.openCmd(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return l.recordOpen(item.ID, "browser")
}

// preferredMethod resolves the open method: configured preference first,
// "auto" falls back to the method last used for this record
func (l *Launcher) preferredMethod(item *models.Media) string {
	method := l.openMethods[item.Source]
	if method == "" {
		method = "auto"
	}
	if method == "auto" && item.OpenMethod != "" && item.OpenMethod != "auto" {
		method = item.OpenMethod
	}
	return method
}

func (l *Launcher) browserURL(item *models.Media) string {
	p := l.registry.BySource(item.Source)
	if p == nil {
		return ""
	}
	if builder, ok := p.(providers.URLBuilder); ok {
		return builder.BrowserURL(item.ProviderID)
	}
	return ""
}

func (l *Launcher) deepLink(item *models.Media) string {
	p := l.registry.BySource(item.Source)
	if p == nil {
		return ""
	}
	if linker, ok := p.(providers.DeepLinker); ok {
		return linker.DeepLink(item.ProviderID)
	}
	return ""
}

func (l *Launcher) recordOpen(id uint64, method string) error {
	return l.loop.Submit(func() (bool, error) {
		media, err := l.db.GetMediaByID(id)
		if err != nil {
			return false, err
		}
		now := time.Now()
		media.OpenMethod = method
		media.LastOpenedAt = &now
		if err := l.db.UpdateMedia(media); err != nil {
			return false, err
		}
		return true, nil
	})
}

// openWithOS hands a path or URL to the platform opener without waiting
// for it to exit
func openWithOS(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	return cmd.Start()
}
