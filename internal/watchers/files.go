package watchers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/providers"
)

// FileIndexer recursively scans the configured watch directories for
// supported media files. The canonical resolved path is the dedup key;
// paths already dispatched stay in an in-memory set for the lifetime of
// the process (no persistence, no eviction).
type FileIndexer struct {
	dispatcher *Dispatcher
	interval   time.Duration
	watchPaths []string
	extensions map[string]models.MediaType
	known      map[string]struct{}
	logger     *logrus.Logger
}

// NewFileIndexer creates the filesystem poller
func NewFileIndexer(dispatcher *Dispatcher, interval time.Duration, watchPaths []string, extensions map[string]models.MediaType, logger *logrus.Logger) *FileIndexer {
	if extensions == nil {
		extensions = providers.DefaultExtensions
	}
	return &FileIndexer{
		dispatcher: dispatcher,
		interval:   interval,
		watchPaths: watchPaths,
		extensions: extensions,
		known:      make(map[string]struct{}),
		logger:     logger,
	}
}

// Run scans until ctx is cancelled. Blocking; run it on its own goroutine.
func (f *FileIndexer) Run(ctx context.Context) {
	f.logger.WithFields(logrus.Fields{
		"interval": f.interval,
		"paths":    len(f.watchPaths),
	}).Info("File indexer started")

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.safeScan(ctx)
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("File indexer stopped")
			return
		case <-ticker.C:
			f.safeScan(ctx)
		}
	}
}

// safeScan runs one full scan with failure isolation
func (f *FileIndexer) safeScan(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.WithField("panic", r).Error("File indexer iteration failed")
		}
	}()
	f.scan(ctx)
}

// scan walks every watch root. A failing root is logged and the walk
// continues with the next one.
func (f *FileIndexer) scan(ctx context.Context) {
	for _, root := range f.watchPaths {
		if ctx.Err() != nil {
			return
		}
		if _, err := os.Stat(root); err != nil {
			continue
		}
		f.scanDir(ctx, root)
	}
}

// scanDir walks one directory level, checking for cancellation before
// descending. Permission errors are skipped without aborting the scan.
func (f *FileIndexer) scanDir(ctx context.Context, dir string) {
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			return
		}
		f.logger.WithError(err).WithField("path", dir).Warn("Directory scan failed")
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			f.scanDir(ctx, path)
		} else if entry.Type().IsRegular() {
			f.processFile(path)
		}
	}
}

func (f *FileIndexer) processFile(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := f.extensions[ext]; !ok {
		return
	}

	resolved := providers.ResolvePath(path)
	if _, seen := f.known[resolved]; seen {
		return
	}
	f.known[resolved] = struct{}{}

	f.dispatcher.Dispatch(resolved, models.OriginFileIndexer)
}
