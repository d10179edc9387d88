package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/api/handlers"
	"github.com/mediascope/mediascope/internal/api/middleware"
	"github.com/mediascope/mediascope/internal/blacklist"
	"github.com/mediascope/mediascope/internal/config"
	"github.com/mediascope/mediascope/internal/ingest"
	"github.com/mediascope/mediascope/internal/launcher"
	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/providers"
	"github.com/mediascope/mediascope/internal/watchers"
)

// Deps bundles the collaborators the HTTP surface exposes
type Deps struct {
	DB         *models.Database
	Queue      *ingest.Queue
	Loop       *ingest.Loop
	Changes    *ingest.ChangeTracker
	Dispatcher *watchers.Dispatcher
	Registry   *providers.Registry
	Blacklist  *blacklist.Manager
	Launcher   *launcher.Launcher
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps Deps, logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	mux := http.NewServeMux()
	s.setupRoutes(mux, deps)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux, deps Deps) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.Handle("GET /health", healthHandler)

	statusHandler := handlers.NewStatusHandler(deps.DB, deps.Queue, deps.Changes, deps.Registry, s.logger)
	mux.Handle("GET /status", statusHandler)

	libraryHandler := handlers.NewLibraryHandler(deps.DB, s.logger)
	mux.Handle("GET /api/library", libraryHandler)

	dispatchHandler := handlers.NewDispatchHandler(deps.Dispatcher, s.logger)
	mux.Handle("POST /api/dispatch", dispatchHandler)

	mediaHandler := handlers.NewMediaHandler(deps.DB, deps.Loop, deps.Blacklist, deps.Launcher, s.logger)
	mux.HandleFunc("POST /api/media/{id}/favorite", mediaHandler.ToggleFavorite)
	mux.HandleFunc("POST /api/media/{id}/blacklist", mediaHandler.Suppress)
	mux.HandleFunc("DELETE /api/media/{id}/blacklist", mediaHandler.Lift)
	mux.HandleFunc("DELETE /api/media/{id}", mediaHandler.Delete)
	mux.HandleFunc("POST /api/media/{id}/open", mediaHandler.Open)
	mux.HandleFunc("POST /api/blacklist/sweep", mediaHandler.Sweep)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
