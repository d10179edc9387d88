package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mediascope/mediascope/internal/api"
	"github.com/mediascope/mediascope/internal/blacklist"
	"github.com/mediascope/mediascope/internal/config"
	"github.com/mediascope/mediascope/internal/ingest"
	"github.com/mediascope/mediascope/internal/launcher"
	"github.com/mediascope/mediascope/internal/metadata"
	"github.com/mediascope/mediascope/internal/models"
	"github.com/mediascope/mediascope/internal/providers"
	"github.com/mediascope/mediascope/internal/scheduler"
	"github.com/mediascope/mediascope/internal/utils"
	"github.com/mediascope/mediascope/internal/watchers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Mediascope")
	logger.WithField("config_dir", filepath.Dir(cfg.DatabaseFile)).Info("Configuration loaded")

	// 3. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	logger.Info("Database initialized")

	// 4. Startup blacklist sweep
	blacklistMgr := blacklist.NewManager(db, logger)
	if lifted, err := blacklistMgr.Sweep(); err != nil {
		logger.WithError(err).Warn("Startup blacklist sweep failed, continuing")
	} else if lifted > 0 {
		logger.WithField("lifted", lifted).Info("Startup blacklist sweep completed")
	}

	// 5. Classification and ingestion pipeline
	registry := providers.NewRegistry(cfg.Extensions)
	fetcher := metadata.NewFetcher(logger)
	catalog := ingest.NewCatalog(db, fetcher, cfg.AutoFetchMetadata, logger)
	queue := ingest.NewQueue()
	changes := ingest.NewChangeTracker()
	loop := ingest.NewLoop(queue, catalog, cfg.IngestTick, cfg.IngestBatchSize, changes.Mark, logger)
	dispatcher := watchers.NewDispatcher(registry, queue, logger)
	logger.Info("Ingestion pipeline initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go loop.Run(ctx)

	// 6. Signal producers. Cancellation is cooperative; shutdown does not
	// wait for them.
	windowWatcher := watchers.NewWindowWatcher(dispatcher, cfg.WindowPollInterval, logger)
	go windowWatcher.Run(ctx)

	fileIndexer := watchers.NewFileIndexer(dispatcher, cfg.FileScanInterval, cfg.WatchPaths, cfg.Extensions, logger)
	go fileIndexer.Run(ctx)

	// 7. Open handler and scheduler
	open := launcher.New(registry, loop, db, cfg.OpenMethods, logger)

	sched := scheduler.NewScheduler(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 8. HTTP server
	server := api.NewServer(cfg, api.Deps{
		DB:         db,
		Queue:      queue,
		Loop:       loop,
		Changes:    changes,
		Dispatcher: dispatcher,
		Registry:   registry,
		Blacklist:  blacklistMgr,
		Launcher:   open,
	}, logger)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 9. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Mediascope is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Mediascope stopped")
	return nil
}
