package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mediascope/mediascope/internal/models"
)

// Scheduler manages recurring maintenance jobs. The blacklist expiry
// sweep is deliberately not scheduled here; it runs at startup and on
// explicit request only.
type Scheduler struct {
	cron   *cron.Cron
	db     *models.Database
	logger *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(db *models.Database, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		db:     db,
		logger: logger,
	}
}

// Start registers the jobs and starts the cron runner
func (s *Scheduler) Start() error {
	// Every hour: log a catalogue summary
	if _, err := s.cron.AddFunc("0 * * * *", s.runStats); err != nil {
		return fmt.Errorf("failed to add stats job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Log one summary right away so a fresh daemon shows its state
	go s.runStats()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runStats executes the catalogue summary job
func (s *Scheduler) runStats() {
	stats, err := s.db.GetStats()
	if err != nil {
		s.logger.WithError(err).Error("Stats job failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"total":       stats.Total,
		"favorites":   stats.Favorites,
		"blacklisted": stats.Blacklisted,
		"local_files": stats.LocalFiles,
	}).Info("Catalogue status")
}
