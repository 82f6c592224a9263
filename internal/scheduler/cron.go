package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/coubarr/internal/consistency"
	"github.com/amaumene/coubarr/internal/controllers"
)

// Scheduler runs the periodic sync-download-check cycle for watch mode
type Scheduler struct {
	cron         *cron.Cron
	syncCtrl     *controllers.SyncController
	downloadCtrl *controllers.DownloadController
	checker      *consistency.Checker
	schedule     string
	logger       *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(syncCtrl *controllers.SyncController, downloadCtrl *controllers.DownloadController, checker *consistency.Checker, schedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		syncCtrl:     syncCtrl,
		downloadCtrl: downloadCtrl,
		checker:      checker,
		schedule:     schedule,
		logger:       logger,
	}
}

// Start starts the scheduler and kicks off an immediate first cycle
func (s *Scheduler) Start() error {
	s.logger.WithField("schedule", s.schedule).Info("Starting scheduler")

	if _, err := s.cron.AddFunc(s.schedule, s.runCycle); err != nil {
		return fmt.Errorf("failed to add sync job: %w", err)
	}

	s.cron.Start()
	go s.runCycle()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runCycle refetches the likes listing, downloads anything new and then
// runs the consistency check over the output tree
func (s *Scheduler) runCycle() {
	s.logger.Info("Running scheduled sync")
	ctx := context.Background()

	coubs, err := s.syncCtrl.Refresh(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Sync failed")
		return
	}

	if _, err := s.downloadCtrl.ProcessAll(ctx, coubs); err != nil {
		s.logger.WithError(err).Error("Download run failed")
		return
	}

	if _, err := s.checker.Run(); err != nil {
		s.logger.WithError(err).Error("Consistency check failed")
	}
}
