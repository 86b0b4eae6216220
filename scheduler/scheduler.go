// Package scheduler provides the recurring-run mode: an immediate initial
// pipeline run, a daily rebuild at a configured time, and a stale-run
// monitor.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// staleThreshold is how old the last successful run may get before the
// monitor starts warning. A daily schedule plus one hour of slack.
const staleThreshold = 25 * time.Hour

// Scheduler re-runs the mapping pipeline on a daily schedule using
// injected dependencies.
type Scheduler struct {
	store     interfaces.RunStore
	pipeline  interfaces.Pipeline
	opts      interfaces.RunOptions
	at        string
	scheduler *gocron.Scheduler
	quit      chan struct{}
}

// NewScheduler creates a scheduler instance. at is the daily run time in
// HH:MM.
func NewScheduler(store interfaces.RunStore, pipeline interfaces.Pipeline, opts interfaces.RunOptions, at string) *Scheduler {
	return &Scheduler{
		store:     store,
		pipeline:  pipeline,
		opts:      opts,
		at:        at,
		scheduler: gocron.NewScheduler(time.Local),
		quit:      make(chan struct{}),
	}
}

// Start performs the initial pipeline run, schedules the daily rebuild, and
// starts health monitoring. A failed initial run is fatal; failed scheduled
// runs are logged and retried at the next slot.
func (s *Scheduler) Start() error {
	if err := s.pipeline.Run(s.opts); err != nil {
		logging.Error("Failed to perform initial mapping build", "error", err)
		return fmt.Errorf("initial mapping build failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Day().At(s.at).Do(func() {
		if err := s.pipeline.Run(s.opts); err != nil {
			logging.Error("Scheduled mapping build failed", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule mapping builds", "error", err)
		return fmt.Errorf("failed to schedule mapping builds: %w", err)
	}

	s.scheduler.StartAsync()
	s.startHealthMonitoring()

	logging.Info("Scheduler started", "daily_at", s.at)
	return nil
}

// Stop stops the scheduler and the health monitor.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	close(s.quit)
}

// startHealthMonitoring warns when the mapping has not been rebuilt within
// the stale threshold.
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.quit:
				return
			case <-ticker.C:
				lastRun := s.store.GetLastRun()
				if time.Since(lastRun) > staleThreshold {
					logging.Warn("Mapping has not been rebuilt in over 25 hours",
						"last_run", lastRun,
					)
				}
			}
		}
	}()
}
