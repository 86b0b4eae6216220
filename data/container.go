// Package data provides thread-safe storage for pipeline run state. The
// RunContainer uses atomic values so the scheduler and the ops server can
// read statistics while a run is in progress.
package data

import (
	"sync/atomic"
	"time"

	"github.com/ncmbianchi/omim-converter/interfaces"
	"github.com/ncmbianchi/omim-converter/logging"
	"github.com/ncmbianchi/omim-converter/mappingbuilder/entities"
)

// Compile-time check to ensure RunContainer implements RunStore
var _ interfaces.RunStore = (*RunContainer)(nil)

// RunContainer holds the latest run statistics with atomic accessors.
type RunContainer struct {
	stats     atomic.Value // entities.RunStats
	lastRun   atomic.Value // time.Time
	running   atomic.Bool
	startTime atomic.Value // time.Time
}

// NewRunContainer creates a RunContainer with empty state.
func NewRunContainer() *RunContainer {
	rc := &RunContainer{}
	rc.stats.Store(entities.RunStats{})
	rc.lastRun.Store(time.Time{})
	rc.startTime.Store(time.Now())
	return rc
}

// GetRunStats returns the statistics of the last completed run.
func (rc *RunContainer) GetRunStats() entities.RunStats {
	if v := rc.stats.Load(); v != nil {
		if stats, ok := v.(entities.RunStats); ok {
			return stats
		}
	}

	logging.Warn("Run statistics are empty or invalid")
	return entities.RunStats{}
}

// GetLastRun returns the finish time of the last completed run.
func (rc *RunContainer) GetLastRun() time.Time {
	if v := rc.lastRun.Load(); v != nil {
		if lastRun, ok := v.(time.Time); ok {
			return lastRun
		}
	}

	logging.Warn("Could not get the last run value")
	return time.Time{}
}

// GetStartTime returns when the process started.
func (rc *RunContainer) GetStartTime() time.Time {
	if v := rc.startTime.Load(); v != nil {
		if start, ok := v.(time.Time); ok {
			return start
		}
	}
	return time.Time{}
}

// RecordRun stores the statistics of a completed run.
func (rc *RunContainer) RecordRun(stats entities.RunStats) {
	rc.stats.Store(stats)
	rc.lastRun.Store(stats.FinishedAt)
}

// BeginRun marks a run as started. It returns false when another run is
// already in progress.
func (rc *RunContainer) BeginRun() bool {
	return rc.running.CompareAndSwap(false, true)
}

// EndRun marks the current run as finished.
func (rc *RunContainer) EndRun() {
	rc.running.Store(false)
}

// IsRunning reports whether a run is in progress.
func (rc *RunContainer) IsRunning() bool {
	return rc.running.Load()
}
