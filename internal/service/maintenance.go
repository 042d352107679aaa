package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// Refresher is the part of the candidate index refreshed on a schedule.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// MaintenanceSchedule holds cron specs of the background jobs. Empty specs disable a job.
type MaintenanceSchedule struct {
	IndexRefresh  string
	ThrottlePrune string
	AttemptsPrune string
}

// Maintenance runs periodic cleanup and refresh jobs.
type Maintenance struct {
	index     Refresher
	throttle  *Throttle
	attempts  model.AttemptStore
	retention time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

// NewMaintenance creates the job runner. attempts may be nil.
func NewMaintenance(index Refresher, throttle *Throttle, attempts model.AttemptStore, retention time.Duration, logger *logger.Logger) *Maintenance {
	return &Maintenance{
		index:     index,
		throttle:  throttle,
		attempts:  attempts,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

// RefreshIndex reloads the candidate index from the store.
func (m *Maintenance) RefreshIndex(ctx context.Context) error {
	return m.index.Refresh(ctx)
}

// PruneThrottle drops idle terminal limiters.
func (m *Maintenance) PruneThrottle() int {
	return m.throttle.Prune()
}

// PruneAttempts deletes audit records older than the retention period.
func (m *Maintenance) PruneAttempts(ctx context.Context) (int64, error) {
	if m.attempts == nil || m.retention <= 0 {
		return 0, nil
	}

	deleted, err := m.attempts.DeleteBefore(ctx, m.now().Add(-m.retention))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old attempts: %w", err)
	}
	return deleted, nil
}

// Register adds the scheduled jobs to c. Jobs run with ctx.
func (m *Maintenance) Register(ctx context.Context, c *cron.Cron, schedule MaintenanceSchedule) error {
	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{"index refresh", schedule.IndexRefresh, func() {
			if err := m.RefreshIndex(ctx); err != nil && ctx.Err() == nil {
				m.logger.Error("Maintenance: scheduled index refresh failed",
					"error", err.Error())
			}
		}},
		{"throttle prune", schedule.ThrottlePrune, func() {
			if n := m.PruneThrottle(); n > 0 {
				m.logger.Debug("Maintenance: pruned idle terminal limiters",
					"removed", n)
			}
		}},
		{"attempts prune", schedule.AttemptsPrune, func() {
			n, err := m.PruneAttempts(ctx)
			if err != nil {
				m.logger.Error("Maintenance: scheduled attempts cleanup failed",
					"error", err.Error())
				return
			}
			if n > 0 {
				m.logger.Info("Maintenance: pruned login attempts",
					"removed", n)
			}
		}},
	}

	for _, job := range jobs {
		if job.spec == "" {
			continue
		}
		if _, err := c.AddFunc(job.spec, job.run); err != nil {
			return fmt.Errorf("failed to schedule %s job: %w", job.name, err)
		}
	}
	return nil
}
