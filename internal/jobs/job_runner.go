package jobs

import (
	"fmt"
	"sort"
	"time"

	"alugae-backend/internal/config"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/service"
)

const (
	JobReleaseExpiredVehicles  = "release-expired-vehicles"
	JobCompleteExpiredBookings = "complete-expired-bookings"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	now      func() time.Time
	timeout  time.Duration
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Release service.ReleaseService
	Booking service.BookingService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
		now:      time.Now,
		timeout:  10 * time.Minute,
	}
}

// Config returns the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// SetClock replaces the wall clock, for tests and manual backfills.
func (jr *JobRunner) SetClock(now func() time.Time) {
	jr.now = now
}

// Jobs maps job names to their entry points.
func (jr *JobRunner) Jobs() map[string]func() {
	return map[string]func(){
		JobReleaseExpiredVehicles:  jr.ReleaseExpiredVehicles,
		JobCompleteExpiredBookings: jr.CompleteExpiredBookings,
	}
}

// Run executes one job by name.
func (jr *JobRunner) Run(name string) error {
	job, ok := jr.Jobs()[name]
	if !ok {
		names := make([]string, 0, 2)
		for n := range jr.Jobs() {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown job %q (available: %v)", name, names)
	}
	job()
	return nil
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	start := time.Now()
	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed", "duration", time.Since(start))
}
