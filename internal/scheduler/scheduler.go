package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"alugae-backend/internal/jobs"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/timezone"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler in the marketplace time zone with seconds
// precision and registers every job.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	loc := timezone.Location(jobRunner.Config().Release.Timezone)
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Release vehicles whose rentals are over
	if _, err := s.cron.AddFunc(cfg.ReleaseExpiredVehicles, s.jobs.ReleaseExpiredVehicles); err != nil {
		logger.Error("Failed to register ReleaseExpiredVehicles job", "error", err, "spec", cfg.ReleaseExpiredVehicles)
		return fmt.Errorf("register %s: %w", jobs.JobReleaseExpiredVehicles, err)
	}

	// Complete bookings past their end date
	if _, err := s.cron.AddFunc(cfg.CompleteExpiredBookings, s.jobs.CompleteExpiredBookings); err != nil {
		logger.Error("Failed to register CompleteExpiredBookings job", "error", err, "spec", cfg.CompleteExpiredBookings)
		return fmt.Errorf("register %s: %w", jobs.JobCompleteExpiredBookings, err)
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has registered jobs
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}

// Entries exposes the registered schedules.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}
