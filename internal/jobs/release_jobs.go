package jobs

import (
	"context"

	"alugae-backend/internal/logger"
	"alugae-backend/internal/timezone"
)

// ReleaseExpiredVehicles runs the auto-release sweep.
func (jr *JobRunner) ReleaseExpiredVehicles() {
	jr.runWithRecovery(JobReleaseExpiredVehicles, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
		defer cancel()

		result, err := jr.services.Release.RunAutoRelease(ctx)
		if err != nil {
			logger.Error("Auto-release sweep aborted", "error", err)
			return
		}

		logger.Info("Auto-release sweep finished",
			"sweepID", result.SweepID,
			"scanned", result.Scanned,
			"released", result.ReleasedCount,
			"notified", result.NotifiedCount,
			"failures", len(result.Failures),
			"errors", len(result.Errors))
	})
}

// CompleteExpiredBookings completes active bookings whose last day is
// before today in the marketplace time zone.
func (jr *JobRunner) CompleteExpiredBookings() {
	jr.runWithRecovery(JobCompleteExpiredBookings, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
		defer cancel()

		loc := timezone.Location(jr.config.Release.Timezone)
		today := jr.now().In(loc)

		completed, err := jr.services.Booking.CompleteExpiredBookings(ctx, today)
		if err != nil {
			logger.Error("Failed to complete expired bookings", "error", err)
			return
		}

		for _, b := range completed {
			logger.Debug("Booking completed", "bookingID", b.ID, "vehicleID", b.VehicleID, "endDate", b.EndDate.Format("2006-01-02"))
		}
		logger.Info("Completed expired bookings", "count", len(completed), "today", today.Format("2006-01-02"))
	})
}

// RunAll runs every job once, completion first so the sweep sees the
// bookings it just completed.
func (jr *JobRunner) RunAll() {
	jr.CompleteExpiredBookings()
	jr.ReleaseExpiredVehicles()
}
