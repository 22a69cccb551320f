package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"

	"github.com/google/uuid"
)

type releaseService struct {
	bookingRepo  repository.BookingRepository
	contractRepo repository.ContractRepository
	vehicleRepo  repository.VehicleRepository
	calendar     CalendarService
	waitlist     WaitlistService
	notifier     Notifier
	locker       VehicleLocker
	publisher    ReleaseEventPublisher
	broadcaster  SweepBroadcaster
}

// NewReleaseService wires the auto-release sweep. publisher and broadcaster
// may be nil.
func NewReleaseService(
	bookingRepo repository.BookingRepository,
	contractRepo repository.ContractRepository,
	vehicleRepo repository.VehicleRepository,
	calendar CalendarService,
	waitlist WaitlistService,
	notifier Notifier,
	locker VehicleLocker,
	publisher ReleaseEventPublisher,
	broadcaster SweepBroadcaster,
) ReleaseService {
	return &releaseService{
		bookingRepo:  bookingRepo,
		contractRepo: contractRepo,
		vehicleRepo:  vehicleRepo,
		calendar:     calendar,
		waitlist:     waitlist,
		notifier:     notifier,
		locker:       locker,
		publisher:    publisher,
		broadcaster:  broadcaster,
	}
}

// bookingOutcome is what processing one booking contributed to a sweep.
type bookingOutcome struct {
	bookingID int32
	vehicleID int32
	removed   int64
	notified  []domain.NotifiedUser
	failures  []domain.NotificationFailure
	err       error
}

func (o bookingOutcome) applyTo(r *domain.SweepResult) {
	if o.removed > 0 {
		r.ReleasedCount++
		r.RemovedBlocks += o.removed
	}
	r.Notifications = append(r.Notifications, o.notified...)
	r.Failures = append(r.Failures, o.failures...)
	if o.err != nil {
		r.Errors = append(r.Errors, domain.SweepError{
			BookingID: o.bookingID,
			VehicleID: o.vehicleID,
			Kind:      domain.ErrorKind(o.err),
			Error:     o.err.Error(),
		})
	}
	r.NotifiedCount = len(r.Notifications)
}

func newSweepResult() *domain.SweepResult {
	return &domain.SweepResult{
		SweepID:       uuid.NewString(),
		StartedAt:     time.Now(),
		Notifications: []domain.NotifiedUser{},
		Failures:      []domain.NotificationFailure{},
		Errors:        []domain.SweepError{},
	}
}

// RunAutoRelease lifts the calendar blocks of every completed booking with a
// signed contract and tells the waiting users. Cancelled bookings whose
// blocks are still in place, because their immediate release failed, are
// picked up here too. Only a failure to list bookings aborts the sweep;
// anything else is recorded per booking.
func (s *releaseService) RunAutoRelease(ctx context.Context) (*domain.SweepResult, error) {
	result := newSweepResult()
	log := logger.WithSweep(result.SweepID)
	log.Info("Auto-release sweep started")

	bookings, err := s.bookingRepo.ListByStatus(ctx, domain.BookingStatusCompleted)
	if err != nil {
		err = domain.NewStorageError("list completed bookings", err)
		log.Error("Auto-release sweep aborted", "error", err)
		return nil, err
	}
	cancelled, err := s.bookingRepo.ListHoldingBlocks(ctx, domain.BookingStatusCancelled)
	if err != nil {
		err = domain.NewStorageError("list cancelled bookings", err)
		log.Error("Auto-release sweep aborted", "error", err)
		return nil, err
	}
	result.Scanned = len(bookings) + len(cancelled)

	for i := range bookings {
		outcome := s.processCompleted(ctx, &bookings[i], result.SweepID)
		s.record(log, result, outcome)
	}
	for i := range cancelled {
		outcome := s.processCancelled(ctx, &cancelled[i], result.SweepID)
		s.record(log, result, outcome)
	}

	result.FinishedAt = time.Now()
	log.Info("Auto-release sweep finished",
		"scanned", result.Scanned,
		"released", result.ReleasedCount,
		"removedBlocks", result.RemovedBlocks,
		"notified", result.NotifiedCount,
		"failures", len(result.Failures),
		"errors", len(result.Errors),
		"duration", result.FinishedAt.Sub(result.StartedAt))

	if s.broadcaster != nil {
		s.broadcaster.BroadcastSweep(result)
	}
	return result, nil
}

// ReleaseCancelled frees the dates of a cancelled booking right away. The
// contract is not consulted.
func (s *releaseService) ReleaseCancelled(ctx context.Context, b *domain.Booking) (*domain.SweepResult, error) {
	if !domain.IsImmediateReleasable(b) {
		if b == nil {
			return nil, domain.NewValidationError("booking", 0, "missing booking")
		}
		return nil, domain.NewValidationError("booking", b.ID, "only cancelled bookings are released immediately")
	}

	result := newSweepResult()
	result.Scanned = 1
	outcome := s.processCancelled(ctx, b, result.SweepID)
	outcome.applyTo(result)
	result.FinishedAt = time.Now()

	if s.broadcaster != nil && outcome.removed > 0 {
		s.broadcaster.BroadcastSweep(result)
	}
	return result, outcome.err
}

func (s *releaseService) record(log *slog.Logger, result *domain.SweepResult, outcome bookingOutcome) {
	if outcome.err != nil {
		log.Warn("Booking not released", "bookingID", outcome.bookingID, "vehicleID", outcome.vehicleID, "kind", domain.ErrorKind(outcome.err), "error", outcome.err)
	}
	outcome.applyTo(result)
}

func (s *releaseService) processCancelled(ctx context.Context, b *domain.Booking, sweepID string) bookingOutcome {
	if err := b.Validate(); err != nil {
		return bookingOutcome{bookingID: b.ID, vehicleID: b.VehicleID, err: err}
	}
	return s.release(ctx, b, domain.ReleaseReasonCancelled, sweepID)
}

func (s *releaseService) processCompleted(ctx context.Context, b *domain.Booking, sweepID string) bookingOutcome {
	outcome := bookingOutcome{bookingID: b.ID, vehicleID: b.VehicleID}

	if err := b.Validate(); err != nil {
		outcome.err = err
		return outcome
	}

	contract, err := s.contractRepo.GetByBookingID(ctx, b.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			outcome.err = domain.NewStorageError("get contract", err)
			return outcome
		}
		contract = nil
	}

	if !domain.IsReleaseEligible(b, contract) {
		logger.Debug("Booking not eligible for release", "bookingID", b.ID, "hasContract", contract != nil)
		return outcome
	}

	return s.release(ctx, b, domain.ReleaseReasonCompleted, sweepID)
}

// release removes the booking's blocks and notifies the waitlist while
// holding the vehicle lock. Blocks are deleted before anyone is notified.
func (s *releaseService) release(ctx context.Context, b *domain.Booking, reason, sweepID string) bookingOutcome {
	outcome := bookingOutcome{bookingID: b.ID, vehicleID: b.VehicleID}

	unlock, err := s.locker.Acquire(ctx, b.VehicleID)
	if err != nil {
		outcome.err = err
		return outcome
	}
	defer unlock()

	vehicle, err := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	if err != nil {
		outcome.err = domain.NewStorageError("get vehicle", err)
		return outcome
	}

	// The waitlist is read first so a failed read leaves the blocks for
	// the next sweep.
	entries, err := s.waitlist.GetWaitlistForVehicle(ctx, b.VehicleID, b.Range())
	if err != nil {
		outcome.err = err
		return outcome
	}

	released, err := s.calendar.ReleaseBlocksForBooking(ctx, b.ID)
	if err != nil {
		outcome.err = err
		return outcome
	}
	outcome.removed = released.RemovedBlockCount
	if outcome.removed == 0 {
		return outcome
	}

	notified := s.notifier.NotifyWaitlist(ctx, entries, vehicle)
	outcome.notified = notified.NotifiedUsers
	outcome.failures = notified.Failures

	logger.Info("Vehicle dates released",
		"sweepID", sweepID,
		"bookingID", b.ID,
		"vehicleID", b.VehicleID,
		"reason", reason,
		"dates", b.Range().String(),
		"removed", outcome.removed,
		"notified", len(outcome.notified))

	s.publish(ctx, &domain.ReleaseEvent{
		SweepID:       sweepID,
		BookingID:     b.ID,
		VehicleID:     b.VehicleID,
		Reason:        reason,
		ReleasedDates: b.Range(),
		RemovedBlocks: outcome.removed,
		NotifiedUsers: len(outcome.notified),
		OccurredAt:    time.Now(),
	})
	return outcome
}

func (s *releaseService) publish(ctx context.Context, event *domain.ReleaseEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRelease(ctx, event); err != nil {
		logger.Warn("Release event not published", "bookingID", event.BookingID, "vehicleID", event.VehicleID, "error", err)
	}
}
