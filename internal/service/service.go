package service

import (
	"context"
	"errors"
	"time"

	"alugae-backend/internal/domain"
)

type CalendarService interface {
	ReleaseBlocksForBooking(ctx context.Context, bookingID int32) (*domain.ReleaseResult, error)
	BlockDatesForBooking(ctx context.Context, booking *domain.Booking) (bool, error)
	ListBlocks(ctx context.Context, vehicleID int32) ([]domain.CalendarBlock, error)
}

type WaitlistService interface {
	GetWaitlistForVehicle(ctx context.Context, vehicleID int32, released domain.DateRange) ([]domain.WaitlistEntry, error)
	Join(ctx context.Context, userID, vehicleID int32, desired domain.DateRange) (*domain.WaitlistEntry, error)
	Leave(ctx context.Context, userID, entryID int32, isAdmin bool) error
	ListForUser(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error)
}

type Notifier interface {
	NotifyWaitlist(ctx context.Context, entries []domain.WaitlistEntry, vehicle *domain.Vehicle) *domain.NotificationResult
}

type ReleaseService interface {
	RunAutoRelease(ctx context.Context) (*domain.SweepResult, error)
	ReleaseCancelled(ctx context.Context, booking *domain.Booking) (*domain.SweepResult, error)
}

type BookingService interface {
	ConfirmPayment(ctx context.Context, bookingID int32) (*domain.Booking, error)
	StartRental(ctx context.Context, bookingID int32) (*domain.Booking, error)
	CompleteExpiredBookings(ctx context.Context, today time.Time) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error)
}

type ContractService interface {
	MarkSent(ctx context.Context, contractID int32) (*domain.Contract, error)
	ApplySignature(ctx context.Context, contractID int32, party domain.SignatureParty) (*domain.Contract, error)
}

// NoticeTransport delivers one availability notice to one user.
type NoticeTransport interface {
	SendAvailabilityNotice(ctx context.Context, notice *domain.AvailabilityNotice) error
}

// VehicleLocker serialises releases of the same vehicle. Acquire returns
// domain.ErrVehicleBusy when another holder has the lock.
type VehicleLocker interface {
	Acquire(ctx context.Context, vehicleID int32) (unlock func(), err error)
}

type ReleaseEventPublisher interface {
	PublishRelease(ctx context.Context, event *domain.ReleaseEvent) error
}

type SweepBroadcaster interface {
	BroadcastSweep(result *domain.SweepResult)
}

// storageErr wraps err as a StorageError unless it is a not-found, which
// callers map to their own responses.
func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return domain.NewStorageError(op, err)
}
