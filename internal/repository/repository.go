package repository

import (
	"context"
	"time"

	"alugae-backend/internal/domain"
)

// Implementations return domain.ErrNotFound (possibly wrapped) when a
// single-row lookup matches nothing.

type BookingRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// CompleteEndedBefore moves active bookings whose last day is before
	// day to completed and returns them.
	CompleteEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error)
	// ListHoldingBlocks returns bookings in status that still own a
	// booking-sourced calendar block.
	ListHoldingBlocks(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
}

type ContractRepository interface {
	Create(ctx context.Context, contract *domain.Contract) error
	GetByID(ctx context.Context, id int32) (*domain.Contract, error)
	GetByBookingID(ctx context.Context, bookingID int32) (*domain.Contract, error)
	Update(ctx context.Context, contract *domain.Contract) error
	// ApplySignature sets one party's flag in a single statement and returns
	// the stored row. A signed contract yields domain.ErrContractImmutable.
	ApplySignature(ctx context.Context, id int32, party domain.SignatureParty, at time.Time) (*domain.Contract, error)
}

type CalendarBlockRepository interface {
	// CreateForBooking inserts the booking's block unless one already
	// exists; created reports whether a row was written.
	CreateForBooking(ctx context.Context, block *domain.CalendarBlock) (created bool, err error)
	DeleteByBooking(ctx context.Context, bookingID int32) (int64, error)
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.CalendarBlock, error)
}

type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) error
	GetByID(ctx context.Context, id int32) (*domain.WaitlistEntry, error)
	// ListPending returns active, not yet notified entries for the vehicle
	// overlapping r, oldest first.
	ListPending(ctx context.Context, vehicleID int32, r domain.DateRange) ([]domain.WaitlistEntry, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id int32, at time.Time) error
	Deactivate(ctx context.Context, id int32) error
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
}
