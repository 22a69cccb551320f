package http_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"alugae-backend/internal/domain"
)

type MockReleaseService struct {
	mock.Mock
}

func (m *MockReleaseService) RunAutoRelease(ctx context.Context) (*domain.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}
func (m *MockReleaseService) ReleaseCancelled(ctx context.Context, b *domain.Booking) (*domain.SweepResult, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SweepResult), args.Error(1)
}

type MockWaitlistService struct {
	mock.Mock
}

func (m *MockWaitlistService) GetWaitlistForVehicle(ctx context.Context, vehicleID int32, released domain.DateRange) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, vehicleID, released)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistService) Join(ctx context.Context, userID, vehicleID int32, desired domain.DateRange) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, userID, vehicleID, desired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistService) Leave(ctx context.Context, userID, entryID int32, isAdmin bool) error {
	args := m.Called(ctx, userID, entryID, isAdmin)
	return args.Error(0)
}
func (m *MockWaitlistService) ListForUser(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) ReleaseBlocksForBooking(ctx context.Context, bookingID int32) (*domain.ReleaseResult, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReleaseResult), args.Error(1)
}
func (m *MockCalendarService) BlockDatesForBooking(ctx context.Context, b *domain.Booking) (bool, error) {
	args := m.Called(ctx, b)
	return args.Bool(0), args.Error(1)
}
func (m *MockCalendarService) ListBlocks(ctx context.Context, vehicleID int32) ([]domain.CalendarBlock, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalendarBlock), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) StartRental(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) CompleteExpiredBookings(ctx context.Context, today time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, id int32, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockContractService struct {
	mock.Mock
}

func (m *MockContractService) MarkSent(ctx context.Context, id int32) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractService) ApplySignature(ctx context.Context, id int32, party domain.SignatureParty) (*domain.Contract, error) {
	args := m.Called(ctx, id, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error { return p.err }
