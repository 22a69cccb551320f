package service_test

import (
	"context"
	"sync"
	"time"

	"alugae-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) CompleteEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListHoldingBlocks(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContractRepo) GetByID(ctx context.Context, id int32) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) GetByBookingID(ctx context.Context, bookingID int32) (*domain.Contract, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
func (m *MockContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContractRepo) ApplySignature(ctx context.Context, id int32, party domain.SignatureParty, at time.Time) (*domain.Contract, error) {
	args := m.Called(ctx, id, party, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

type MockBlockRepo struct {
	mock.Mock
}

func (m *MockBlockRepo) CreateForBooking(ctx context.Context, blk *domain.CalendarBlock) (bool, error) {
	args := m.Called(ctx, blk)
	return args.Bool(0), args.Error(1)
}
func (m *MockBlockRepo) DeleteByBooking(ctx context.Context, bookingID int32) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBlockRepo) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.CalendarBlock, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalendarBlock), args.Error(1)
}

type MockWaitlistRepo struct {
	mock.Mock
}

func (m *MockWaitlistRepo) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockWaitlistRepo) GetByID(ctx context.Context, id int32) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistRepo) ListPending(ctx context.Context, vehicleID int32, r domain.DateRange) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, vehicleID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistRepo) ListByUser(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistRepo) MarkNotified(ctx context.Context, id int32, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockWaitlistRepo) Deactivate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

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

// recordingTransport keeps the order notices were sent in and fails for
// the listed user ids.
type recordingTransport struct {
	mu     sync.Mutex
	sent   []int32
	failOn map[int32]error
}

func (t *recordingTransport) SendAvailabilityNotice(_ context.Context, n *domain.AvailabilityNotice) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.failOn[n.User.ID]; ok {
		return err
	}
	t.sent = append(t.sent, n.User.ID)
	return nil
}

type recordingPublisher struct {
	events []*domain.ReleaseEvent
	err    error
}

func (p *recordingPublisher) PublishRelease(_ context.Context, e *domain.ReleaseEvent) error {
	p.events = append(p.events, e)
	return p.err
}

type recordingBroadcaster struct {
	results []*domain.SweepResult
}

func (b *recordingBroadcaster) BroadcastSweep(r *domain.SweepResult) {
	b.results = append(b.results, r)
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dates(start, end string) domain.DateRange {
	return domain.DateRange{Start: day(start), End: day(end)}
}
