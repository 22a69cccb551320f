package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"alugae-backend/internal/domain"
)

// memBlocks is an in-memory calendar block table.
type memBlocks struct {
	mu     sync.Mutex
	nextID int32
	rows   []domain.CalendarBlock
	failOn map[int32]error
}

func (m *memBlocks) CreateForBooking(_ context.Context, blk *domain.CalendarBlock) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Source == domain.BlockSourceBooking && r.BookingID != nil && *r.BookingID == *blk.BookingID {
			return false, nil
		}
	}
	m.nextID++
	blk.ID = m.nextID
	m.rows = append(m.rows, *blk)
	return true, nil
}

func (m *memBlocks) DeleteByBooking(_ context.Context, bookingID int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failOn[bookingID]; ok {
		return 0, err
	}
	kept := m.rows[:0]
	var removed int64
	for _, r := range m.rows {
		if r.Source == domain.BlockSourceBooking && r.BookingID != nil && *r.BookingID == bookingID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	m.rows = kept
	return removed, nil
}

func (m *memBlocks) ListByVehicle(_ context.Context, vehicleID int32) ([]domain.CalendarBlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CalendarBlock
	for _, r := range m.rows {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	return out, nil
}

// memWaitlist is an in-memory waiting_queue table.
type memWaitlist struct {
	mu   sync.Mutex
	rows []domain.WaitlistEntry
	// listErr fails the next ListPending call once.
	listErr error
}

func (m *memWaitlist) Create(_ context.Context, e *domain.WaitlistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int32(len(m.rows) + 1)
	e.IsActive = true
	if e.CreatedOn.IsZero() {
		e.CreatedOn = time.Now()
	}
	m.rows = append(m.rows, *e)
	return nil
}

func (m *memWaitlist) GetByID(_ context.Context, id int32) (*domain.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			e := r
			return &e, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListPending returns rows in insertion order on purpose; callers sort.
func (m *memWaitlist) ListPending(_ context.Context, vehicleID int32, released domain.DateRange) ([]domain.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.listErr; err != nil {
		m.listErr = nil
		return nil, err
	}
	var out []domain.WaitlistEntry
	for _, r := range m.rows {
		if r.VehicleID == vehicleID && r.IsActive && !r.NotificationSent && r.DesiredRange().Overlaps(released) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memWaitlist) ListByUser(_ context.Context, userID int32) ([]domain.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.WaitlistEntry
	for _, r := range m.rows {
		if r.UserID == userID && r.IsActive {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })
	return out, nil
}

func (m *memWaitlist) MarkNotified(_ context.Context, id int32, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].NotificationSent = true
			m.rows[i].NotifiedAt = &at
		}
	}
	return nil
}

func (m *memWaitlist) Deactivate(_ context.Context, id int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].IsActive {
			m.rows[i].IsActive = false
			return nil
		}
	}
	return domain.ErrNotFound
}

// staticUsers and staticVehicles serve fixed rows.
type staticUsers map[int32]*domain.User

func (s staticUsers) GetByID(_ context.Context, id int32) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type staticVehicles map[int32]*domain.Vehicle

func (s staticVehicles) GetByID(_ context.Context, id int32) (*domain.Vehicle, error) {
	if v, ok := s[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}
