package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.ContractRepository
	repository.CalendarBlockRepository
	repository.WaitlistRepository
	repository.VehicleRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		BookingRepository:       NewBookingRepository(db),
		ContractRepository:      NewContractRepository(db),
		CalendarBlockRepository: NewCalendarBlockRepository(db),
		WaitlistRepository:      NewWaitlistRepository(db),
		VehicleRepository:       NewVehicleRepository(db),
		UserRepository:          NewUserRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound.
func notFound(err error, entity string, id int32) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return err
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
