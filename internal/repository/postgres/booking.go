package postgres

import (
	"context"
	"database/sql"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

const bookingColumns = `id, vehicle_id, renter_id, owner_id, start_date, end_date, status, payment_status, created_at, updated_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(s rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var status, payment string
	err := s.Scan(&b.ID, &b.VehicleID, &b.RenterID, &b.OwnerID, &b.StartDate, &b.EndDate, &status, &payment, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	b.PaymentStatus = domain.PaymentStatus(payment)
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "booking", id)
	}
	return b, nil
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY id`
	logger.DatabaseCall("SELECT", "bookings", "status", status)
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	logger.DatabaseResult("SELECT", int64(len(bookings)), err)
	return bookings, err
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status = $1, payment_status = $2, updated_at = $3 WHERE id = $4`
	b.UpdatedOn = time.Now()
	logger.DatabaseCall("UPDATE", "bookings", "bookingID", b.ID, "status", b.Status)
	res, err := r.db.ExecContext(ctx, query, string(b.Status), string(b.PaymentStatus), b.UpdatedOn, b.ID)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(sql.ErrNoRows, "booking", b.ID)
	}
	return nil
}

func (r *bookingRepository) CompleteEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	query := `UPDATE bookings SET status = 'completed', updated_at = $2
	          WHERE status = 'active' AND end_date < $1
	          RETURNING ` + bookingColumns
	logger.DatabaseCall("UPDATE", "bookings", "endedBefore", day.Format(domain.DateLayout))
	rows, err := r.db.QueryContext(ctx, query, day, time.Now())
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return nil, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	logger.DatabaseResult("UPDATE", int64(len(bookings)), err)
	return bookings, err
}

func (r *bookingRepository) ListHoldingBlocks(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
	          WHERE b.status = $1
	            AND EXISTS (SELECT 1 FROM calendar_blocks cb WHERE cb.booking_id = b.id AND cb.source = 'booking')
	          ORDER BY b.id`
	logger.DatabaseCall("SELECT", "bookings", "status", status, "holdingBlocks", true)
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	logger.DatabaseResult("SELECT", int64(len(bookings)), err)
	return bookings, err
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
