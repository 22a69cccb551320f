package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

type calendarBlockRepository struct {
	db *sql.DB
}

func NewCalendarBlockRepository(db *sql.DB) repository.CalendarBlockRepository {
	return &calendarBlockRepository{db: db}
}

func (r *calendarBlockRepository) CreateForBooking(ctx context.Context, blk *domain.CalendarBlock) (bool, error) {
	logger.EnterMethod("calendarBlockRepository.CreateForBooking", "vehicleID", blk.VehicleID, "bookingID", blk.BookingID)

	query := `INSERT INTO calendar_blocks (vehicle_id, booking_id, start_date, end_date, source, reason, created_at)
	          SELECT $1, $2, $3, $4, $5, $6, $7
	          WHERE NOT EXISTS (SELECT 1 FROM calendar_blocks WHERE booking_id = $2 AND source = 'booking')
	          RETURNING id`
	blk.CreatedOn = time.Now()
	logger.DatabaseCall("INSERT", "calendar_blocks", "vehicleID", blk.VehicleID)
	err := r.db.QueryRowContext(ctx, query, blk.VehicleID, blk.BookingID, blk.StartDate, blk.EndDate, string(blk.Source), blk.Reason, blk.CreatedOn).Scan(&blk.ID)
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("INSERT", 0, nil)
		logger.ExitMethod("calendarBlockRepository.CreateForBooking", "created", false)
		return false, nil
	}
	logger.DatabaseResult("INSERT", 1, err, "blockID", blk.ID)
	if err != nil {
		logger.ExitMethodWithError("calendarBlockRepository.CreateForBooking", err)
		return false, err
	}
	logger.ExitMethod("calendarBlockRepository.CreateForBooking", "created", true, "blockID", blk.ID)
	return true, nil
}

func (r *calendarBlockRepository) DeleteByBooking(ctx context.Context, bookingID int32) (int64, error) {
	query := `DELETE FROM calendar_blocks WHERE source = 'booking' AND booking_id = $1`
	logger.DatabaseCall("DELETE", "calendar_blocks", "bookingID", bookingID)
	res, err := r.db.ExecContext(ctx, query, bookingID)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("DELETE", n, err)
	return n, err
}

func (r *calendarBlockRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.CalendarBlock, error) {
	query := `SELECT id, vehicle_id, booking_id, start_date, end_date, source, COALESCE(reason, ''), created_at
	          FROM calendar_blocks WHERE vehicle_id = $1 ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.CalendarBlock
	for rows.Next() {
		var blk domain.CalendarBlock
		var bookingID sql.NullInt32
		var source string
		if err := rows.Scan(&blk.ID, &blk.VehicleID, &bookingID, &blk.StartDate, &blk.EndDate, &source, &blk.Reason, &blk.CreatedOn); err != nil {
			return nil, err
		}
		if bookingID.Valid {
			id := bookingID.Int32
			blk.BookingID = &id
		}
		blk.Source = domain.BlockSource(source)
		blocks = append(blocks, blk)
	}
	return blocks, rows.Err()
}
