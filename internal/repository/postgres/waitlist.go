package postgres

import (
	"context"
	"database/sql"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

const waitlistColumns = `id, vehicle_id, user_id, desired_start_date, desired_end_date, notification_sent, notified_at, is_active, created_at`

type waitlistRepository struct {
	db *sql.DB
}

func NewWaitlistRepository(db *sql.DB) repository.WaitlistRepository {
	return &waitlistRepository{db: db}
}

func scanWaitlistEntry(s rowScanner) (*domain.WaitlistEntry, error) {
	e := &domain.WaitlistEntry{}
	var notifiedAt sql.NullTime
	err := s.Scan(&e.ID, &e.VehicleID, &e.UserID, &e.DesiredStartDate, &e.DesiredEndDate, &e.NotificationSent, &notifiedAt, &e.IsActive, &e.CreatedOn)
	if err != nil {
		return nil, err
	}
	e.NotifiedAt = nullTimePtr(notifiedAt)
	return e, nil
}

func (r *waitlistRepository) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	query := `INSERT INTO waiting_queue (vehicle_id, user_id, desired_start_date, desired_end_date, notification_sent, is_active, created_at)
	          VALUES ($1, $2, $3, $4, FALSE, TRUE, $5) RETURNING id`
	e.CreatedOn = time.Now()
	e.IsActive = true
	e.NotificationSent = false
	logger.DatabaseCall("INSERT", "waiting_queue", "vehicleID", e.VehicleID, "userID", e.UserID)
	err := r.db.QueryRowContext(ctx, query, e.VehicleID, e.UserID, e.DesiredStartDate, e.DesiredEndDate, e.CreatedOn).Scan(&e.ID)
	logger.DatabaseResult("INSERT", 1, err, "entryID", e.ID)
	return err
}

func (r *waitlistRepository) GetByID(ctx context.Context, id int32) (*domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waiting_queue WHERE id = $1`
	e, err := scanWaitlistEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "waitlist entry", id)
	}
	return e, nil
}

func (r *waitlistRepository) ListPending(ctx context.Context, vehicleID int32, released domain.DateRange) ([]domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waiting_queue
	          WHERE vehicle_id = $1 AND is_active = TRUE AND notification_sent = FALSE
	            AND desired_start_date <= $3 AND desired_end_date >= $2
	          ORDER BY created_at ASC, id ASC`
	logger.DatabaseCall("SELECT", "waiting_queue", "vehicleID", vehicleID, "released", released.String())
	rows, err := r.db.QueryContext(ctx, query, vehicleID, domain.CalendarDate(released.Start), domain.CalendarDate(released.End))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	entries, err := collectWaitlist(rows)
	logger.DatabaseResult("SELECT", int64(len(entries)), err)
	return entries, err
}

func (r *waitlistRepository) ListByUser(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error) {
	query := `SELECT ` + waitlistColumns + ` FROM waiting_queue
	          WHERE user_id = $1 AND is_active = TRUE ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWaitlist(rows)
}

func (r *waitlistRepository) MarkNotified(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE waiting_queue SET notification_sent = TRUE, notified_at = $2 WHERE id = $1`
	logger.DatabaseCall("UPDATE", "waiting_queue", "entryID", id)
	res, err := r.db.ExecContext(ctx, query, id, at)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	return err
}

func (r *waitlistRepository) Deactivate(ctx context.Context, id int32) error {
	query := `UPDATE waiting_queue SET is_active = FALSE WHERE id = $1 AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(sql.ErrNoRows, "waitlist entry", id)
	}
	return nil
}

func collectWaitlist(rows *sql.Rows) ([]domain.WaitlistEntry, error) {
	var entries []domain.WaitlistEntry
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
