package postgres_test

import (
	"context"
	"testing"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var waitlistCols = []string{"id", "vehicle_id", "user_id", "desired_start_date", "desired_end_date", "notification_sent", "notified_at", "is_active", "created_at"}

func TestWaitlistRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewWaitlistRepository(db)
	released := domain.DateRange{Start: day("2025-08-01"), End: day("2025-08-03")}
	t0 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(waitlistCols).
		AddRow(1, 3, 20, day("2025-08-03"), day("2025-08-05"), false, nil, true, t0).
		AddRow(2, 3, 21, day("2025-07-30"), day("2025-08-01"), false, nil, true, t0.Add(time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM waiting_queue(.+)ORDER BY created_at ASC, id ASC").
		WithArgs(int32(3), released.Start, released.End).
		WillReturnRows(rows)

	entries, err := repo.ListPending(context.Background(), 3, released)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int32(20), entries[0].UserID)
	assert.Nil(t, entries[0].NotifiedAt)
	assert.True(t, entries[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitlistRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewWaitlistRepository(db)
	e := &domain.WaitlistEntry{VehicleID: 3, UserID: 20, DesiredStartDate: day("2025-08-01"), DesiredEndDate: day("2025-08-04")}

	mock.ExpectQuery("INSERT INTO waiting_queue").
		WithArgs(int32(3), int32(20), e.DesiredStartDate, e.DesiredEndDate, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(55))

	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, int32(55), e.ID)
	assert.True(t, e.IsActive)
	assert.False(t, e.CreatedOn.IsZero())
}

func TestWaitlistRepository_MarkNotified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewWaitlistRepository(db)
	at := time.Date(2025, 8, 4, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE waiting_queue SET notification_sent = TRUE, notified_at = \\$2 WHERE id = \\$1").
		WithArgs(int32(55), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkNotified(context.Background(), 55, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitlistRepository_Deactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewWaitlistRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE waiting_queue SET is_active = FALSE").
		WithArgs(int32(55)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE waiting_queue SET is_active = FALSE").
		WithArgs(int32(55)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Deactivate(ctx, 55))
	assert.ErrorIs(t, repo.Deactivate(ctx, 55), domain.ErrNotFound)
}
