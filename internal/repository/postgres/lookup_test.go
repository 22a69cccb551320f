package postgres_test

import (
	"context"
	"testing"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewVehicleRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM vehicles WHERE id = \\$1").
		WithArgs(int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "brand", "model", "year"}).AddRow(3, 11, "Fiat", "Argo", 2022))

	v, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Fiat Argo", v.DisplayName())
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int32(20)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "device_token", "role"}).
			AddRow(20, "Ana Souza", "ana@example.com", "", "tok-1", "renter"))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(int32(21)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "device_token", "role"}))

	u, err := repo.GetByID(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", u.Name)
	assert.Equal(t, "tok-1", u.DeviceToken)

	_, err = repo.GetByID(ctx, 21)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	n := &domain.Notification{
		UserID:     20,
		Title:      "Veículo disponível",
		Message:    "Fiat Argo está disponível",
		Attributes: map[string]string{"type": domain.NotificationTypeVehicleAvailable, "vehicle_id": "3"},
	}

	mock.ExpectQuery("INSERT INTO notifications").
		WithArgs(int32(20), n.Title, n.Message, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))

	require.NoError(t, repo.Create(context.Background(), n))
	assert.Equal(t, int32(77), n.ID)
	assert.NotEmpty(t, n.CreatedOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}
