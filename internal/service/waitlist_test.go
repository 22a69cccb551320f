package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWaitlistService_GetWaitlistForVehicle(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	entry := domain.WaitlistEntry{ID: 1, VehicleID: 3, UserID: 20, DesiredStartDate: day("2025-08-01"), DesiredEndDate: day("2025-08-03"), IsActive: true, CreatedOn: t0}

	tests := []struct {
		name     string
		released domain.DateRange
		want     int
	}{
		{"boundary day counts", dates("2025-08-03", "2025-08-05"), 1},
		{"day after is excluded", dates("2025-08-04", "2025-08-05"), 0},
		{"touching the start", dates("2025-07-28", "2025-08-01"), 1},
		{"contained", dates("2025-08-02", "2025-08-02"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockWaitlistRepo)
			repo.On("ListPending", ctx, int32(3), tt.released).Return([]domain.WaitlistEntry{entry}, nil)
			svc := service.NewWaitlistService(repo, new(MockVehicleRepo))

			got, err := svc.GetWaitlistForVehicle(ctx, 3, tt.released)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestWaitlistService_GetWaitlistForVehicleOrdering(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	released := dates("2025-08-01", "2025-08-03")
	rows := []domain.WaitlistEntry{
		{ID: 3, VehicleID: 3, UserID: 23, DesiredStartDate: day("2025-08-02"), DesiredEndDate: day("2025-08-02"), IsActive: true, CreatedOn: t0.Add(3 * time.Hour)},
		{ID: 1, VehicleID: 3, UserID: 21, DesiredStartDate: day("2025-08-01"), DesiredEndDate: day("2025-08-01"), IsActive: true, CreatedOn: t0.Add(time.Hour)},
		{ID: 4, VehicleID: 3, UserID: 24, DesiredStartDate: day("2025-08-02"), DesiredEndDate: day("2025-08-04"), IsActive: true, NotificationSent: true, CreatedOn: t0},
		{ID: 5, VehicleID: 9, UserID: 25, DesiredStartDate: day("2025-08-02"), DesiredEndDate: day("2025-08-04"), IsActive: true, CreatedOn: t0},
		{ID: 2, VehicleID: 3, UserID: 22, DesiredStartDate: day("2025-07-30"), DesiredEndDate: day("2025-08-01"), IsActive: true, CreatedOn: t0.Add(2 * time.Hour)},
	}
	repo := new(MockWaitlistRepo)
	repo.On("ListPending", ctx, int32(3), released).Return(rows, nil)
	svc := service.NewWaitlistService(repo, new(MockVehicleRepo))

	got, err := svc.GetWaitlistForVehicle(ctx, 3, released)
	require.NoError(t, err)

	var users []int32
	for _, e := range got {
		users = append(users, e.UserID)
	}
	assert.Equal(t, []int32{21, 22, 23}, users)
}

func TestWaitlistService_GetWaitlistForVehicleErrors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockWaitlistRepo)
	svc := service.NewWaitlistService(repo, new(MockVehicleRepo))

	_, err := svc.GetWaitlistForVehicle(ctx, 3, dates("2025-08-05", "2025-08-01"))
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	repo.On("ListPending", ctx, int32(3), mock.Anything).Return(nil, errors.New("timeout"))
	_, err = svc.GetWaitlistForVehicle(ctx, 3, dates("2025-08-01", "2025-08-05"))
	var se *domain.StorageError
	assert.ErrorAs(t, err, &se)
}

func TestWaitlistService_JoinAndLeave(t *testing.T) {
	ctx := context.Background()
	store := &memWaitlist{}
	vehicles := staticVehicles{3: {ID: 3, Brand: "Fiat", Model: "Argo"}}
	svc := service.NewWaitlistService(store, vehicles)

	entry, err := svc.Join(ctx, 20, 3, dates("2025-08-01", "2025-08-03"))
	require.NoError(t, err)
	assert.True(t, entry.IsActive)

	_, err = svc.Join(ctx, 20, 99, dates("2025-08-01", "2025-08-03"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Join(ctx, 20, 3, dates("2025-08-04", "2025-08-03"))
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)

	assert.ErrorIs(t, svc.Leave(ctx, 21, entry.ID, false), domain.ErrForbidden)
	require.NoError(t, svc.Leave(ctx, 20, entry.ID, false))

	mine, err := svc.ListForUser(ctx, 20)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestWaitlistService_AdminCanRemoveAnyEntry(t *testing.T) {
	ctx := context.Background()
	store := &memWaitlist{}
	svc := service.NewWaitlistService(store, staticVehicles{3: {ID: 3}})

	entry, err := svc.Join(ctx, 20, 3, dates("2025-08-01", "2025-08-03"))
	require.NoError(t, err)
	assert.NoError(t, svc.Leave(ctx, 1, entry.ID, true))
	assert.ErrorIs(t, svc.Leave(ctx, 1, entry.ID, true), domain.ErrNotFound)
}
