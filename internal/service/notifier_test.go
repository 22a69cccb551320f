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

var (
	argo  = &domain.Vehicle{ID: 3, OwnerID: 11, Brand: "Fiat", Model: "Argo", Year: 2022}
	users = staticUsers{
		21: {ID: 21, Name: "Ana"},
		22: {ID: 22, Name: "Bruno"},
		23: {ID: 23, Name: "Carla"},
	}
)

func threeEntries() []domain.WaitlistEntry {
	t0 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	return []domain.WaitlistEntry{
		{ID: 12, VehicleID: 3, UserID: 22, DesiredStartDate: day("2025-08-02"), DesiredEndDate: day("2025-08-04"), IsActive: true, CreatedOn: t0.Add(2 * time.Minute)},
		{ID: 13, VehicleID: 3, UserID: 23, DesiredStartDate: day("2025-08-01"), DesiredEndDate: day("2025-08-01"), IsActive: true, CreatedOn: t0.Add(3 * time.Minute)},
		{ID: 11, VehicleID: 3, UserID: 21, DesiredStartDate: day("2025-08-01"), DesiredEndDate: day("2025-08-03"), IsActive: true, CreatedOn: t0.Add(1 * time.Minute)},
	}
}

func TestNotifier_DispatchesInArrivalOrder(t *testing.T) {
	ctx := context.Background()
	waitlist := new(MockWaitlistRepo)
	waitlist.On("MarkNotified", ctx, mock.Anything, mock.AnythingOfType("time.Time")).Return(nil)
	transport := &recordingTransport{}
	n := service.NewNotifier(users, waitlist, transport)

	result := n.NotifyWaitlist(ctx, threeEntries(), argo)

	assert.Equal(t, []int32{21, 22, 23}, transport.sent)
	require.Len(t, result.NotifiedUsers, 3)
	assert.Equal(t, "Ana", result.NotifiedUsers[0].UserName)
	assert.Equal(t, "Bruno", result.NotifiedUsers[1].UserName)
	assert.Equal(t, "Carla", result.NotifiedUsers[2].UserName)
	assert.Equal(t, "Fiat Argo", result.NotifiedUsers[0].VehicleName)
	assert.Equal(t, "2025-08-01 - 2025-08-03", result.NotifiedUsers[0].DesiredDates)
	assert.Empty(t, result.Failures)
	waitlist.AssertNumberOfCalls(t, "MarkNotified", 3)
}

func TestNotifier_IsolatesFailures(t *testing.T) {
	ctx := context.Background()
	waitlist := new(MockWaitlistRepo)
	waitlist.On("MarkNotified", ctx, mock.Anything, mock.Anything).Return(nil)
	transport := &recordingTransport{failOn: map[int32]error{22: errors.New("smtp: mailbox unavailable")}}
	n := service.NewNotifier(users, waitlist, transport)

	result := n.NotifyWaitlist(ctx, threeEntries(), argo)

	require.Len(t, result.NotifiedUsers, 2)
	assert.Equal(t, int32(21), result.NotifiedUsers[0].UserID)
	assert.Equal(t, int32(23), result.NotifiedUsers[1].UserID)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, int32(22), result.Failures[0].UserID)
	assert.Equal(t, int32(12), result.Failures[0].EntryID)
	assert.Contains(t, result.Failures[0].Error, "mailbox unavailable")
	waitlist.AssertNotCalled(t, "MarkNotified", ctx, int32(12), mock.Anything)
}

func TestNotifier_UnknownUserIsAFailure(t *testing.T) {
	ctx := context.Background()
	waitlist := new(MockWaitlistRepo)
	waitlist.On("MarkNotified", ctx, mock.Anything, mock.Anything).Return(nil)
	transport := &recordingTransport{}
	n := service.NewNotifier(staticUsers{21: {ID: 21, Name: "Ana"}}, waitlist, transport)

	result := n.NotifyWaitlist(ctx, threeEntries(), argo)

	assert.Len(t, result.NotifiedUsers, 1)
	assert.Len(t, result.Failures, 2)
	assert.Equal(t, []int32{21}, transport.sent)
}

func TestNotifier_MarkFailureStillCountsAsNotified(t *testing.T) {
	ctx := context.Background()
	waitlist := new(MockWaitlistRepo)
	waitlist.On("MarkNotified", ctx, mock.Anything, mock.Anything).Return(errors.New("read-only transaction"))
	n := service.NewNotifier(users, waitlist, &recordingTransport{})

	result := n.NotifyWaitlist(ctx, threeEntries()[:1], argo)
	assert.Len(t, result.NotifiedUsers, 1)
	assert.Empty(t, result.Failures)
}

func TestNotifier_EntryForOtherVehicle(t *testing.T) {
	ctx := context.Background()
	transport := &recordingTransport{}
	n := service.NewNotifier(users, new(MockWaitlistRepo), transport)

	entries := threeEntries()[:1]
	entries[0].VehicleID = 4
	result := n.NotifyWaitlist(ctx, entries, argo)
	assert.Empty(t, result.NotifiedUsers)
	assert.Len(t, result.Failures, 1)
	assert.Empty(t, transport.sent)

	result = n.NotifyWaitlist(ctx, threeEntries(), nil)
	assert.Len(t, result.Failures, 3)
}

func TestNotifier_EmptyInput(t *testing.T) {
	n := service.NewNotifier(users, new(MockWaitlistRepo), &recordingTransport{})
	result := n.NotifyWaitlist(context.Background(), nil, argo)
	assert.NotNil(t, result.NotifiedUsers)
	assert.NotNil(t, result.Failures)
	assert.Empty(t, result.NotifiedUsers)
}
