package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

type notifier struct {
	userRepo     repository.UserRepository
	waitlistRepo repository.WaitlistRepository
	transport    NoticeTransport
}

func NewNotifier(userRepo repository.UserRepository, waitlistRepo repository.WaitlistRepository, transport NoticeTransport) Notifier {
	return &notifier{userRepo: userRepo, waitlistRepo: waitlistRepo, transport: transport}
}

// NotifyWaitlist sends one availability notice per entry in arrival order,
// whatever order the caller passed. A failed entry does not stop the rest.
func (n *notifier) NotifyWaitlist(ctx context.Context, entries []domain.WaitlistEntry, vehicle *domain.Vehicle) *domain.NotificationResult {
	result := &domain.NotificationResult{
		NotifiedUsers: []domain.NotifiedUser{},
		Failures:      []domain.NotificationFailure{},
	}

	for _, entry := range domain.SortByArrival(entries) {
		notified, err := n.notifyEntry(ctx, entry, vehicle)
		if err != nil {
			logger.Warn("Waitlist notification failed", "entryID", entry.ID, "userID", entry.UserID, "vehicleID", entry.VehicleID, "error", err)
			result.Failures = append(result.Failures, domain.NotificationFailure{
				EntryID:   entry.ID,
				UserID:    entry.UserID,
				VehicleID: entry.VehicleID,
				Error:     err.Error(),
			})
			continue
		}
		result.NotifiedUsers = append(result.NotifiedUsers, *notified)
	}
	return result
}

func (n *notifier) notifyEntry(ctx context.Context, entry domain.WaitlistEntry, vehicle *domain.Vehicle) (*domain.NotifiedUser, error) {
	fail := func(err error) (*domain.NotifiedUser, error) {
		return nil, &domain.NotificationDeliveryError{EntryID: entry.ID, UserID: entry.UserID, Err: err}
	}

	if vehicle == nil {
		return fail(errors.New("vehicle unknown"))
	}
	if entry.VehicleID != vehicle.ID {
		return fail(fmt.Errorf("entry is for vehicle %d, not %d", entry.VehicleID, vehicle.ID))
	}

	user, err := n.userRepo.GetByID(ctx, entry.UserID)
	if err != nil {
		return fail(fmt.Errorf("lookup user: %w", err))
	}

	notice := &domain.AvailabilityNotice{User: user, Vehicle: vehicle, DesiredDates: entry.DesiredRange()}
	if err := n.transport.SendAvailabilityNotice(ctx, notice); err != nil {
		return fail(err)
	}

	if err := n.waitlistRepo.MarkNotified(ctx, entry.ID, time.Now()); err != nil {
		logger.Warn("Notice delivered but waitlist entry not marked", "entryID", entry.ID, "error", err)
	}

	return &domain.NotifiedUser{
		EntryID:      entry.ID,
		UserID:       user.ID,
		UserName:     user.Name,
		VehicleID:    vehicle.ID,
		VehicleName:  vehicle.DisplayName(),
		DesiredDates: entry.DesiredRange().String(),
	}, nil
}
