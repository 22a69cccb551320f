package service

import (
	"context"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

type waitlistService struct {
	waitlistRepo repository.WaitlistRepository
	vehicleRepo  repository.VehicleRepository
}

func NewWaitlistService(waitlistRepo repository.WaitlistRepository, vehicleRepo repository.VehicleRepository) WaitlistService {
	return &waitlistService{waitlistRepo: waitlistRepo, vehicleRepo: vehicleRepo}
}

// GetWaitlistForVehicle returns the users still waiting for dates that
// overlap the released range, first come first served.
func (s *waitlistService) GetWaitlistForVehicle(ctx context.Context, vehicleID int32, released domain.DateRange) ([]domain.WaitlistEntry, error) {
	if !released.Valid() {
		return nil, domain.NewValidationError("released range", 0, released.String())
	}

	entries, err := s.waitlistRepo.ListPending(ctx, vehicleID, released)
	if err != nil {
		return nil, storageErr("list waitlist", err)
	}

	waiting := make([]domain.WaitlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.VehicleID != vehicleID || !e.IsActive || e.NotificationSent {
			continue
		}
		if !e.DesiredRange().Overlaps(released) {
			continue
		}
		waiting = append(waiting, e)
	}
	return domain.SortByArrival(waiting), nil
}

func (s *waitlistService) Join(ctx context.Context, userID, vehicleID int32, desired domain.DateRange) (*domain.WaitlistEntry, error) {
	if !desired.Valid() {
		return nil, domain.NewValidationError("waitlist entry", 0, "desired start date is after end date")
	}
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		return nil, storageErr("get vehicle", err)
	}

	entry := &domain.WaitlistEntry{
		VehicleID:        vehicleID,
		UserID:           userID,
		DesiredStartDate: desired.Start,
		DesiredEndDate:   desired.End,
	}
	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		return nil, storageErr("create waitlist entry", err)
	}
	logger.Info("User joined waiting queue", "userID", userID, "vehicleID", vehicleID, "entryID", entry.ID, "desired", desired.String())
	return entry, nil
}

func (s *waitlistService) Leave(ctx context.Context, userID, entryID int32, isAdmin bool) error {
	entry, err := s.waitlistRepo.GetByID(ctx, entryID)
	if err != nil {
		return storageErr("get waitlist entry", err)
	}
	if entry.UserID != userID && !isAdmin {
		return domain.ErrForbidden
	}
	if err := s.waitlistRepo.Deactivate(ctx, entryID); err != nil {
		return storageErr("deactivate waitlist entry", err)
	}
	return nil
}

func (s *waitlistService) ListForUser(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error) {
	entries, err := s.waitlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("list user waitlist", err)
	}
	return entries, nil
}
