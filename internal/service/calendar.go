package service

import (
	"context"
	"fmt"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

type calendarService struct {
	blockRepo repository.CalendarBlockRepository
}

func NewCalendarService(blockRepo repository.CalendarBlockRepository) CalendarService {
	return &calendarService{blockRepo: blockRepo}
}

// ReleaseBlocksForBooking removes every booking-sourced block tied to the
// booking. Calling it again for the same booking removes nothing.
func (s *calendarService) ReleaseBlocksForBooking(ctx context.Context, bookingID int32) (*domain.ReleaseResult, error) {
	logger.EnterMethod("calendarService.ReleaseBlocksForBooking", "bookingID", bookingID)

	n, err := s.blockRepo.DeleteByBooking(ctx, bookingID)
	if err != nil {
		err = domain.NewStorageError(fmt.Sprintf("delete blocks of booking %d", bookingID), err)
		logger.ExitMethodWithError("calendarService.ReleaseBlocksForBooking", err, "bookingID", bookingID)
		return nil, err
	}

	logger.ExitMethod("calendarService.ReleaseBlocksForBooking", "bookingID", bookingID, "removed", n)
	return &domain.ReleaseResult{BookingID: bookingID, RemovedBlockCount: n}, nil
}

func (s *calendarService) BlockDatesForBooking(ctx context.Context, b *domain.Booking) (bool, error) {
	if err := b.Validate(); err != nil {
		return false, err
	}
	created, err := s.blockRepo.CreateForBooking(ctx, domain.NewBookingBlock(b))
	if err != nil {
		return false, domain.NewStorageError(fmt.Sprintf("block dates of booking %d", b.ID), err)
	}
	if !created {
		logger.Debug("Booking already blocked on calendar", "bookingID", b.ID, "vehicleID", b.VehicleID)
	}
	return created, nil
}

func (s *calendarService) ListBlocks(ctx context.Context, vehicleID int32) ([]domain.CalendarBlock, error) {
	blocks, err := s.blockRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, storageErr("list calendar blocks", err)
	}
	return blocks, nil
}
