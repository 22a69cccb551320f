package service

import (
	"context"
	"errors"
	"time"

	"alugae-backend/internal/domain"
	"alugae-backend/internal/logger"
	"alugae-backend/internal/repository"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	contractRepo repository.ContractRepository
	calendar     CalendarService
	release      ReleaseService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	contractRepo repository.ContractRepository,
	calendar CalendarService,
	release ReleaseService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		contractRepo: contractRepo,
		calendar:     calendar,
		release:      release,
	}
}

// ConfirmPayment handles the payment webhook: the booking is approved, its
// dates are blocked and a draft contract is issued. Replays are harmless.
func (s *bookingService) ConfirmPayment(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.ConfirmPayment", "bookingID", bookingID)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("bookingService.ConfirmPayment", err, "bookingID", bookingID)
		return nil, storageErr("get booking", err)
	}

	if b.Status != domain.BookingStatusApproved || b.PaymentStatus != domain.PaymentStatusPaid {
		if err := domain.CanTransition(b.Status, domain.BookingStatusApproved); err != nil {
			logger.ExitMethodWithError("bookingService.ConfirmPayment", err, "bookingID", bookingID)
			return nil, err
		}
		b.Status = domain.BookingStatusApproved
		b.PaymentStatus = domain.PaymentStatusPaid
		if err := s.bookingRepo.Update(ctx, b); err != nil {
			return nil, storageErr("update booking", err)
		}
	}

	if _, err := s.calendar.BlockDatesForBooking(ctx, b); err != nil {
		logger.ExitMethodWithError("bookingService.ConfirmPayment", err, "bookingID", bookingID)
		return nil, err
	}

	if _, err := s.contractRepo.GetByBookingID(ctx, b.ID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, storageErr("get contract", err)
		}
		err := s.contractRepo.Create(ctx, domain.NewDraftContract(b.ID, time.Now()))
		if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, storageErr("create contract", err)
		}
	}

	logger.ExitMethod("bookingService.ConfirmPayment", "bookingID", bookingID, "status", b.Status)
	return b, nil
}

func (s *bookingService) StartRental(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storageErr("get booking", err)
	}
	if err := domain.CanTransition(b.Status, domain.BookingStatusActive); err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatusActive
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, storageErr("update booking", err)
	}
	return b, nil
}

// CompleteExpiredBookings completes active bookings whose last day is
// before today.
func (s *bookingService) CompleteExpiredBookings(ctx context.Context, today time.Time) ([]domain.Booking, error) {
	done, err := s.bookingRepo.CompleteEndedBefore(ctx, domain.CalendarDate(today))
	if err != nil {
		return nil, domain.NewStorageError("complete expired bookings", err)
	}
	logger.Info("Expired bookings completed", "count", len(done), "today", today.Format(domain.DateLayout))
	return done, nil
}

// CancelBooking cancels, refunds a paid booking and frees its dates at once.
// A failed release is logged and the cancellation stands; the blocks stay
// behind and the next auto-release sweep frees them.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID int32, reason string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CancelBooking", "bookingID", bookingID, "reason", reason)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CancelBooking", err, "bookingID", bookingID)
		return nil, storageErr("get booking", err)
	}
	if err := domain.CanTransition(b.Status, domain.BookingStatusCancelled); err != nil {
		logger.ExitMethodWithError("bookingService.CancelBooking", err, "bookingID", bookingID)
		return nil, err
	}

	b.Status = domain.BookingStatusCancelled
	if b.PaymentStatus == domain.PaymentStatusPaid {
		b.PaymentStatus = domain.PaymentStatusRefunded
	}
	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, storageErr("update booking", err)
	}

	if _, err := s.release.ReleaseCancelled(ctx, b); err != nil {
		logger.Warn("Cancelled booking dates not released", "bookingID", b.ID, "vehicleID", b.VehicleID, "error", err)
	}

	logger.ExitMethod("bookingService.CancelBooking", "bookingID", bookingID)
	return b, nil
}
