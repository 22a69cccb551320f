package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// AllBookingStatuses lists every status in lifecycle order.
func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusApproved,
		BookingStatusActive,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

var forwardTransitions = map[BookingStatus]BookingStatus{
	BookingStatusPending:  BookingStatusApproved,
	BookingStatusApproved: BookingStatusActive,
	BookingStatusActive:   BookingStatusCompleted,
}

// CanTransition checks the booking lifecycle: one step forward at a time,
// or cancellation from any non-terminal status.
func CanTransition(from, to BookingStatus) error {
	if from.Terminal() {
		return fmt.Errorf("%w: booking is already %s", ErrInvalidTransition, from)
	}
	if to == BookingStatusCancelled {
		return nil
	}
	if next, ok := forwardTransitions[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

type Booking struct {
	ID            int32         `json:"id"`
	VehicleID     int32         `json:"vehicle_id"`
	RenterID      int32         `json:"renter_id"`
	OwnerID       int32         `json:"owner_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}

// Range returns the booked dates as an inclusive range.
func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// Validate rejects records that cannot be reasoned about safely.
func (b *Booking) Validate() error {
	if b.VehicleID == 0 {
		return NewValidationError("booking", b.ID, "missing vehicle reference")
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return NewValidationError("booking", b.ID, "missing start or end date")
	}
	if !b.Range().Valid() {
		return NewValidationError("booking", b.ID, "start date is after end date")
	}
	if !b.Status.Valid() {
		return NewValidationError("booking", b.ID, fmt.Sprintf("unknown status %q", b.Status))
	}
	return nil
}
