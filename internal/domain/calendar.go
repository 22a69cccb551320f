package domain

import (
	"fmt"
	"time"
)

type BlockSource string

const (
	BlockSourceBooking BlockSource = "booking"
	BlockSourceManual  BlockSource = "manual"
)

// CalendarBlock marks a vehicle unavailable for a range of dates.
type CalendarBlock struct {
	ID        int32       `json:"id"`
	VehicleID int32       `json:"vehicle_id"`
	BookingID *int32      `json:"booking_id,omitempty"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Source    BlockSource `json:"source"`
	Reason    string      `json:"reason"`
	CreatedOn time.Time   `json:"created_on"`
}

// NewBookingBlock mirrors an approved booking's dates on the vehicle calendar.
func NewBookingBlock(b *Booking) *CalendarBlock {
	id := b.ID
	return &CalendarBlock{
		VehicleID: b.VehicleID,
		BookingID: &id,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Source:    BlockSourceBooking,
		Reason:    fmt.Sprintf("Reservado - Booking #%d", b.ID),
	}
}

func (c *CalendarBlock) Range() DateRange {
	return DateRange{Start: c.StartDate, End: c.EndDate}
}

type ReleaseResult struct {
	BookingID         int32 `json:"booking_id"`
	RemovedBlockCount int64 `json:"removed_block_count"`
}
