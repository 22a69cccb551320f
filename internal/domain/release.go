package domain

import "time"

// IsReleaseEligible decides whether the calendar block of a booking can be
// lifted by the auto-release sweep: the rental period must be over and the
// contract signed by both parties.
func IsReleaseEligible(b *Booking, c *Contract) bool {
	if b == nil {
		return false
	}
	switch b.Status {
	case BookingStatusCompleted:
		return c != nil && c.Status == ContractStatusSigned
	case BookingStatusPending, BookingStatusApproved, BookingStatusActive:
		return false
	case BookingStatusCancelled:
		// handled by the immediate release path
		return false
	default:
		return false
	}
}

// IsImmediateReleasable is the cancellation path. It does not look at the
// contract at all.
func IsImmediateReleasable(b *Booking) bool {
	return b != nil && b.Status == BookingStatusCancelled
}

type NotifiedUser struct {
	EntryID      int32  `json:"entry_id"`
	UserID       int32  `json:"user_id"`
	UserName     string `json:"user_name"`
	VehicleID    int32  `json:"vehicle_id"`
	VehicleName  string `json:"vehicle_name"`
	DesiredDates string `json:"desired_dates"`
}

type NotificationFailure struct {
	EntryID   int32  `json:"entry_id"`
	UserID    int32  `json:"user_id"`
	VehicleID int32  `json:"vehicle_id"`
	Error     string `json:"error"`
}

type NotificationResult struct {
	NotifiedUsers []NotifiedUser        `json:"notified_users"`
	Failures      []NotificationFailure `json:"failures"`
}

type SweepError struct {
	BookingID int32  `json:"booking_id"`
	VehicleID int32  `json:"vehicle_id"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

// SweepResult summarises one pass of the auto-release sweep.
type SweepResult struct {
	SweepID       string                `json:"sweep_id"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
	Scanned       int                   `json:"scanned"`
	ReleasedCount int                   `json:"released_count"`
	RemovedBlocks int64                 `json:"removed_blocks"`
	NotifiedCount int                   `json:"notified_count"`
	Notifications []NotifiedUser        `json:"notifications"`
	Failures      []NotificationFailure `json:"failures"`
	Errors        []SweepError          `json:"errors"`
}

const (
	ReleaseReasonCompleted = "completed"
	ReleaseReasonCancelled = "cancelled"
)

// ReleaseEvent is published after a booking's calendar block was removed.
type ReleaseEvent struct {
	SweepID       string    `json:"sweep_id"`
	BookingID     int32     `json:"booking_id"`
	VehicleID     int32     `json:"vehicle_id"`
	Reason        string    `json:"reason"`
	ReleasedDates DateRange `json:"released_dates"`
	RemovedBlocks int64     `json:"removed_blocks"`
	NotifiedUsers int       `json:"notified_users"`
	OccurredAt    time.Time `json:"occurred_at"`
}
