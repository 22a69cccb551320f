package domain

import (
	"sort"
	"time"
)

// WaitlistEntry is a user's interest in a vehicle for dates it was blocked.
type WaitlistEntry struct {
	ID               int32      `json:"id"`
	VehicleID        int32      `json:"vehicle_id"`
	UserID           int32      `json:"user_id"`
	DesiredStartDate time.Time  `json:"desired_start_date"`
	DesiredEndDate   time.Time  `json:"desired_end_date"`
	NotificationSent bool       `json:"notification_sent"`
	NotifiedAt       *time.Time `json:"notified_at,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedOn        time.Time  `json:"created_on"`
}

func (w *WaitlistEntry) DesiredRange() DateRange {
	return DateRange{Start: w.DesiredStartDate, End: w.DesiredEndDate}
}

// SortByArrival returns a copy of entries in first-come-first-served order:
// creation time ascending, ties broken by id.
func SortByArrival(entries []WaitlistEntry) []WaitlistEntry {
	sorted := make([]WaitlistEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedOn.Equal(sorted[j].CreatedOn) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedOn.Before(sorted[j].CreatedOn)
	})
	return sorted
}
