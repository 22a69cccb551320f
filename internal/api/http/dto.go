package http

import (
	"alugae-backend/internal/domain"
)

type notificationDTO struct {
	UserID       int32  `json:"userId"`
	UserName     string `json:"userName"`
	VehicleID    int32  `json:"vehicleId"`
	VehicleName  string `json:"vehicleName"`
	DesiredDates string `json:"desiredDates"`
}

type failureDTO struct {
	EntryID   int32  `json:"entryId"`
	UserID    int32  `json:"userId"`
	VehicleID int32  `json:"vehicleId"`
	Error     string `json:"error"`
}

type sweepErrorDTO struct {
	BookingID int32  `json:"bookingId"`
	VehicleID int32  `json:"vehicleId"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

// releaseExpiredResponse is the admin release manager payload.
type releaseExpiredResponse struct {
	SweepID        string            `json:"sweepId"`
	ReleasedBlocks int               `json:"releasedBlocks"`
	NotifiedUsers  int               `json:"notifiedUsers"`
	Notifications  []notificationDTO `json:"notifications"`
	Failures       []failureDTO      `json:"failures"`
	Errors         []sweepErrorDTO   `json:"errors"`
}

// autoReleaseResponse is the demo button payload.
type autoReleaseResponse struct {
	ReleasedCount int               `json:"releasedCount"`
	NotifiedCount int               `json:"notifiedCount"`
	Notifications []notificationDTO `json:"notifications"`
}

type sweepEventDTO struct {
	Type          string            `json:"type"`
	SweepID       string            `json:"sweepId"`
	ReleasedCount int               `json:"releasedCount"`
	NotifiedCount int               `json:"notifiedCount"`
	Notifications []notificationDTO `json:"notifications"`
	Errors        int               `json:"errors"`
	FinishedAt    string            `json:"finishedAt"`
}

type waitlistJoinRequest struct {
	DesiredStartDate string `json:"desiredStartDate"`
	DesiredEndDate   string `json:"desiredEndDate"`
}

type waitlistEntryDTO struct {
	ID               int32  `json:"id"`
	VehicleID        int32  `json:"vehicleId"`
	UserID           int32  `json:"userId"`
	DesiredStartDate string `json:"desiredStartDate"`
	DesiredEndDate   string `json:"desiredEndDate"`
	NotificationSent bool   `json:"notificationSent"`
	IsActive         bool   `json:"isActive"`
	CreatedAt        string `json:"createdAt"`
}

type calendarBlockDTO struct {
	ID        int32  `json:"id"`
	BookingID *int32 `json:"bookingId,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Source    string `json:"source"`
	Reason    string `json:"reason"`
}

type signatureRequest struct {
	Party string `json:"party"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type contractDTO struct {
	ID             int32  `json:"id"`
	BookingID      int32  `json:"bookingId"`
	ContractNumber string `json:"contractNumber"`
	Status         string `json:"status"`
	RenterSigned   bool   `json:"renterSigned"`
	OwnerSigned    bool   `json:"ownerSigned"`
}

type bookingDTO struct {
	ID            int32  `json:"id"`
	VehicleID     int32  `json:"vehicleId"`
	RenterID      int32  `json:"renterId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

func toNotificationDTOs(users []domain.NotifiedUser) []notificationDTO {
	out := make([]notificationDTO, 0, len(users))
	for _, u := range users {
		out = append(out, notificationDTO{
			UserID:       u.UserID,
			UserName:     u.UserName,
			VehicleID:    u.VehicleID,
			VehicleName:  u.VehicleName,
			DesiredDates: u.DesiredDates,
		})
	}
	return out
}

func toReleaseExpiredResponse(r *domain.SweepResult) releaseExpiredResponse {
	resp := releaseExpiredResponse{
		SweepID:        r.SweepID,
		ReleasedBlocks: r.ReleasedCount,
		NotifiedUsers:  r.NotifiedCount,
		Notifications:  toNotificationDTOs(r.Notifications),
		Failures:       make([]failureDTO, 0, len(r.Failures)),
		Errors:         make([]sweepErrorDTO, 0, len(r.Errors)),
	}
	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, failureDTO(f))
	}
	for _, e := range r.Errors {
		resp.Errors = append(resp.Errors, sweepErrorDTO(e))
	}
	return resp
}

func toAutoReleaseResponse(r *domain.SweepResult) autoReleaseResponse {
	return autoReleaseResponse{
		ReleasedCount: r.ReleasedCount,
		NotifiedCount: r.NotifiedCount,
		Notifications: toNotificationDTOs(r.Notifications),
	}
}

func toSweepEvent(r *domain.SweepResult) sweepEventDTO {
	return sweepEventDTO{
		Type:          "sweep_finished",
		SweepID:       r.SweepID,
		ReleasedCount: r.ReleasedCount,
		NotifiedCount: r.NotifiedCount,
		Notifications: toNotificationDTOs(r.Notifications),
		Errors:        len(r.Errors),
		FinishedAt:    r.FinishedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toWaitlistEntryDTO(e *domain.WaitlistEntry) waitlistEntryDTO {
	return waitlistEntryDTO{
		ID:               e.ID,
		VehicleID:        e.VehicleID,
		UserID:           e.UserID,
		DesiredStartDate: e.DesiredStartDate.Format(domain.DateLayout),
		DesiredEndDate:   e.DesiredEndDate.Format(domain.DateLayout),
		NotificationSent: e.NotificationSent,
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedOn.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toCalendarBlockDTO(b *domain.CalendarBlock) calendarBlockDTO {
	return calendarBlockDTO{
		ID:        b.ID,
		BookingID: b.BookingID,
		StartDate: b.StartDate.Format(domain.DateLayout),
		EndDate:   b.EndDate.Format(domain.DateLayout),
		Source:    string(b.Source),
		Reason:    b.Reason,
	}
}

func toContractDTO(c *domain.Contract) contractDTO {
	return contractDTO{
		ID:             c.ID,
		BookingID:      c.BookingID,
		ContractNumber: c.ContractNumber,
		Status:         string(c.Status),
		RenterSigned:   c.RenterSigned,
		OwnerSigned:    c.OwnerSigned,
	}
}

func toBookingDTO(b *domain.Booking) bookingDTO {
	return bookingDTO{
		ID:            b.ID,
		VehicleID:     b.VehicleID,
		RenterID:      b.RenterID,
		StartDate:     b.StartDate.Format(domain.DateLayout),
		EndDate:       b.EndDate.Format(domain.DateLayout),
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
	}
}
