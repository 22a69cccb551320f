package domain

const NotificationTypeVehicleAvailable = "vehicle_available"

// Notification is an in-app message shown in the user's inbox.
type Notification struct {
	ID         int32             `json:"id"`
	UserID     int32             `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedOn  string            `json:"created_on"`
}

// AvailabilityNotice is what a transport delivers to one waitlisted user.
type AvailabilityNotice struct {
	User         *User
	Vehicle      *Vehicle
	DesiredDates DateRange
}
