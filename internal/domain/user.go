package domain

type User struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DeviceToken string `json:"-"`
	Role        string `json:"role"`
}

const (
	RoleAdmin  = "admin"
	RoleRenter = "renter"
	RoleOwner  = "owner"
)
