package domain

import "fmt"

type Vehicle struct {
	ID      int32  `json:"id"`
	OwnerID int32  `json:"owner_id"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    int32  `json:"year"`
}

// DisplayName is how the vehicle is shown to users, e.g. "Fiat Argo".
func (v *Vehicle) DisplayName() string {
	if v.Brand == "" && v.Model == "" {
		return fmt.Sprintf("Veículo #%d", v.ID)
	}
	if v.Model == "" {
		return v.Brand
	}
	if v.Brand == "" {
		return v.Model
	}
	return v.Brand + " " + v.Model
}
