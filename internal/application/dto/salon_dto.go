package dto

import "time"

// CreateSalonRequest entrada para crear un salón.
type CreateSalonRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Address      string `json:"address" validate:"required"`
	Phone        string `json:"phone"`
	OpeningHours string `json:"opening_hours"`
}

// SalonResponse salida de un salón.
type SalonResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	OwnerID      string    `json:"owner_id"`
	ManagerID    *string   `json:"manager_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	OpeningHours string    `json:"opening_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

// SalonOption salón seleccionable en formularios.
type SalonOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
