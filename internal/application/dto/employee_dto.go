package dto

import "time"

// CreateEmployeeRequest entrada para crear un empleado. Con IsManager el email
// identifica la cuenta que pasa a gestionar el salón.
type CreateEmployeeRequest struct {
	SalonID      string `json:"salon_id" validate:"required,uuid"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Specialty    string `json:"specialty" validate:"required"`
	Availability string `json:"availability"`
	IsManager    bool   `json:"is_manager"`
	Email        string `json:"email" validate:"omitempty,email"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID           string    `json:"id"`
	SalonID      string    `json:"salon_id"`
	SalonName    string    `json:"salon_name,omitempty"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Specialty    string    `json:"specialty"`
	Availability string    `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateEmployeeResponse empleado creado y, si se designó, el manager asignado.
type CreateEmployeeResponse struct {
	Employee  EmployeeResponse `json:"employee"`
	ManagerID *string          `json:"manager_id,omitempty"`
}
