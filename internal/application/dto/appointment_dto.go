package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoPreference valor de employee_id para "sin preferencia".
const NoPreference = "no-preference"

// CreateAppointmentRequest entrada para crear una reserva.
type CreateAppointmentRequest struct {
	SalonID         string          `json:"salon_id" validate:"required,uuid"`
	EmployeeID      string          `json:"employee_id"`
	ClientName      string          `json:"client_name" validate:"required"`
	ClientEmail     string          `json:"client_email" validate:"omitempty,email"`
	ClientPhone     string          `json:"client_phone"`
	Service         string          `json:"service" validate:"required"`
	Price           decimal.Decimal `json:"price"`
	AppointmentTime time.Time       `json:"appointment_time" validate:"required"`
}

// UpdateAppointmentRequest edición de una cita (campos opcionales).
type UpdateAppointmentRequest struct {
	ClientName      *string          `json:"client_name"`
	ClientEmail     *string          `json:"client_email" validate:"omitempty,email"`
	ClientPhone     *string          `json:"client_phone"`
	Service         *string          `json:"service"`
	Price           *decimal.Decimal `json:"price"`
	AppointmentTime *time.Time       `json:"appointment_time"`
}

// AppointmentResponse salida de una cita.
type AppointmentResponse struct {
	ID              string          `json:"id"`
	SalonID         string          `json:"salon_id"`
	SalonName       string          `json:"salon_name,omitempty"`
	EmployeeID      *string         `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	ClientName      string          `json:"client_name"`
	ClientEmail     string          `json:"client_email"`
	ClientPhone     string          `json:"client_phone"`
	Service         string          `json:"service"`
	Price           decimal.Decimal `json:"price"`
	AppointmentTime time.Time       `json:"appointment_time"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateAppointmentResponse cita creada; ClientCreated indica si se dio de alta el cliente.
type CreateAppointmentResponse struct {
	Appointment   AppointmentResponse `json:"appointment"`
	ClientCreated bool                `json:"client_created"`
}

// BookingOptions datos de apoyo del formulario de reserva.
type BookingOptions struct {
	Salons    []SalonOption    `json:"salons"`
	Employees []EmployeeOption `json:"employees,omitempty"`
}

// EmployeeOption empleado seleccionable.
type EmployeeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
