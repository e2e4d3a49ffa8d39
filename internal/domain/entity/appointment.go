package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment cita reservada en un salón.
type Appointment struct {
	ID              string
	SalonID         string
	EmployeeID      *string // nil = sin preferencia
	OwnerID         string
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	Service         string
	Price           decimal.Decimal
	AppointmentTime time.Time
	CreatedAt       time.Time
	// Campos de join para listados.
	SalonName    string
	EmployeeName string
}

// Upcoming informa si la cita es en now o después.
func (a *Appointment) Upcoming(now time.Time) bool {
	return !a.AppointmentTime.Before(now)
}
