package entity

import "time"

// Employee profesional que atiende en un salón.
type Employee struct {
	ID           string
	SalonID      string
	OwnerID      string
	Name         string
	Specialty    string
	Availability string
	CreatedAt    time.Time
	// SalonName se completa en listados (join con salons).
	SalonName string
}
