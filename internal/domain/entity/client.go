package entity

import "time"

// Client cliente final de los salones de un owner.
type Client struct {
	ID                 string
	OwnerID            string
	Name               string
	Email              string
	Phone              string
	FirstAppointmentID *string
	CreatedAt          time.Time
	// AppointmentsCount se completa en listados.
	AppointmentsCount int
}
