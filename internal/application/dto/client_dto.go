package dto

import "time"

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	AppointmentsCount int       `json:"appointments_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// ClientLookupResponse resultado de buscar un cliente por email o teléfono.
type ClientLookupResponse struct {
	Found  bool            `json:"found"`
	Client *ClientResponse `json:"client,omitempty"`
}
