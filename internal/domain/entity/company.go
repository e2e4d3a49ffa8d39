package entity

import "time"

// Company organización/tenant; la posee exactamente una identidad admin.
type Company struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	ContactEmail string    `json:"contact_email"`
	WhatsAppURL  string    `json:"whatsapp_url"`
	LogoURL      string    `json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
