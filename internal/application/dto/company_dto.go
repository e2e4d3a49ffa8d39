package dto

import (
	"io"
	"time"
)

// RegisterCompanyRequest campos del formulario de registro de empresa.
type RegisterCompanyRequest struct {
	Name         string `json:"name" form:"name" validate:"required,min=1,max=200"`
	Phone        string `json:"phone" form:"phone"`
	ContactEmail string `json:"contact_email" form:"contact_email" validate:"omitempty,email"`
	WhatsAppURL  string `json:"whatsapp_url" form:"whatsapp_url" validate:"omitempty,url"`
}

// Upload archivo recibido en un formulario multipart.
type Upload struct {
	Filename string
	Body     io.Reader
}

// CompanySetupDefaults valores iniciales del formulario de registro de empresa.
type CompanySetupDefaults struct {
	ContactEmail string `json:"contact_email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
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

// WhatsAppRequest entrada para actualizar el enlace de WhatsApp; vacío lo elimina.
type WhatsAppRequest struct {
	WhatsAppURL string `json:"whatsapp_url" validate:"omitempty,url"`
}

// WhatsAppResponse enlace de WhatsApp de la empresa.
type WhatsAppResponse struct {
	CompanyID   string `json:"company_id"`
	WhatsAppURL string `json:"whatsapp_url"`
	Connected   bool   `json:"connected"`
}
