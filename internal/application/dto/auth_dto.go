package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada para registro: confirmación de contraseña y aceptación de términos.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	AcceptTerms     bool   `json:"accept_terms"`
}

// IdentityResponse identidad autenticada.
type IdentityResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	NeedsCompanySetup bool      `json:"needs_company_setup"`
	CreatedAt         time.Time `json:"created_at"`
}

// SessionResponse instantánea del contexto de auth del cliente (GET /session).
type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Loading       bool              `json:"loading"`
	Identity      *IdentityResponse `json:"identity,omitempty"`
	Role          string            `json:"role"`
	Company       *CompanyResponse  `json:"company,omitempty"`
	ManagedSalon  *SalonResponse    `json:"managed_salon,omitempty"`
	NeedsSetup    bool              `json:"needs_setup"`
	// CompanyHint empresa de una sesión anterior, solo para mostrar mientras carga.
	CompanyHint *CompanyResponse `json:"company_hint,omitempty"`
	// Next ruta sugerida tras login/registro.
	Next string `json:"next,omitempty"`
}
