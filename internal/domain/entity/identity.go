package entity

import "time"

// Identity principal autenticado (usuario).
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	// NeedsCompanySetup marca transitoria de un registro reciente; verdadera hasta que
	// la resolución de perfil encuentra una empresa.
	NeedsCompanySetup bool      `json:"needs_company_setup,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Credential fila persistida de una identidad, con el hash bcrypt de la contraseña.
type Credential struct {
	Identity
	PasswordHash string `json:"-"`
	UpdatedAt    time.Time
}
