package entity

// AuthState instantánea inmutable del contexto de autenticación de un cliente.
type AuthState struct {
	Identity *Identity
	Profile  Profile
	Loading  bool
	// CompanyHint empresa cacheada de una sesión anterior, solo para mostrar mientras
	// se resuelve el perfil. Los guards no la consideran.
	CompanyHint *Company
}

// Anonymous sin identidad.
func (s AuthState) Anonymous() bool { return s.Identity == nil }

// Company atajo a Profile.Company().
func (s AuthState) Company() *Company { return s.Profile.Company() }

// ManagedSalon atajo a Profile.ManagedSalon().
func (s AuthState) ManagedSalon() *Salon { return s.Profile.ManagedSalon() }

// Role atajo a Profile.Role().
func (s AuthState) Role() Role { return s.Profile.Role() }

// NeedsSetup la identidad todavía debe registrar su empresa.
// La marca de registro reciente solo es verdadera mientras no haya empresa, y sin
// marca la falta de empresa basta: en ambos casos decide la ausencia de empresa.
func (s AuthState) NeedsSetup() bool {
	return s.Identity != nil && s.Company() == nil
}
