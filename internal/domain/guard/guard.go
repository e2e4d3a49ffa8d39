// Package guard define la política de acceso a las rutas del panel.
//
// Cada ruta declara un tipo de guard en la tabla Routes; Dispatch la localiza y
// Evaluate decide, a partir de la instantánea de autenticación, si se permite la
// navegación, si hay que redirigir o si todavía se está cargando el perfil.
// Todo es puro: no hay E/S ni estado global mutable.
package guard

import (
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// Kind tipo de guard aplicado a una ruta.
type Kind int

const (
	Public Kind = iota
	Protected
	CompanySetup
	Dashboard
	Manager
	AdminOrManager
)

func (k Kind) String() string {
	switch k {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case CompanySetup:
		return "company_setup"
	case Dashboard:
		return "dashboard"
	case Manager:
		return "manager"
	case AdminOrManager:
		return "admin_or_manager"
	default:
		return "unknown"
	}
}

// Outcome resultado de evaluar un guard.
type Outcome int

const (
	Allow Outcome = iota
	Redirect
	Loading
)

// Decision resultado de la evaluación. Target solo tiene sentido con Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
}

func allow() Decision { return Decision{Outcome: Allow} }
func loading() Decision { return Decision{Outcome: Loading} }
func redirect(to string) Decision { return Decision{Outcome: Redirect, Target: to} }

// Allowed atajo para Outcome == Allow.
func (d Decision) Allowed() bool { return d.Outcome == Allow }

// Evaluate aplica el guard kind sobre el estado s.
// Mientras s.Loading ningún guard no público decide: devuelve Loading.
func Evaluate(kind Kind, s entity.AuthState) Decision {
	if kind == Public {
		return allow()
	}
	if s.Loading {
		return loading()
	}
	if s.Anonymous() {
		return redirect(PathLogin)
	}

	switch kind {
	case Protected:
		return allow()

	case CompanySetup:
		if s.NeedsSetup() {
			return allow()
		}
		return redirect(PathDashboard)

	case Dashboard:
		// El manager se envía a su panel antes de mirar el alta de empresa: un manager
		// cuya empresa no se pudo cargar no debe acabar registrando una empresa nueva.
		if s.Profile.IsManager() {
			return redirect(PathManagerDashboard)
		}
		if s.NeedsSetup() {
			return redirect(PathCompanySetup)
		}
		return allow()

	case Manager:
		if s.Profile.IsManager() {
			return allow()
		}
		return redirect(PathDashboard)

	case AdminOrManager:
		if s.Profile.IsAdmin() || s.Profile.IsManager() {
			return allow()
		}
		if s.NeedsSetup() {
			return redirect(PathCompanySetup)
		}
		return redirect(PathDashboard)
	}

	return redirect(PathHome)
}
