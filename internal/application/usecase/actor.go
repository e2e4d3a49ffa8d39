package usecase

import (
	"context"

	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
)

// Actor quien ejecuta un caso de uso, derivado del estado de auth de su cliente.
type Actor struct {
	IdentityID string
	Email      string
	Role       entity.Role
	Company    *entity.Company
	Salon      *entity.Salon // salón gestionado (managers)
}

// ActorFrom construye el Actor de state; ErrUnauthorized si no hay identidad.
func ActorFrom(state entity.AuthState) (Actor, error) {
	if state.Identity == nil {
		return Actor{}, domain.ErrUnauthorized
	}
	return Actor{
		IdentityID: state.Identity.ID,
		Email:      state.Identity.Email,
		Role:       state.Role(),
		Company:    state.Company(),
		Salon:      state.ManagedSalon(),
	}, nil
}

func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin && a.Company != nil }
func (a Actor) IsManager() bool { return a.Role == entity.RoleManager && a.Salon != nil }

// Scope filas visibles: las del owner para un admin, las del salón para un manager.
func (a Actor) Scope() repository.Scope {
	switch {
	case a.IsAdmin():
		return repository.OwnerScope(a.IdentityID)
	case a.IsManager():
		return repository.SalonScope(a.Salon.ID)
	}
	return repository.Scope{}
}

// OwnerID dueño de los registros que crea el actor: él mismo o el dueño de su salón.
func (a Actor) OwnerID() string {
	switch {
	case a.IsAdmin():
		return a.IdentityID
	case a.IsManager():
		return a.Salon.OwnerID
	}
	return ""
}

func (a Actor) requireAdmin() error {
	if !a.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func (a Actor) requireManager() error {
	if !a.IsManager() {
		return domain.ErrForbidden
	}
	return nil
}

func (a Actor) requireStaff() error {
	if !a.IsAdmin() && !a.IsManager() {
		return domain.ErrForbidden
	}
	return nil
}

// accessibleSalon carga salonID y verifica que el actor opere sobre él: un admin sobre
// los salones de su empresa, un manager solo sobre el suyo. salonID vacío elige el
// salón del manager.
func accessibleSalon(ctx context.Context, salons repository.SalonRepository, a Actor, salonID string) (*entity.Salon, error) {
	if a.IsManager() {
		if salonID != "" && salonID != a.Salon.ID {
			return nil, domain.ErrForbidden
		}
		s := *a.Salon
		return &s, nil
	}
	if err := a.requireAdmin(); err != nil {
		return nil, err
	}
	if salonID == "" {
		return nil, domain.Invalid("salon_id", "selecciona un salón")
	}
	salon, err := salons.GetByID(ctx, salonID)
	if err != nil {
		return nil, domain.Lookup("buscar salón", err)
	}
	if salon == nil {
		return nil, domain.ErrNotFound
	}
	if salon.CompanyID != a.Company.ID {
		return nil, domain.ErrForbidden
	}
	return salon, nil
}
