package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

// EmployeeUseCase alta, listado y baja de empleados; designación de managers.
type EmployeeUseCase struct {
	tx         repository.TxRunner
	salons     repository.SalonRepository
	employees  repository.EmployeeRepository
	identities ports.IdentityProvider
	log        zerolog.Logger
	now        func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	tx repository.TxRunner,
	salons repository.SalonRepository,
	employees repository.EmployeeRepository,
	identities ports.IdentityProvider,
	log zerolog.Logger,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		tx:         tx,
		salons:     salons,
		employees:  employees,
		identities: identities,
		log:        log,
		now:        time.Now,
	}
}

// Create da de alta un empleado. Con IsManager la cuenta registrada con in.Email pasa
// a gestionar el salón en la misma transacción: o se aplican ambos cambios o ninguno.
// Solo un admin puede designar managers.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor Actor, in dto.CreateEmployeeRequest) (*dto.CreateEmployeeResponse, error) {
	if err := actor.requireStaff(); err != nil {
		return nil, err
	}
	name := textnorm.Name(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre del empleado es obligatorio")
	}
	specialty := strings.TrimSpace(in.Specialty)
	if specialty == "" {
		return nil, domain.Invalid("specialty", "la especialidad es obligatoria")
	}
	if in.IsManager {
		if !actor.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		if strings.TrimSpace(in.Email) == "" {
			return nil, domain.Invalid("email", "para designar un manager se necesita su email")
		}
	}

	salon, err := accessibleSalon(ctx, uc.salons, actor, in.SalonID)
	if err != nil {
		return nil, err
	}

	var managerID *string
	if in.IsManager {
		identity, err := uc.identities.FindByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if identity == nil {
			return nil, domain.ErrManagerNotFound
		}
		managerID = &identity.ID
	}

	employee := &entity.Employee{
		ID:           uuid.New().String(),
		SalonID:      salon.ID,
		OwnerID:      actor.OwnerID(),
		Name:         name,
		Specialty:    specialty,
		Availability: strings.TrimSpace(in.Availability),
		CreatedAt:    uc.now(),
		SalonName:    salon.Name,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Employees.Create(ctx, employee); err != nil {
			return err
		}
		if managerID != nil {
			return r.Salons.SetManager(ctx, salon.ID, *managerID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Lookup("crear empleado", err)
	}
	if managerID != nil {
		uc.log.Info().Str("salon_id", salon.ID).Str("manager_id", *managerID).Msg("manager designado")
	}
	return &dto.CreateEmployeeResponse{Employee: toEmployeeResponse(employee), ManagerID: managerID}, nil
}

// List empleados visibles para el actor (owner o salón) con el nombre de su salón.
func (uc *EmployeeUseCase) List(ctx context.Context, actor Actor) ([]dto.EmployeeResponse, error) {
	if err := actor.requireStaff(); err != nil {
		return nil, err
	}
	return uc.list(ctx, actor.Scope())
}

// Options empleados de un salón para el formulario de reserva.
func (uc *EmployeeUseCase) Options(ctx context.Context, actor Actor, salonID string) ([]dto.EmployeeOption, error) {
	salon, err := accessibleSalon(ctx, uc.salons, actor, salonID)
	if err != nil {
		return nil, err
	}
	list, err := uc.employees.List(ctx, repository.SalonScope(salon.ID))
	if err != nil {
		return nil, domain.Lookup("listar empleados", err)
	}
	opts := make([]dto.EmployeeOption, 0, len(list))
	for _, e := range list {
		opts = append(opts, dto.EmployeeOption{ID: e.ID, Name: e.Name})
	}
	return opts, nil
}

// Delete borra un empleado visible para el actor.
func (uc *EmployeeUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.requireStaff(); err != nil {
		return err
	}
	if err := uc.employees.Delete(ctx, id, actor.Scope()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.Lookup("borrar empleado", err)
	}
	return nil
}

func (uc *EmployeeUseCase) list(ctx context.Context, scope repository.Scope) ([]dto.EmployeeResponse, error) {
	list, err := uc.employees.List(ctx, scope)
	if err != nil {
		return nil, domain.Lookup("listar empleados", err)
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toEmployeeResponse(e))
	}
	return items, nil
}
