package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

// SalonUseCase casos de uso de salones de una empresa.
type SalonUseCase struct {
	repo repository.SalonRepository
	now  func() time.Time
}

// NewSalonUseCase construye el caso de uso.
func NewSalonUseCase(repo repository.SalonRepository) *SalonUseCase {
	return &SalonUseCase{repo: repo, now: time.Now}
}

// Create crea un salón en la empresa del admin.
func (uc *SalonUseCase) Create(ctx context.Context, actor Actor, in dto.CreateSalonRequest) (*dto.SalonResponse, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		return nil, domain.Invalid("name", "el nombre del salón es obligatorio")
	}
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, domain.Invalid("address", "la dirección es obligatoria")
	}
	salon := &entity.Salon{
		ID:           uuid.New().String(),
		CompanyID:    actor.Company.ID,
		OwnerID:      actor.IdentityID,
		Name:         name,
		Address:      address,
		Phone:        textnorm.Phone(in.Phone),
		OpeningHours: strings.TrimSpace(in.OpeningHours),
		CreatedAt:    uc.now(),
	}
	if err := uc.repo.Create(ctx, salon); err != nil {
		return nil, domain.Lookup("crear salón", err)
	}
	return ToSalonResponse(salon), nil
}

// List salones de la empresa del admin, los más recientes primero.
func (uc *SalonUseCase) List(ctx context.Context, actor Actor) ([]dto.SalonResponse, error) {
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, actor.Company.ID)
	if err != nil {
		return nil, domain.Lookup("listar salones", err)
	}
	items := make([]dto.SalonResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *ToSalonResponse(s))
	}
	return items, nil
}

// Options salones seleccionables en formularios: los de la empresa para un admin,
// solo el gestionado para un manager.
func (uc *SalonUseCase) Options(ctx context.Context, actor Actor) ([]dto.SalonOption, error) {
	if actor.IsManager() {
		return []dto.SalonOption{{ID: actor.Salon.ID, Name: actor.Salon.Name}}, nil
	}
	if err := actor.requireAdmin(); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, actor.Company.ID)
	if err != nil {
		return nil, domain.Lookup("listar salones", err)
	}
	opts := make([]dto.SalonOption, 0, len(list))
	for _, s := range list {
		opts = append(opts, dto.SalonOption{ID: s.ID, Name: s.Name})
	}
	return opts, nil
}

// Delete borra un salón de la empresa del admin.
func (uc *SalonUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.requireAdmin(); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id, actor.Company.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.Lookup("borrar salón", err)
	}
	return nil
}
