package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/fedrita-api/internal/application/dto"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

// ClientUseCase clientes finales de un owner.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Lookup busca un cliente del owner por email (preferido) o teléfono.
func (uc *ClientUseCase) Lookup(ctx context.Context, actor Actor, email, phone string) (*dto.ClientLookupResponse, error) {
	if err := actor.requireStaff(); err != nil {
		return nil, err
	}
	email, phone = textnorm.Email(email), textnorm.Phone(phone)
	if email == "" && phone == "" {
		return nil, domain.Invalid("email", "indica email o teléfono")
	}
	c, err := uc.repo.FindByContact(ctx, actor.OwnerID(), email, phone)
	if err != nil {
		return nil, domain.Lookup("buscar cliente", err)
	}
	if c == nil {
		return &dto.ClientLookupResponse{Found: false}, nil
	}
	out := toClientResponse(c)
	return &dto.ClientLookupResponse{Found: true, Client: &out}, nil
}

// List clientes del owner del actor con su número de citas.
func (uc *ClientUseCase) List(ctx context.Context, actor Actor) ([]dto.ClientResponse, error) {
	if err := actor.requireStaff(); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, actor.OwnerID())
	if err != nil {
		return nil, domain.Lookup("listar clientes", err)
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toClientResponse(c))
	}
	return items, nil
}

// Delete borra un cliente del owner del actor.
func (uc *ClientUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	if err := actor.requireStaff(); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id, actor.OwnerID()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.Lookup("borrar cliente", err)
	}
	return nil
}
