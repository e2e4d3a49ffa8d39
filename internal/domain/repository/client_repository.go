package repository

import (
	"context"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	// FindByContact busca por email (preferido) o, si no hay email, por teléfono.
	FindByContact(ctx context.Context, ownerID, email, phone string) (*entity.Client, error)
	// List clientes del owner con su número de citas, los más recientes primero.
	List(ctx context.Context, ownerID string) ([]*entity.Client, error)
	Delete(ctx context.Context, id, ownerID string) error
}
