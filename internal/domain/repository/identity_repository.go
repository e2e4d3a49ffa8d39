package repository

import (
	"context"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// IdentityRepository puerto de persistencia de identidades y sus credenciales.
// Los métodos de búsqueda devuelven (nil, nil) si no hay coincidencia.
type IdentityRepository interface {
	Create(ctx context.Context, cred *entity.Credential) error
	FindByID(ctx context.Context, id string) (*entity.Credential, error)
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)
}
