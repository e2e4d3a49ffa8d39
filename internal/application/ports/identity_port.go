package ports

import (
	"context"

	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// IdentityProvider puerto de salida hacia el proveedor de autenticación: emite,
// valida y revoca sesiones. Los errores de credenciales son los de la familia
// AuthError de domain (ErrInvalidCredentials, ErrEmailAlreadyExists, ErrSessionExpired).
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*entity.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)
	// GetSession valida el token y devuelve la sesión viva.
	GetSession(ctx context.Context, accessToken string) (*entity.Session, error)
	// RefreshSession emite un token nuevo para la misma sesión.
	RefreshSession(ctx context.Context, accessToken string) (*entity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	// FindByEmail identidad registrada con ese email; (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)
}
