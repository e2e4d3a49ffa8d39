package auth

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/pkg/jwt"
	"github.com/jhoicas/fedrita-api/pkg/textnorm"
)

// MinPasswordLength longitud mínima aceptada al registrarse.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret   string
	Lifetime time.Duration
	Issuer   string
}

// Asegura que AuthUseCase implementa el proveedor de identidad.
var _ ports.IdentityProvider = (*AuthUseCase)(nil)

// AuthUseCase proveedor de identidad propio: registro y login con bcrypt, sesiones
// como JWT firmados y revocación por id de sesión.
type AuthUseCase struct {
	identities repository.IdentityRepository
	revoked    ports.RevocationStore
	jwtCfg     JWTConfig
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identities repository.IdentityRepository, revoked ports.RevocationStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{identities: identities, revoked: revoked, jwtCfg: jwtCfg, now: time.Now}
}

// SignUp crea la identidad y abre su primera sesión. ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) SignUp(ctx context.Context, email, password string) (*entity.Session, error) {
	email = textnorm.Email(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, domain.Invalid("email", "email inválido")
	}
	if len(password) < MinPasswordLength {
		return nil, domain.Invalid("password", "la contraseña debe tener al menos 6 caracteres")
	}

	existing, err := uc.identities.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Lookup("buscar identidad", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	cred := &entity.Credential{
		Identity: entity.Identity{
			ID:        uuid.New().String(),
			Email:     email,
			CreatedAt: now,
		},
		PasswordHash: string(hash),
		UpdatedAt:    now,
	}
	if err := uc.identities.Create(ctx, cred); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, domain.Lookup("crear identidad", err)
	}
	return uc.issue(cred.Identity, uuid.New().String())
}

// SignInWithPassword verifica email/password y abre una sesión.
func (uc *AuthUseCase) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	cred, err := uc.identities.FindByEmail(ctx, textnorm.Email(email))
	if err != nil {
		return nil, domain.Lookup("buscar identidad", err)
	}
	if cred == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issue(cred.Identity, uuid.New().String())
}

// GetSession valida el token: firma, expiración, revocación y existencia de la identidad.
func (uc *AuthUseCase) GetSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.revoked.IsRevoked(ctx, claims.SessionID)
	if err != nil {
		return nil, domain.Lookup("consultar revocación", err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	cred, err := uc.identities.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.Lookup("buscar identidad", err)
	}
	if cred == nil {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Session{
		ID:          claims.SessionID,
		AccessToken: accessToken,
		ExpiresAt:   claims.ExpiresAt.Time,
		Identity:    cred.Identity,
	}, nil
}

// RefreshSession emite un token nuevo para la misma sesión.
func (uc *AuthUseCase) RefreshSession(ctx context.Context, accessToken string) (*entity.Session, error) {
	sess, err := uc.GetSession(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return uc.issue(sess.Identity, sess.ID)
}

// SignOut revoca la sesión del token hasta su expiración. Un token ya expirado no
// necesita revocarse.
func (uc *AuthUseCase) SignOut(ctx context.Context, accessToken string) error {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil
		}
		return domain.ErrUnauthorized
	}
	ttl := claims.ExpiresAt.Time.Sub(uc.now())
	if err := uc.revoked.Revoke(ctx, claims.SessionID, ttl); err != nil {
		return domain.Lookup("revocar sesión", err)
	}
	return nil
}

// FindByEmail identidad registrada con ese email; (nil, nil) si no existe.
func (uc *AuthUseCase) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	cred, err := uc.identities.FindByEmail(ctx, textnorm.Email(email))
	if err != nil {
		return nil, domain.Lookup("buscar identidad", err)
	}
	if cred == nil {
		return nil, nil
	}
	id := cred.Identity
	return &id, nil
}

func (uc *AuthUseCase) issue(identity entity.Identity, sessionID string) (*entity.Session, error) {
	token, expiresAt, err := jwt.Generate(uc.jwtCfg.Secret, identity.ID, identity.Email, sessionID, uc.jwtCfg.Issuer, uc.jwtCfg.Lifetime)
	if err != nil {
		return nil, err
	}
	return &entity.Session{
		ID:          sessionID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Identity:    identity,
	}, nil
}
