package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fedrita-api/internal/application/auth"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/infrastructure/cache"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type memIdentities struct {
	mu   sync.Mutex
	rows map[string]*entity.Credential
}

func newMemIdentities() *memIdentities {
	return &memIdentities{rows: make(map[string]*entity.Credential)}
}

func (m *memIdentities) Create(_ context.Context, cred *entity.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.Email == cred.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *cred
	m.rows[cred.ID] = &cp
	return nil
}

func (m *memIdentities) FindByID(_ context.Context, id string) (*entity.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.rows[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memIdentities) FindByEmail(_ context.Context, email string) (*entity.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func newUseCase(lifetime time.Duration) *auth.AuthUseCase {
	return auth.NewAuthUseCase(newMemIdentities(), cache.NewMemoryRevocationStore(cache.NewMemory()), auth.JWTConfig{
		Secret:   testJWTSecret,
		Lifetime: lifetime,
		Issuer:   "fedrita-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSignUp_CreaIdentidadYSesion(t *testing.T) {
	uc := newUseCase(time.Hour)
	ctx := context.Background()

	sess, err := uc.SignUp(ctx, "  Ana@Fedrita.CO ", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, "ana@fedrita.co", sess.Identity.Email, "el email se normaliza")
	assert.NotEmpty(t, sess.ID)
	assert.NotEmpty(t, sess.AccessToken)

	got, err := uc.GetSession(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.Identity.ID, got.Identity.ID)
	assert.Equal(t, sess.ID, got.ID)
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	uc := newUseCase(time.Hour)
	ctx := context.Background()

	_, err := uc.SignUp(ctx, "ana@fedrita.co", "secreto1")
	require.NoError(t, err)
	_, err = uc.SignUp(ctx, "ANA@fedrita.co", "otra-clave")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignUp_Validaciones(t *testing.T) {
	uc := newUseCase(time.Hour)
	ctx := context.Background()

	_, err := uc.SignUp(ctx, "no-es-email", "secreto1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SignUp(ctx, "ana@fedrita.co", "123")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(time.Hour)
	ctx := context.Background()
	_, err := uc.SignUp(ctx, "ana@fedrita.co", "secreto1")
	require.NoError(t, err)

	_, err = uc.SignInWithPassword(ctx, "ana@fedrita.co", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.SignInWithPassword(ctx, "nadie@fedrita.co", "secreto1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "un email desconocido no se distingue de una clave errónea")

	sess, err := uc.SignInWithPassword(ctx, "ana@fedrita.co", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, "ana@fedrita.co", sess.Identity.Email)
}

func TestSignOut_RevocaLaSesion(t *testing.T) {
	uc := newUseCase(time.Hour)
	ctx := context.Background()
	sess, err := uc.SignUp(ctx, "ana@fedrita.co", "secreto1")
	require.NoError(t, err)

	require.NoError(t, uc.SignOut(ctx, sess.AccessToken))

	_, err = uc.GetSession(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, domain.IsAuthError(err))
}

func TestGetSession_TokenExpirado(t *testing.T) {
	uc := newUseCase(-time.Minute)
	ctx := context.Background()
	sess, err := uc.SignUp(ctx, "ana@fedrita.co", "secreto1")
	require.NoError(t, err)

	_, err = uc.GetSession(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	assert.NoError(t, uc.SignOut(ctx, sess.AccessToken), "un token expirado no necesita revocarse")
}

func TestGetSession_TokenAjeno(t *testing.T) {
	uc := newUseCase(time.Hour)
	_, err := uc.GetSession(context.Background(), "no.es.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefreshSession_ConservaIDDeSesion(t *testing.T) {
	uc := newUseCase(time.Hour)
	ctx := context.Background()
	sess, err := uc.SignUp(ctx, "ana@fedrita.co", "secreto1")
	require.NoError(t, err)

	refreshed, err := uc.RefreshSession(ctx, sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, refreshed.ID)
	assert.Equal(t, sess.Identity.ID, refreshed.Identity.ID)

	// Revocar el token nuevo invalida también el anterior: comparten sesión.
	require.NoError(t, uc.SignOut(ctx, refreshed.AccessToken))
	_, err = uc.GetSession(ctx, sess.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFindByEmail(t *testing.T) {
	uc := newUseCase(time.Hour)
	ctx := context.Background()
	sess, err := uc.SignUp(ctx, "ana@fedrita.co", "secreto1")
	require.NoError(t, err)

	id, err := uc.FindByEmail(ctx, "ANA@fedrita.co")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, sess.Identity.ID, id.ID)

	id, err = uc.FindByEmail(ctx, "nadie@fedrita.co")
	require.NoError(t, err)
	assert.Nil(t, id)
}
