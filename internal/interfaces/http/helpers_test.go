package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fedrita-api/internal/application/authctx"
	"github.com/jhoicas/fedrita-api/internal/application/profile"
	"github.com/jhoicas/fedrita-api/internal/application/session"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
	"github.com/jhoicas/fedrita-api/internal/domain/repository"
	"github.com/jhoicas/fedrita-api/internal/infrastructure/cache"
	apphttp "github.com/jhoicas/fedrita-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

// fakeProvider proveedor de identidad en memoria con tokens opacos.
type fakeProvider struct {
	mu     sync.Mutex
	users  map[string]string // email -> password
	tokens map[string]*entity.Session
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{users: map[string]string{}, tokens: map[string]*entity.Session{}}
}

func (p *fakeProvider) issue(email string) *entity.Session {
	s := &entity.Session{
		ID:          uuid.NewString(),
		AccessToken: uuid.NewString(),
		ExpiresAt:   time.Now().Add(time.Hour),
		Identity:    entity.Identity{ID: "id-" + email, Email: email},
	}
	p.tokens[s.AccessToken] = s
	cp := *s
	return &cp
}

func (p *fakeProvider) SignUp(_ context.Context, email, password string) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.users[email]; ok {
		return nil, domain.ErrEmailAlreadyExists
	}
	p.users[email] = password
	return p.issue(email), nil
}

func (p *fakeProvider) SignInWithPassword(_ context.Context, email, password string) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pw, ok := p.users[email]; !ok || pw != password {
		return nil, domain.ErrInvalidCredentials
	}
	return p.issue(email), nil
}

func (p *fakeProvider) GetSession(_ context.Context, token string) (*entity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.tokens[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	cp := *s
	return &cp, nil
}

func (p *fakeProvider) RefreshSession(ctx context.Context, token string) (*entity.Session, error) {
	return p.GetSession(ctx, token)
}

func (p *fakeProvider) SignOut(_ context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, token)
	return nil
}

func (p *fakeProvider) FindByEmail(context.Context, string) (*entity.Identity, error) {
	return nil, nil
}

// fakeResolver perfiles fijos por identidad.
type fakeResolver struct {
	mu       sync.Mutex
	profiles map[string]entity.Profile
}

func (r *fakeResolver) set(identityID string, p entity.Profile) {
	r.mu.Lock()
	r.profiles[identityID] = p
	r.mu.Unlock()
}

func (r *fakeResolver) Resolve(_ context.Context, identityID string) entity.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[identityID]; ok {
		return p
	}
	return entity.NoProfile()
}

func (r *fakeResolver) CacheHint(ctx context.Context, hints profile.HintStore, p entity.Profile) {
	if c := p.Company(); c != nil {
		_ = hints.SaveCompanyHint(ctx, c)
		return
	}
	_ = hints.ClearCompanyHint(ctx)
}

// fakeStats contadores fijos para los paneles.
type fakeStats struct{}

func (fakeStats) CountSalons(context.Context, string) (int, error) { return 2, nil }
func (fakeStats) CountEmployees(context.Context, repository.Scope) (int, error) { return 5, nil }
func (fakeStats) CountAppointments(context.Context, repository.Scope) (int, error) { return 7, nil }
func (fakeStats) CountClients(context.Context, string) (int, error) { return 4, nil }

func (fakeStats) Upcoming(context.Context, repository.Scope, time.Time, int) ([]*entity.Appointment, error) {
	return nil, nil
}

func (fakeStats) BookedAmount(context.Context, repository.Scope) (decimal.Decimal, error) {
	return decimal.RequireFromString("150000.50"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminEmail   = "ana@fedrita.co"
	managerEmail = "luis@fedrita.co"
	password     = "secreto1"
	adminID      = "id-" + adminEmail
	managerID    = "id-" + managerEmail
)

var (
	fedrita = entity.Company{ID: "c-1", OwnerID: adminID, Name: "Fedrita"}
	centro  = entity.Salon{ID: "s-1", CompanyID: "c-1", OwnerID: adminID, ManagerID: strPtr(managerID), Name: "Centro", Address: "Calle 1"}
)

func strPtr(s string) *string { return &s }

type testEnv struct {
	provider *fakeProvider
	resolver *fakeResolver
	registry *authctx.Registry
	app      *fiber.App
}

// newEnv monta el router completo con contextos reales por cliente sobre memoria.
func newEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		provider: newFakeProvider(),
		resolver: &fakeResolver{profiles: map[string]entity.Profile{}},
	}
	mem := cache.NewMemory()
	env.registry = authctx.NewRegistry(context.Background(), func(clientID string) *authctx.Context {
		kv := cache.NewMemoryKV(mem, cache.ClientPrefix(clientID))
		store := session.NewStore(env.provider, kv, zerolog.Nop(), session.Options{Lifetime: time.Hour})
		return authctx.New(store, env.resolver, zerolog.Nop())
	}, time.Hour, zerolog.Nop())
	t.Cleanup(env.registry.CloseAll)

	env.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	apphttp.Router(env.app, apphttp.RouterDeps{
		Contexts:    env.registry,
		DashboardUC: usecase.NewDashboardUseCase(fakeStats{}),
		Checks:      map[string]apphttp.Pinger{},
		InitWait:    time.Second,
		Log:         zerolog.Nop(),
	})
	return env
}

// client devuelve un id de cliente nuevo con su contexto ya inicializado.
func (e *testEnv) client(t *testing.T) string {
	t.Helper()
	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.registry.Get(id).WaitReady(ctx), "el contexto debe inicializarse")
	return id
}

// signup da de alta credenciales en el proveedor sin pasar por HTTP.
func (e *testEnv) signup(email string, p entity.Profile) {
	e.provider.mu.Lock()
	e.provider.users[email] = password
	e.provider.mu.Unlock()
	e.resolver.set("id-"+email, p)
}

// do lanza una petición con el id de cliente y cuerpo JSON opcional.
func (e *testEnv) do(t *testing.T, method, path, clientID string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clientID != "" {
		req.Header.Set(apphttp.ClientHeader, clientID)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
