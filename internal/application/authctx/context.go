// Package authctx mantiene el estado de autenticación de cada cliente: sesión,
// perfil resuelto y bandera de carga, con su ciclo de vida init → suscripción → cierre.
package authctx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/fedrita-api/internal/application/profile"
	"github.com/jhoicas/fedrita-api/internal/application/session"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// SessionStore lo que el contexto necesita del almacén de sesión del cliente.
type SessionStore interface {
	profile.HintStore
	CurrentSession(ctx context.Context) (*entity.Session, error)
	OnSessionChange(l session.Listener) func()
	Login(ctx context.Context, email, password string) (*entity.Identity, error)
	Register(ctx context.Context, email, password string) (*entity.Identity, error)
	Logout(ctx context.Context) error
	TempIdentity(ctx context.Context) *entity.Identity
	ClearTempIdentity(ctx context.Context)
	CompanyHint(ctx context.Context) *entity.Company
}

// ProfileResolver lo que el contexto necesita del resolver de perfiles.
type ProfileResolver interface {
	Resolve(ctx context.Context, identityID string) entity.Profile
	CacheHint(ctx context.Context, hints profile.HintStore, p entity.Profile)
}

// Context estado de autenticación de un cliente.
//
// Las escrituras del perfil llevan un número de generación: cada cambio de sesión y
// cada logout lo incrementan, y un resultado de resolución solo se aplica si su
// generación sigue vigente. Así una respuesta tardía nunca repuebla el estado tras un logout.
type Context struct {
	store    SessionStore
	resolver ProfileResolver
	log      zerolog.Logger

	// commitMu serializa aplicar un perfil (estado + pista persistida) con el logout.
	commitMu sync.Mutex

	mu      sync.RWMutex
	state   entity.AuthState
	session *entity.Session
	gen     uint64
	// initGen generación al construir; Init se abandona si ya no coincide.
	initGen uint64
	subs    map[int]func(entity.AuthState)
	nextSub int

	ready     chan struct{}
	readyOnce sync.Once
	unsub     func()
	lastUsed  atomic.Int64
}

// New construye el contexto y lo suscribe al almacén de sesión. El estado inicial es
// loading hasta que Init termine.
func New(store SessionStore, resolver ProfileResolver, log zerolog.Logger) *Context {
	c := &Context{
		store:    store,
		resolver: resolver,
		log:      log,
		state:    entity.AuthState{Profile: entity.NoProfile(), Loading: true},
		subs:     make(map[int]func(entity.AuthState)),
		ready:    make(chan struct{}),
	}
	c.initGen = c.gen
	c.touch()
	c.unsub = store.OnSessionChange(c.onSessionChange)
	return c
}

// Init restaura la sesión persistida y resuelve su perfil. Mientras tanto expone la
// identidad temporal del registro y la pista de empresa, solo para mostrar.
func (c *Context) Init(ctx context.Context) {
	defer c.markReady()

	temp := c.store.TempIdentity(ctx)
	hint := c.store.CompanyHint(ctx)

	c.mu.Lock()
	gen := c.initGen
	if c.gen != gen {
		// Un login o logout llegó antes que la restauración y su estado es más reciente.
		c.mu.Unlock()
		return
	}
	c.state.Loading = true
	c.state.Identity = temp
	c.state.CompanyHint = hint
	c.mu.Unlock()
	c.publish()

	sess, err := c.store.CurrentSession(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo restaurar la sesión; se continúa sin sesión")
		sess = nil
	}

	if sess == nil {
		if c.commit(ctx, gen, nil, nil, entity.NoProfile()) {
			c.store.ClearTempIdentity(ctx)
		}
		return
	}

	if c.generation() != gen {
		// Otra operación cambió la sesión mientras se restauraba: su resultado manda.
		return
	}
	identity := sess.Identity
	if temp != nil && temp.ID == identity.ID {
		identity.NeedsCompanySetup = temp.NeedsCompanySetup
	}
	p := c.resolver.Resolve(ctx, identity.ID)
	if c.commit(ctx, gen, sess, &identity, p) && p.Company() != nil {
		c.store.ClearTempIdentity(ctx)
	}
}

// WaitReady espera a que Init termine o a que ctx venza.
func (c *Context) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready indica si Init ya terminó.
func (c *Context) Ready() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

func (c *Context) markReady() {
	c.readyOnce.Do(func() { close(c.ready) })
}

// State instantánea actual.
func (c *Context) State() entity.AuthState {
	c.touch()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Session sesión viva; nil si no hay.
func (c *Context) Session() *entity.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Subscribe registra fn para cada nuevo estado publicado.
func (c *Context) Subscribe(fn func(entity.AuthState)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Login inicia sesión. El perfil se resuelve al recibir el evento SignedIn.
func (c *Context) Login(ctx context.Context, email, password string) (*entity.Identity, error) {
	c.setLoading(true)
	id, err := c.store.Login(ctx, email, password)
	if err != nil {
		c.setLoading(false)
		return nil, err
	}
	return id, nil
}

// Register crea la identidad y su sesión; la identidad queda pendiente de registrar empresa.
func (c *Context) Register(ctx context.Context, email, password string) (*entity.Identity, error) {
	c.setLoading(true)
	id, err := c.store.Register(ctx, email, password)
	if err != nil {
		c.setLoading(false)
		return nil, err
	}
	return id, nil
}

// Logout deja el estado en {sin identidad, sin perfil, loading=false} antes de tocar el
// almacén, de modo que ninguna resolución en curso pueda aplicarse después.
func (c *Context) Logout(ctx context.Context) error {
	c.commitMu.Lock()
	c.mu.Lock()
	c.gen++
	c.session = nil
	c.state = entity.AuthState{Profile: entity.NoProfile()}
	c.mu.Unlock()
	c.commitMu.Unlock()
	c.publish()

	return c.store.Logout(ctx)
}

// RefreshProfile vuelve a resolver el perfil de identityID (p. ej. tras crear la empresa).
// Las llamadas solapadas no se serializan: gana la última en terminar.
func (c *Context) RefreshProfile(ctx context.Context, identityID string) error {
	c.mu.Lock()
	if c.state.Identity == nil || c.state.Identity.ID != identityID {
		c.mu.Unlock()
		return domain.ErrUnauthorized
	}
	gen := c.gen
	sess := c.session
	identity := *c.state.Identity
	c.state.Loading = true
	c.mu.Unlock()
	c.publish()

	p := c.resolver.Resolve(ctx, identityID)
	if c.commit(ctx, gen, sess, &identity, p) && p.Company() != nil {
		c.store.ClearTempIdentity(ctx)
	}
	return nil
}

// Close cancela la suscripción al almacén de sesión.
func (c *Context) Close() {
	if c.unsub != nil {
		c.unsub()
	}
	c.markReady()
}

// LastUsed momento del último acceso al estado.
func (c *Context) LastUsed() time.Time {
	return time.Unix(0, c.lastUsed.Load())
}

func (c *Context) touch() {
	c.lastUsed.Store(time.Now().UnixNano())
}

func (c *Context) onSessionChange(ctx context.Context, ev entity.SessionEvent) {
	c.mu.Lock()
	c.gen++
	gen := c.gen

	if ev.Kind == entity.SessionSignedOut || ev.Session == nil {
		c.session = nil
		c.state = entity.AuthState{Profile: entity.NoProfile()}
		c.mu.Unlock()
		c.publish()
		return
	}

	identity := ev.Session.Identity
	sameIdentity := c.state.Identity != nil && c.state.Identity.ID == identity.ID
	if sameIdentity && !identity.NeedsCompanySetup {
		identity.NeedsCompanySetup = c.state.Identity.NeedsCompanySetup
	}
	c.session = ev.Session
	prev := c.state.Profile
	loading := c.state.Loading
	if !sameIdentity {
		prev = entity.NoProfile()
		loading = true
	}
	c.state = entity.AuthState{Identity: &identity, Profile: prev, Loading: loading}
	c.mu.Unlock()
	c.publish()

	c.log.Debug().Str("event", string(ev.Kind)).Str("identity_id", identity.ID).Msg("cambio de sesión")
	p := c.resolver.Resolve(ctx, identity.ID)
	if c.commit(ctx, gen, ev.Session, &identity, p) && p.Company() != nil {
		c.store.ClearTempIdentity(ctx)
	}
}

// commit aplica el resultado de una resolución si gen sigue vigente y actualiza la
// pista de empresa persistida. Devuelve false si el resultado quedó obsoleto.
func (c *Context) commit(ctx context.Context, gen uint64, sess *entity.Session, identity *entity.Identity, p entity.Profile) bool {
	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		c.log.Debug().Uint64("gen", gen).Msg("resultado de perfil obsoleto descartado")
		return false
	}
	if identity != nil && p.Company() != nil && identity.NeedsCompanySetup {
		settled := *identity
		settled.NeedsCompanySetup = false
		identity = &settled
	}
	c.session = sess
	c.state = entity.AuthState{Identity: identity, Profile: p}
	c.mu.Unlock()

	if identity != nil {
		c.resolver.CacheHint(ctx, c.store, p)
	} else if err := c.store.ClearCompanyHint(ctx); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo borrar la pista de empresa")
	}
	c.publish()
	return true
}

func (c *Context) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Context) setLoading(v bool) {
	c.mu.Lock()
	c.state.Loading = v
	c.mu.Unlock()
	c.publish()
}

func (c *Context) publish() {
	c.mu.RLock()
	st := c.state
	fns := make([]func(entity.AuthState), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(st)
	}
}
