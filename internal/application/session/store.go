// Package session implementa el almacén de sesión de un cliente: guarda el token en
// el almacén clave/valor del cliente, lo valida contra el proveedor de identidad y
// avisa a los suscriptores de cada cambio.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/domain"
	"github.com/jhoicas/fedrita-api/internal/domain/entity"
)

// Claves persistidas en el almacén del cliente.
const (
	KeySession  = "fedrita_session"
	KeyUserTemp = "fedrita_user_temp"
	KeyCompany  = "fedrita_company"
)

// hintTTL vida de la pista de empresa cuando nadie la renueva.
const hintTTL = 30 * 24 * time.Hour

// Listener recibe los cambios de sesión. Se invoca en la goroutine que provocó el cambio.
type Listener func(ctx context.Context, ev entity.SessionEvent)

// Store almacén de sesión de un cliente.
type Store struct {
	provider ports.IdentityProvider
	kv       ports.KeyValueStore
	log      zerolog.Logger
	// refreshBelow un token con menos vida restante que esto se renueva al leerlo.
	refreshBelow time.Duration
	now          func() time.Time

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// Options parámetros opcionales del Store.
type Options struct {
	// Lifetime vida configurada de los tokens; se renuevan al bajar de un cuarto.
	Lifetime time.Duration
	Now      func() time.Time
}

// NewStore construye el almacén sobre el proveedor y el espacio clave/valor del cliente.
func NewStore(provider ports.IdentityProvider, kv ports.KeyValueStore, log zerolog.Logger, opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		provider:     provider,
		kv:           kv,
		log:          log,
		refreshBelow: opts.Lifetime / 4,
		now:          now,
		listeners:    make(map[int]Listener),
	}
}

// OnSessionChange registra l para todos los cambios futuros. No se dispara con el
// estado actual. La función devuelta cancela la suscripción.
func (s *Store) OnSessionChange(l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) emit(ctx context.Context, kind entity.SessionEventKind, sess *entity.Session) {
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()

	ev := entity.SessionEvent{Kind: kind, Session: sess}
	for _, l := range ls {
		l(ctx, ev)
	}
}

// CurrentSession sesión persistida del cliente, validada con el proveedor.
// Devuelve (nil, nil) si no hay token o si el token ya no es válido; en ese caso
// borra la entrada. Solo los fallos de infraestructura se devuelven como error.
func (s *Store) CurrentSession(ctx context.Context) (*entity.Session, error) {
	raw, err := s.kv.Get(ctx, KeySession)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Lookup("leer sesión persistida", err)
	}
	token := string(raw)
	if token == "" {
		return nil, nil
	}

	sess, err := s.provider.GetSession(ctx, token)
	if err != nil {
		if domain.IsAuthError(err) {
			s.log.Debug().Err(err).Msg("sesión persistida inválida, se descarta")
			s.forget(ctx, KeySession, KeyUserTemp)
			return nil, nil
		}
		return nil, domain.Lookup("validar sesión", err)
	}

	if s.refreshBelow > 0 && sess.ExpiresAt.Sub(s.now()) < s.refreshBelow {
		refreshed, err := s.provider.RefreshSession(ctx, token)
		if err != nil {
			// El token actual sigue siendo válido: se usa tal cual.
			s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("no se pudo renovar el token")
			return sess, nil
		}
		if err := s.persist(ctx, refreshed); err != nil {
			return nil, err
		}
		s.emit(ctx, entity.SessionTokenRefreshed, refreshed)
		return refreshed, nil
	}
	return sess, nil
}

// Login intercambia credenciales por una sesión.
func (s *Store) Login(ctx context.Context, email, password string) (*entity.Identity, error) {
	sess, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, sess); err != nil {
		return nil, err
	}
	s.emit(ctx, entity.SessionSignedIn, sess)
	id := sess.Identity
	return &id, nil
}

// Register crea la identidad y su sesión. La identidad devuelta lleva
// NeedsCompanySetup y se guarda como instantánea temporal.
func (s *Store) Register(ctx context.Context, email, password string) (*entity.Identity, error) {
	sess, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	sess.Identity.NeedsCompanySetup = true
	if err := s.persist(ctx, sess); err != nil {
		return nil, err
	}
	snapshot, err := json.Marshal(sess.Identity)
	if err != nil {
		return nil, fmt.Errorf("serializar identidad: %w", err)
	}
	if err := s.kv.Set(ctx, KeyUserTemp, snapshot, s.ttl(sess)); err != nil {
		return nil, domain.Lookup("guardar identidad temporal", err)
	}
	s.emit(ctx, entity.SessionSignedIn, sess)
	id := sess.Identity
	return &id, nil
}

// Logout revoca la sesión y borra todas las entradas persistidas del cliente.
// Los suscriptores reciben SignedOut aunque la revocación falle.
func (s *Store) Logout(ctx context.Context) error {
	var revokeErr error
	raw, err := s.kv.Get(ctx, KeySession)
	switch {
	case err == nil && len(raw) > 0:
		if err := s.provider.SignOut(ctx, string(raw)); err != nil && !domain.IsAuthError(err) {
			revokeErr = domain.Lookup("revocar sesión", err)
		}
	case err != nil && !errors.Is(err, ports.ErrKeyNotFound):
		s.log.Warn().Err(err).Msg("no se pudo leer la sesión persistida en el logout")
	}

	var clearErr error
	if err := s.kv.Delete(ctx, KeySession, KeyUserTemp, KeyCompany); err != nil {
		clearErr = domain.Lookup("borrar sesión persistida", err)
	}
	s.emit(ctx, entity.SessionSignedOut, nil)

	if revokeErr != nil {
		return revokeErr
	}
	return clearErr
}

// TempIdentity instantánea guardada en el registro; nil si no hay.
func (s *Store) TempIdentity(ctx context.Context) *entity.Identity {
	raw, err := s.kv.Get(ctx, KeyUserTemp)
	if err != nil {
		return nil
	}
	var id entity.Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.ID == "" {
		return nil
	}
	return &id
}

// ClearTempIdentity descarta la instantánea del registro.
func (s *Store) ClearTempIdentity(ctx context.Context) {
	s.forget(ctx, KeyUserTemp)
}

// CompanyHint empresa cacheada para mostrar antes de resolver el perfil; nil si no hay.
func (s *Store) CompanyHint(ctx context.Context) *entity.Company {
	raw, err := s.kv.Get(ctx, KeyCompany)
	if err != nil {
		return nil
	}
	var c entity.Company
	if err := json.Unmarshal(raw, &c); err != nil || c.ID == "" {
		return nil
	}
	return &c
}

// SaveCompanyHint guarda la empresa como pista de visualización.
func (s *Store) SaveCompanyHint(ctx context.Context, company *entity.Company) error {
	raw, err := json.Marshal(company)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyCompany, raw, hintTTL)
}

// ClearCompanyHint borra la pista de empresa.
func (s *Store) ClearCompanyHint(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyCompany)
}

func (s *Store) persist(ctx context.Context, sess *entity.Session) error {
	if err := s.kv.Set(ctx, KeySession, []byte(sess.AccessToken), s.ttl(sess)); err != nil {
		return domain.Lookup("guardar sesión", err)
	}
	return nil
}

func (s *Store) ttl(sess *entity.Session) time.Duration {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return time.Second
	}
	return ttl
}

func (s *Store) forget(ctx context.Context, keys ...string) {
	if err := s.kv.Delete(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("no se pudieron borrar claves del cliente")
	}
}
