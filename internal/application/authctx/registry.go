package authctx

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Factory construye el contexto de un cliente (con su almacén de sesión ya namespaced).
type Factory func(clientID string) *Context

// Registry contextos de autenticación por id de cliente. Los crea bajo demanda,
// lanza su Init en segundo plano y descarta los que llevan idleTTL sin usarse.
type Registry struct {
	factory Factory
	idleTTL time.Duration
	baseCtx context.Context
	log     zerolog.Logger

	mu    sync.RWMutex
	items map[string]*Context
}

// NewRegistry construye el registro. baseCtx acota todas las inicializaciones.
func NewRegistry(baseCtx context.Context, factory Factory, idleTTL time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		factory: factory,
		idleTTL: idleTTL,
		baseCtx: baseCtx,
		log:     log,
		items:   make(map[string]*Context),
	}
}

// Get devuelve el contexto de clientID, creándolo e iniciándolo si no existe.
func (r *Registry) Get(clientID string) *Context {
	r.mu.RLock()
	c, ok := r.items[clientID]
	r.mu.RUnlock()
	if ok {
		c.touch()
		return c
	}

	r.mu.Lock()
	if c, ok = r.items[clientID]; ok {
		r.mu.Unlock()
		c.touch()
		return c
	}
	c = r.factory(clientID)
	r.items[clientID] = c
	r.mu.Unlock()

	r.log.Debug().Str("client_id", clientID).Msg("nuevo contexto de autenticación")
	go c.Init(r.baseCtx)
	return c
}

// Len número de contextos vivos.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Sweep descarta los contextos sin uso desde antes de now-idleTTL. Devuelve cuántos.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.idleTTL)

	var stale []*Context
	r.mu.Lock()
	for id, c := range r.items {
		if c.LastUsed().Before(cutoff) {
			stale = append(stale, c)
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	return len(stale)
}

// Run barre periódicamente hasta que ctx termine.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.log.Debug().Int("evicted", n).Msg("contextos inactivos descartados")
			}
		}
	}
}

// CloseAll cierra y olvida todos los contextos.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	items := r.items
	r.items = make(map[string]*Context)
	r.mu.Unlock()
	for _, c := range items {
		c.Close()
	}
}
