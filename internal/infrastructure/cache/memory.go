package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/fedrita-api/internal/application/ports"
)

var (
	_ ports.KeyValueStore   = (*MemoryKV)(nil)
	_ ports.RevocationStore = (*MemoryRevocationStore)(nil)
)

type memEntry struct {
	value     []byte
	expiresAt time.Time // cero = sin expiración
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory mapa compartido con expiración, base de los almacenes en memoria.
// Solo sirve para desarrollo y tests: no sobrevive a un reinicio.
type Memory struct {
	mu   sync.RWMutex
	data map[string]memEntry
	now  func() time.Time
}

// NewMemory construye el mapa.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) get(key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(m.now()) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return nil, false
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

func (m *Memory) set(key string, value []byte, ttl time.Duration) {
	e := memEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
}

func (m *Memory) del(keys ...string) {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.mu.Unlock()
}

// MemoryKV vista de Memory con el prefijo de un cliente.
type MemoryKV struct {
	mem    *Memory
	prefix string
}

// NewMemoryKV construye el almacén del cliente sobre mem.
func NewMemoryKV(mem *Memory, prefix string) *MemoryKV {
	return &MemoryKV{mem: mem, prefix: prefix}
}

func (s *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.mem.get(s.prefix + key)
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return v, nil
}

func (s *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mem.set(s.prefix+key, value, ttl)
	return nil
}

func (s *MemoryKV) Delete(_ context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	s.mem.del(full...)
	return nil
}

// MemoryRevocationStore revocaciones en memoria.
type MemoryRevocationStore struct {
	mem *Memory
}

// NewMemoryRevocationStore construye el adaptador.
func NewMemoryRevocationStore(mem *Memory) *MemoryRevocationStore {
	return &MemoryRevocationStore{mem: mem}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	s.mem.set(revokedPrefix+sessionID, []byte("1"), ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	_, ok := s.mem.get(revokedPrefix + sessionID)
	return ok, nil
}
