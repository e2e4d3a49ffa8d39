package ports

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound la clave no existe en el almacén.
var ErrKeyNotFound = errors.New("kv: clave no encontrada")

// KeyValueStore almacén clave/valor persistente de un cliente (el equivalente del
// almacenamiento local del navegador). Las claves ya vienen en el espacio de nombres
// del cliente; ttl cero significa sin expiración.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RevocationStore lista de sesiones revocadas, consultada al validar un token.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
