package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/fedrita-api/internal/application/ports"
)

var _ ports.RevocationStore = (*RedisRevocationStore)(nil)

const revokedPrefix = "fedrita:auth:revoked:"

// RedisRevocationStore marca sesiones revocadas con TTL igual a la vida restante del token.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore construye el adaptador.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return s.client.Set(ctx, revokedPrefix+sessionID, "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
