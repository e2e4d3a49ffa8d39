// Package cache contiene los almacenes clave/valor de los clientes y la lista de
// sesiones revocadas, sobre Redis o en memoria.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Connect crea el cliente Redis desde una URL redis:// o un host:port y comprueba la conexión.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ClientPrefix espacio de nombres de las claves de un cliente.
func ClientPrefix(clientID string) string {
	return "fedrita:client:" + clientID + ":"
}
