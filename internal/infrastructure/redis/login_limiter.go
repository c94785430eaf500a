// Package redis contiene los adaptadores sobre Redis (límite de intentos de login).
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/wholesetail-admin-api/pkg/config"
)

const keyPrefix = "wholesetail:ratelimit:"

// NewClient abre la conexión y comprueba que Redis responde.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// LoginLimiter ventana fija por clave: INCR y, en el primer intento, EXPIRE.
type LoginLimiter struct {
	client      *goredis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter construye el limitador. maxAttempts <= 0 desactiva el límite.
func NewLoginLimiter(client *goredis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow cuenta un intento y reporta si sigue dentro del límite.
// Sin cliente siempre permite; los errores de Redis se devuelven al llamador.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil || l.maxAttempts <= 0 {
		return true, nil
	}
	k := keyPrefix + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return true, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	return count <= int64(l.maxAttempts), nil
}

// Reset borra el contador tras un login correcto.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if l.client == nil {
		return nil
	}
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("ratelimit reset: %w", err)
	}
	return nil
}
