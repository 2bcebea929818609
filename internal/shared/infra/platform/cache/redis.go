package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// KeyPrefix aísla las claves del servicio cuando el Redis es compartido.
const KeyPrefix = "einvoicelab:"

// RedisCache guarda los valores como JSON. También sirve de contador para el rate limit,
// así varias réplicas comparten la misma ventana.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Counter = (*RedisCache)(nil)
)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set usa ttlSecs si es positivo y el TTL por defecto en otro caso.
func (c *RedisCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	ttl := c.ttl
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}
	return c.client.Set(ctx, KeyPrefix+key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, KeyPrefix+key).Err()
}

// Incr usa INCR y fija la expiración sólo con el primer incremento de la ventana.
func (c *RedisCache) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = KeyPrefix + key
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
