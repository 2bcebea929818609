package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// asyncTimeout acota cada operación de caché que no espera la petición.
const asyncTimeout = 200 * time.Millisecond

// AsyncCacheSetIf guarda value en background si valid() sigue siendo cierto en el
// momento de escribir. La comprobación y la escritura se hacen bajo lock, el mismo que
// usa CacheDelete: una entrada invalidada no puede volver a escribirse después del borrado.
// Con cache nil no hace nada.
func AsyncCacheSetIf(cache Cache, lock sync.Locker, key string, value interface{}, ttl int, log *zap.Logger, valid func() bool) {
	runAsync(cache, log, "Cache update failed", key, func(ctx context.Context) error {
		lock.Lock()
		defer lock.Unlock()

		if !valid() {
			return nil
		}
		return cache.Set(ctx, key, value, ttl)
	})
}

// CacheDelete borra key de forma síncrona bajo lock. No hereda la cancelación de ctx:
// un borrado a medias dejaría la entrada vieja.
func CacheDelete(ctx context.Context, cache Cache, lock sync.Locker, key string) error {
	if cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncTimeout)
	defer cancel()

	lock.Lock()
	defer lock.Unlock()
	return cache.Delete(ctx, key)
}

// runAsync usa context.Background(): la operación debe sobrevivir a la cancelación de la petición.
func runAsync(cache Cache, log *zap.Logger, failMsg, key string, op func(ctx context.Context) error) {
	if cache == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		if err := op(ctx); err != nil {
			log.Warn(failMsg, zap.String("key", key), zap.Error(err))
		}
	}()
}
