package cache

import (
	"context"
	"time"
)

// Cache define la interfaz para una caché de clave-valor genérica.
type Cache interface {
	// Get intenta poblar 'dest' (que debe ser un puntero) con el valor asociado a la 'key'.
	// Devuelve (true, nil) si hay un 'hit' y 'dest' fue rellenado.
	// Devuelve (false, nil) si es un 'miss'.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializa y guarda el valor con un TTL (Time To Live) en segundos.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete elimina la 'key' de la caché.
	Delete(ctx context.Context, key string) error
}

// Counter cuenta eventos por clave dentro de una ventana fija (rate limiting).
type Counter interface {
	// Incr suma uno y devuelve el total de la ventana actual. La ventana
	// empieza con el primer incremento y caduca tras 'window'.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
