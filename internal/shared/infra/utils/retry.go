package utils

import (
	"context"
	"time"
)

// Retry ejecuta fn hasta 'attempts' veces esperando 'delay' entre intentos.
// Devuelve el último error, o ctx.Err() si el contexto se cancela durante la espera.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
