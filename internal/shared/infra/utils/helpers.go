package utils

import (
	"cmp"
	"strings"
)

// Ternary es un operador ternario genérico
func Ternary[T any](condition bool, ifTrue, ifFalse T) T {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Clamp acota n al intervalo [lo, hi].
func Clamp[T cmp.Ordered](n, lo, hi T) T {
	return min(max(n, lo), hi)
}

// FirstNonBlank devuelve el primer valor que no está vacío tras recortar espacios.
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
