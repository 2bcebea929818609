package query

import (
	"sort"
	"strings"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort define el campo (path con puntos) y la dirección de ordenación.
type Sort struct {
	Field string
	Desc  bool
}

// Order devuelve "asc" o "desc".
func (s Sort) Order() string {
	if s.Desc {
		return OrderDesc
	}
	return OrderAsc
}

// ParseOrder interpreta "asc"/"desc" sin distinguir mayúsculas; cualquier otro valor usa fallback.
func ParseOrder(raw string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case OrderAsc:
		return false
	case OrderDesc:
		return true
	}
	return fallback
}

// SortRecords devuelve una copia ordenada de la colección. El orden es estable:
// los empates conservan su posición relativa en ambas direcciones.
func SortRecords(coll []Record, s Sort) []Record {
	out := make([]Record, len(coll))
	copy(out, coll)
	if s.Field == "" || len(out) < 2 {
		return out
	}

	// resolver una vez por record, no en cada comparación
	type keyed struct {
		v  Value
		ok bool
	}
	keys := make([]keyed, len(out))
	for i, rec := range out {
		v, ok := Resolve(rec, s.Field)
		keys[i] = keyed{v, ok}
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		c := compareValues(a.v, a.ok, b.v, b.ok)
		if s.Desc {
			return c > 0
		}
		return c < 0
	})

	sorted := make([]Record, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}
