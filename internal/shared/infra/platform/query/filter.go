package query

import (
	"sort"

	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"
)

// FilterSpec mapea campo (path con puntos o "search") a valor crudo del filtro.
type FilterSpec map[string]string

// Parámetros de control: nunca son filtros de campo.
const (
	ParamPage      = "page"
	ParamLimit     = "limit"
	ParamSortBy    = "sortBy"
	ParamSortOrder = "sortOrder"
)

func IsControlParam(key string) bool {
	switch key {
	case ParamPage, ParamLimit, ParamSortBy, ParamSortOrder:
		return true
	}
	return false
}

// BuildCriteria convierte un FilterSpec en un AND de criterios, ignorando
// parámetros de control y valores vacíos. Las claves se recorren ordenadas
// para que el resultado sea determinista.
func BuildCriteria(spec FilterSpec) sharedDomain.CompositeCriteria {
	keys := make([]string, 0, len(spec))
	for k := range spec {
		if !IsControlParam(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var criterias []sharedDomain.Criteria
	for _, k := range keys {
		if c, ok := ParseCriterion(k, spec[k]); ok {
			criterias = append(criterias, c)
		}
	}
	return sharedDomain.And(criterias...)
}

// ---------------- FilterEngine ----------------

// Engine aplica filtros, orden y paginación sobre colecciones en memoria.
// No guarda estado entre llamadas; es seguro para uso concurrente.
type Engine struct {
	searcher Searcher
}

// NewEngine crea un engine cuyo pseudo-campo "search" busca en los paths dados.
func NewEngine(searchPaths ...string) *Engine {
	return &Engine{searcher: NewSearcher(searchPaths...)}
}

func (e *Engine) Searcher() Searcher {
	return e.searcher
}

// Apply filtra la colección con la conjunción de todos los filtros.
// Conserva el orden relativo y nunca modifica la entrada.
func (e *Engine) Apply(coll []Record, spec FilterSpec) []Record {
	return e.ApplyCriteria(coll, BuildCriteria(spec))
}

// ApplyCriteria filtra con criterios ya construidos. Respeta And/Or anidados.
func (e *Engine) ApplyCriteria(coll []Record, criteria sharedDomain.Criteria) []Record {
	if criteria == nil || len(criteria.ToConditions()) == 0 {
		return coll
	}
	out := make([]Record, 0, len(coll))
	for _, rec := range coll {
		if e.eval(rec, criteria) {
			out = append(out, rec)
		}
	}
	return out
}

func (e *Engine) eval(rec Record, criteria sharedDomain.Criteria) bool {
	switch c := criteria.(type) {
	case sharedDomain.Criterion:
		return e.Matches(rec, c)
	case sharedDomain.CompositeCriteria:
		if c.Operator == sharedDomain.OpOr {
			for _, sub := range c.Criterias {
				if e.eval(rec, sub) {
					return true
				}
			}
			return len(c.Criterias) == 0
		}
		for _, sub := range c.Criterias {
			if !e.eval(rec, sub) {
				return false
			}
		}
		return true
	}
	for _, cond := range criteria.ToConditions() {
		if !e.Matches(rec, cond) {
			return false
		}
	}
	return true
}

// Matches evalúa un único criterio contra un record.
func (e *Engine) Matches(rec Record, c sharedDomain.Criterion) bool {
	if c.Op == sharedDomain.OpSearch {
		return e.searcher.Matches(rec, c.Value)
	}

	v, ok := Resolve(rec, c.Field)
	switch c.Op {
	case sharedDomain.OpLt:
		return LessThan(v, ok, c.Value)
	case sharedDomain.OpGt:
		return GreaterThan(v, ok, c.Value)
	case sharedDomain.OpEq, sharedDomain.OpEqual:
		return Equal(v, ok, c.Value)
	case sharedDomain.OpNe:
		// un campo ausente no cumple ningún filtro estructurado, tampoco ne:
		return ok && !Equal(v, ok, c.Value)
	case sharedDomain.OpIn:
		for _, candidate := range c.Values {
			if Equal(v, ok, candidate) {
				return true
			}
		}
		return false
	case sharedDomain.OpBool:
		b, isBool := v.Bool()
		return ok && isBool && b == (c.Value == "true")
	case sharedDomain.OpDateRange:
		if len(c.Values) != 2 {
			return false
		}
		return inDateRange(v, ok, c.Values[0], c.Values[1])
	}
	return false
}
