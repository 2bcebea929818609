package query

import (
	"strings"

	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"
)

// SearchField es el pseudo-campo que activa la búsqueda de texto libre.
const SearchField = "search"

// prefijos de operador, en el orden en que se comprueban
var operatorPrefixes = []struct {
	prefix string
	op     sharedDomain.Operator
}{
	{"lt:", sharedDomain.OpLt},
	{"gt:", sharedDomain.OpGt},
	{"eq:", sharedDomain.OpEqual},
	{"ne:", sharedDomain.OpNe},
}

// ParseCriterion clasifica el valor crudo de un filtro. El orden es fijo:
// prefijo de operador, lista con comas, booleano, rango de fechas, búsqueda, igualdad exacta.
// Devuelve false si el filtro debe ignorarse (valor vacío o búsqueda en blanco).
//
// Las comas dentro de un operando (eq:red,blue) no se interpretan como lista.
func ParseCriterion(field, raw string) (sharedDomain.Criterion, bool) {
	if raw == "" {
		return sharedDomain.Criterion{}, false
	}

	for _, p := range operatorPrefixes {
		if strings.HasPrefix(raw, p.prefix) {
			return sharedDomain.Criterion{Field: field, Op: p.op, Value: raw[len(p.prefix):]}, true
		}
	}

	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, part := range parts {
			values = append(values, strings.TrimSpace(part))
		}
		return sharedDomain.Criterion{Field: field, Op: sharedDomain.OpIn, Value: raw, Values: values}, true
	}

	if raw == "true" || raw == "false" {
		return sharedDomain.Criterion{Field: field, Op: sharedDomain.OpBool, Value: raw}, true
	}

	if strings.Count(raw, ":") == 1 {
		from, to, _ := strings.Cut(raw, ":")
		if from != "" && to != "" {
			return sharedDomain.Criterion{Field: field, Op: sharedDomain.OpDateRange, Value: raw, Values: []string{from, to}}, true
		}
	}

	if field == SearchField {
		term := strings.TrimSpace(raw)
		if term == "" {
			return sharedDomain.Criterion{}, false
		}
		return sharedDomain.Criterion{Field: field, Op: sharedDomain.OpSearch, Value: term}, true
	}

	return sharedDomain.Criterion{Field: field, Op: sharedDomain.OpEq, Value: raw}, true
}
