package query

import "strings"

// ---------------- ValueComparator ----------------

// Equal compara un valor resuelto con el operando crudo de un filtro.
// Prioridad: número, bool, string (sin distinguir mayúsculas), resto por texto.
// Un valor ausente nunca es igual a nada.
func Equal(v Value, ok bool, raw string) bool {
	if !ok {
		return false
	}
	switch v.kind {
	case KindNumber:
		if f, isNum := parseNumber(raw); isNum {
			return v.num == f
		}
		return v.String() == raw
	case KindBool:
		// cualquier operando distinto de "true" cuenta como false
		return v.b == (raw == "true")
	case KindString:
		return strings.ToLower(v.str) == strings.ToLower(raw)
	}
	// null, objetos y arrays no tienen representación textual comparable
	return false
}

// LessThan sólo aplica a campos numéricos con operando numérico.
func LessThan(v Value, ok bool, raw string) bool {
	f, isNum := rangeOperands(v, ok, raw)
	return isNum && v.num < f
}

// GreaterThan sólo aplica a campos numéricos con operando numérico.
func GreaterThan(v Value, ok bool, raw string) bool {
	f, isNum := rangeOperands(v, ok, raw)
	return isNum && v.num > f
}

func rangeOperands(v Value, ok bool, raw string) (float64, bool) {
	if !ok || v.kind != KindNumber {
		return 0, false
	}
	return parseNumber(raw)
}

// ---------------- Orden ----------------

// rank agrupa tipos distintos en un orden fijo cuando se comparan entre sí.
func rank(k Kind) int {
	switch k {
	case KindBool:
		return 1
	case KindNumber:
		return 2
	case KindString:
		return 3
	case KindObject, KindArray:
		return 4
	}
	return 0
}

// compareValues devuelve -1, 0 o 1. Ausente y null ordenan por debajo de cualquier valor presente.
// Números numéricamente, strings con fecha ISO cronológicamente, resto de strings sin
// distinguir mayúsculas.
func compareValues(a Value, aok bool, b Value, bok bool) int {
	aAbsent := !aok || a.kind == KindNull
	bAbsent := !bok || b.kind == KindNull
	switch {
	case aAbsent && bAbsent:
		return 0
	case aAbsent:
		return -1
	case bAbsent:
		return 1
	}

	if a.kind != b.kind {
		return cmpInt(rank(a.kind), rank(b.kind))
	}

	switch a.kind {
	case KindNumber:
		return cmpFloat(a.num, b.num)
	case KindBool:
		return cmpInt(boolInt(a.b), boolInt(b.b))
	case KindString:
		if ta, okA := parseSortDate(a.str); okA {
			if tb, okB := parseSortDate(b.str); okB {
				return ta.Compare(tb)
			}
		}
		return strings.Compare(strings.ToLower(a.str), strings.ToLower(b.str))
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpInt(a, b int) int {
	return cmpFloat(float64(a), float64(b))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
