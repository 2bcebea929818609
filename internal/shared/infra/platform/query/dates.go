package query

import (
	"strings"
	"time"
)

// Formatos aceptados en filtros de rango de fechas y en el orden.
// El último es el formato dd/mm/yyyy de DocDtls.Dt.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// dateOnlyLayouts identifica operandos sin hora: su límite superior cubre el día completo.
var dateOnlyLayouts = map[string]bool{
	"2006-01-02": true,
	"02/01/2006": true,
}

// parseDate devuelve la fecha y si el texto no traía hora.
func parseDate(s string) (time.Time, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, dateOnlyLayouts[layout], true
		}
	}
	return time.Time{}, false, false
}

// parseSortDate sólo reconoce fechas ISO-8601 y dd/mm/yyyy, para no reinterpretar textos arbitrarios.
func parseSortDate(s string) (time.Time, bool) {
	switch {
	case len(s) >= 10 && s[4] == '-':
		t, _, ok := parseDate(s)
		return t, ok
	case len(s) == 10 && s[2] == '/' && s[5] == '/':
		t, err := time.Parse("02/01/2006", s)
		return t, err == nil
	}
	return time.Time{}, false
}

// valueTime interpreta un valor resuelto como instante: strings con formato conocido
// o números como milisegundos Unix.
func valueTime(v Value, ok bool) (time.Time, bool) {
	if !ok {
		return time.Time{}, false
	}
	switch v.kind {
	case KindString:
		t, _, parsed := parseDate(v.str)
		return t, parsed
	case KindNumber:
		return time.UnixMilli(int64(v.num)).UTC(), true
	}
	return time.Time{}, false
}

// inDateRange comprueba from <= v <= to. Un "to" sin hora incluye todo ese día.
func inDateRange(v Value, ok bool, from, to string) bool {
	t, isTime := valueTime(v, ok)
	if !isTime {
		return false
	}
	start, _, okFrom := parseDate(from)
	end, endDateOnly, okTo := parseDate(to)
	if !okFrom || !okTo {
		return false
	}
	if endDateOnly {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return !t.Before(start) && !t.After(end)
}
