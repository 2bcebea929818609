package query

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record es una entidad JSON sin esquema. Todo acceso a campos se hace por path.
type Record = map[string]any

// ToRecord convierte cualquier valor serializable a Record pasando por JSON,
// de modo que los números quedan como float64 y las claves coinciden con los tags json.
func ToRecord(v any) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}

// FromRecord es la operación inversa: decodifica rec en dest (un puntero).
func FromRecord(rec Record, dest any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// ---------------- Value ----------------

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Value es un valor resuelto de un Record, etiquetado por tipo.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	raw  any
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Raw devuelve el valor Go original.
func (v Value) Raw() any { return v.raw }

// String renderiza escalares; objetos, arrays y null devuelven "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// IsScalar indica si el valor es number, string o bool.
func (v Value) IsScalar() bool {
	return v.kind == KindNumber || v.kind == KindString || v.kind == KindBool
}

// ValueOf etiqueta un valor Go decodificado desde JSON (o construido a mano).
func ValueOf(x any) Value {
	switch t := x.(type) {
	case nil:
		return Value{kind: KindNull}
	case bool:
		return Value{kind: KindBool, b: t, raw: t}
	case string:
		return Value{kind: KindString, str: t, raw: t}
	case float64:
		return Value{kind: KindNumber, num: t, raw: t}
	case float32:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case int:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case int8:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case int16:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case int32:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case int64:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case uint:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case uint32:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case uint64:
		return Value{kind: KindNumber, num: float64(t), raw: t}
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Value{kind: KindNumber, num: f, raw: t}
		}
		return Value{kind: KindString, str: t.String(), raw: t}
	case map[string]any:
		return Value{kind: KindObject, raw: t}
	case []any, []map[string]any:
		return Value{kind: KindArray, raw: t}
	}
	return Value{kind: KindObject, raw: x}
}

// ---------------- PathResolver ----------------

// Resolve recorre un path con puntos ("invoiceData.ValDtls.TotInvVal").
// Devuelve false si algún segmento falta, está vacío o atraviesa algo que no es un objeto.
func Resolve(rec Record, path string) (Value, bool) {
	if rec == nil || path == "" {
		return Value{}, false
	}
	var current any = rec
	for _, key := range strings.Split(path, ".") {
		if key == "" {
			return Value{}, false
		}
		obj, ok := current.(map[string]any)
		if !ok {
			return Value{}, false
		}
		next, ok := obj[key]
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return ValueOf(current), true
}

// parseNumber acepta sólo números finitos, con espacios alrededor.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
