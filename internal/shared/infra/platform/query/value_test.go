package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	rec := Record{
		"irn":  "abc",
		"flag": false,
		"nil":  nil,
		"invoiceData": map[string]any{
			"BuyerDtls": map[string]any{"LglNm": "ACME Corp"},
			"ValDtls":   map[string]any{"TotInvVal": 1180.5},
			"ItemList":  []any{map[string]any{"SlNo": "1"}},
		},
	}

	tests := []struct {
		name string
		path string
		ok   bool
		kind Kind
	}{
		{"campo raíz", "irn", true, KindString},
		{"bool false presente", "flag", true, KindBool},
		{"null presente", "nil", true, KindNull},
		{"anidado", "invoiceData.BuyerDtls.LglNm", true, KindString},
		{"número anidado", "invoiceData.ValDtls.TotInvVal", true, KindNumber},
		{"array", "invoiceData.ItemList", true, KindArray},
		{"no atraviesa arrays", "invoiceData.ItemList.0", false, KindNull},
		{"segmento inexistente", "invoiceData.Nope.X", false, KindNull},
		{"atraviesa escalar", "irn.length", false, KindNull},
		{"segmento vacío", "invoiceData..ValDtls", false, KindNull},
		{"path vacío", "", false, KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Resolve(rec, tt.path)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.kind, v.Kind())
			}
		})
	}
}

func TestToRecord_UsesJSONTags(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}
	type outer struct {
		Amount int   `json:"amount"`
		Inner  inner `json:"inner"`
	}

	rec, err := ToRecord(outer{Amount: 3, Inner: inner{Name: "x"}})
	require.NoError(t, err)

	v, ok := Resolve(rec, "inner.name")
	require.True(t, ok)
	assert.Equal(t, "x", v.String())

	n, ok := Resolve(rec, "amount")
	require.True(t, ok)
	f, isNum := n.Number()
	assert.True(t, isNum)
	assert.Equal(t, 3.0, f)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		value any
		raw   string
		want  bool
	}{
		{"número con número", 15.0, "15", true},
		{"número con decimales", 15.0, "15.00", true},
		{"número distinto", 15.0, "16", false},
		{"número con texto", 15.0, "quince", false},
		{"string sin mayúsculas", "B2B", "b2b", true},
		{"string distinto", "B2B", "SEZWP", false},
		{"bool true", true, "true", true},
		{"bool false", false, "true", false},
		{"bool false con texto", false, "no", true},
		{"bool true con texto", true, "no", false},
		{"bool true con TRUE", true, "TRUE", false},
		{"bool false con TRUE", false, "TRUE", true},
		{"bool con espacios", true, " true", false},
		{"número con texto numérico a medias", 15.0, "15abc", false},
		{"número con operando infinito", 15.0, "Inf", false},
		{"número en notación científica", 1500.0, "1.5e3", true},
		{"null nunca", nil, "null", false},
		{"objeto nunca", map[string]any{"a": 1}, "[object Object]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(ValueOf(tt.value), true, tt.raw))
		})
	}

	assert.False(t, Equal(Value{}, false, ""), "un campo ausente no es igual a nada")
}

func TestRangeOperators_RequireNumbers(t *testing.T) {
	assert.True(t, LessThan(ValueOf(5.0), true, "20"))
	assert.False(t, LessThan(ValueOf(25.0), true, "20"))
	assert.True(t, GreaterThan(ValueOf(25.0), true, " 20 "))

	// tipos incompatibles nunca cumplen
	assert.False(t, GreaterThan(ValueOf("10"), true, "5"))
	assert.False(t, LessThan(ValueOf(5.0), true, "abc"))
	assert.False(t, LessThan(ValueOf(5.0), true, "NaN"))
	assert.False(t, GreaterThan(Value{}, false, "0"))
}
