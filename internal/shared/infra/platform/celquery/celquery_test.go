package celquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
)

func records() []query.Record {
	return []query.Record{
		{"id": float64(1), "supplyType": "B2B", "totalValue": float64(118000), "isInterstate": true,
			"invoiceData": map[string]interface{}{"BuyerDtls": map[string]interface{}{"Stcd": "29"}}},
		{"id": float64(2), "supplyType": "EXPWP", "totalValue": float64(40000), "isInterstate": true,
			"invoiceData": map[string]interface{}{"BuyerDtls": map[string]interface{}{"Stcd": "96"}}},
		{"id": float64(3), "supplyType": "B2B", "totalValue": float64(9000), "isInterstate": false},
	}
}

func ids(coll []query.Record) []float64 {
	out := make([]float64, 0, len(coll))
	for _, r := range coll {
		out = append(out, r["id"].(float64))
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []float64
	}{
		{"equality and int literal against double", `r.supplyType == "B2B" && r.totalValue > 50000`, []float64{1}},
		{"nested path with in", `r.invoiceData.BuyerDtls.Stcd in ["29", "36"]`, []float64{1}},
		{"bool field", `!r.isInterstate`, []float64{3}},
		{"missing key never matches", `r.nope == "x"`, []float64{}},
		{"non bool result", `r.id`, []float64{}},
		{"has macro", `has(r.invoiceData)`, []float64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(prg.Filter(records())))
		})
	}
}

func TestCompile_Invalid(t *testing.T) {
	for _, expr := range []string{`r.supplyType ==`, `unknownVar > 1`, ``} {
		_, err := Compile(expr)
		assert.ErrorIs(t, err, ErrInvalidExpression, expr)
	}
}

func TestMatch_CostLimit(t *testing.T) {
	list := func(n int) []interface{} {
		out := make([]interface{}, n)
		for i := range out {
			out[i] = float64(i)
		}
		return out
	}
	prg, err := Compile(`r.xs.all(a, r.xs.all(b, r.xs.all(c, a + b + c >= 0.0)))`)
	require.NoError(t, err)

	assert.True(t, prg.Match(query.Record{"xs": list(3)}))
	// 100^3 iteraciones superan el límite: no coincide en lugar de colgarse
	assert.False(t, prg.Match(query.Record{"xs": list(100)}))
}
