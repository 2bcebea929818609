package query

import (
	"fmt"
	"testing"

	sharedDomain "github.com/davicafu/einvoicelab/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		raw    string
		ok     bool
		op     sharedDomain.Operator
		values []string
	}{
		{"lt", "v", "lt:20", true, sharedDomain.OpLt, nil},
		{"gt", "v", "gt:20", true, sharedDomain.OpGt, nil},
		{"eq con coma no es lista", "v", "eq:red,blue", true, sharedDomain.OpEqual, nil},
		{"ne", "v", "ne:B2B", true, sharedDomain.OpNe, nil},
		{"lista", "type", "B2B, SEZWP", true, sharedDomain.OpIn, []string{"B2B", "SEZWP"}},
		{"bool", "active", "true", true, sharedDomain.OpBool, nil},
		{"rango de fechas", "generatedAt", "2024-01-01:2024-12-31", true, sharedDomain.OpDateRange, []string{"2024-01-01", "2024-12-31"}},
		{"rango incompleto es exacto", "code", "A:", true, sharedDomain.OpEq, nil},
		{"hora con dos puntos es exacto", "at", "2024-01-01T10:00:00", true, sharedDomain.OpEq, nil},
		{"búsqueda", "search", " acme ", true, sharedDomain.OpSearch, nil},
		{"búsqueda en blanco", "search", "   ", false, "", nil},
		{"vacío", "x", "", false, "", nil},
		{"exacto", "status", "ACT", true, sharedDomain.OpEq, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ParseCriterion(tt.field, tt.raw)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.op, c.Op)
			assert.Equal(t, tt.field, c.Field)
			if tt.values != nil {
				assert.Equal(t, tt.values, c.Values)
			}
		})
	}
}

func TestBuildCriteria_SkipsControlParams(t *testing.T) {
	crit := BuildCriteria(FilterSpec{
		"page":      "2",
		"limit":     "5",
		"sortBy":    "irn",
		"sortOrder": "asc",
		"status":    "ACT",
		"empty":     "",
	})

	conds := crit.ToConditions()
	require.Len(t, conds, 1)
	assert.Equal(t, "status", conds[0].Field)
	assert.Equal(t, sharedDomain.OpAnd, crit.Operator)
}

func numbered(n int) []Record {
	out := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Record{"n": float64(i)})
	}
	return out
}

func TestApply_ScenarioA_LessThan(t *testing.T) {
	coll := []Record{{"v": 5.0}, {"v": 15.0}, {"v": 25.0}}

	got := NewEngine().Apply(coll, FilterSpec{"v": "lt:20"})

	assert.Equal(t, []Record{{"v": 5.0}, {"v": 15.0}}, got)
}

func TestApply_ScenarioB_CommaList(t *testing.T) {
	coll := []Record{{"type": "B2B"}, {"type": "EXPWP"}, {"type": "SEZWP"}}

	got := NewEngine().Apply(coll, FilterSpec{"type": "B2B,SEZWP"})

	assert.Equal(t, []Record{{"type": "B2B"}, {"type": "SEZWP"}}, got)
}

func TestApply_ScenarioD_Search(t *testing.T) {
	coll := []Record{
		{"invoiceData": map[string]any{"BuyerDtls": map[string]any{"LglNm": "ACME Corp"}}},
		{"invoiceData": map[string]any{"BuyerDtls": map[string]any{"LglNm": "Globex"}}},
		{"irn": "x"},
	}
	engine := NewEngine("invoiceData.BuyerDtls.LglNm", "irn")

	got := engine.Apply(coll, FilterSpec{"search": "acme"})

	require.Len(t, got, 1)
	assert.Equal(t, coll[0], got[0])
}

func TestApply_ScenarioE_TypeMismatch(t *testing.T) {
	coll := []Record{{"status": "ACT"}, {"status": "CNL"}, {"status": "10"}}

	got := NewEngine().Apply(coll, FilterSpec{"status": "gt:5"})

	assert.Empty(t, got)
}

func TestApply_ScenarioF_EmptySpec(t *testing.T) {
	coll := numbered(7)

	got := NewEngine().Apply(coll, FilterSpec{})

	assert.Equal(t, coll, got)
	got = NewEngine().Apply(coll, FilterSpec{"page": "1", "sortBy": "n"})
	assert.Equal(t, coll, got)
}

func TestApply_MissingFieldNeverMatches(t *testing.T) {
	coll := []Record{{"a": "x"}, {"b": "y"}}
	engine := NewEngine()

	assert.Len(t, engine.Apply(coll, FilterSpec{"a": "ne:z"}), 1)
	assert.Empty(t, engine.Apply(coll, FilterSpec{"missing": "ne:z"}))
	assert.Empty(t, engine.Apply(coll, FilterSpec{"missing": "x,y"}))
	assert.Empty(t, engine.Apply(coll, FilterSpec{"missing": "false"}))
}

func TestApply_BoolAndDateRange(t *testing.T) {
	coll := []Record{
		{"ewb": true, "at": "2024-03-10T12:00:00Z"},
		{"ewb": false, "at": "2024-06-30T23:59:00Z"},
		{"ewb": "true", "at": "2025-01-01T00:00:00Z"},
	}
	engine := NewEngine()

	got := engine.Apply(coll, FilterSpec{"ewb": "true"})
	require.Len(t, got, 1)
	assert.Equal(t, coll[0], got[0])

	// el extremo superior sin hora incluye todo el día
	got = engine.Apply(coll, FilterSpec{"at": "2024-01-01:2024-06-30"})
	assert.Equal(t, coll[:2], got)

	got = engine.Apply(coll, FilterSpec{"at": "garbage:2024-06-30"})
	assert.Empty(t, got)
}

func TestApply_DateRangeOnUnixMillis(t *testing.T) {
	coll := []Record{{"ts": float64(1704067200000)}} // 2024-01-01T00:00:00Z

	got := NewEngine().Apply(coll, FilterSpec{"ts": "2023-12-31:2024-01-01"})

	assert.Len(t, got, 1)
}

func TestApply_ANDAcrossFilters(t *testing.T) {
	coll := []Record{
		{"type": "B2B", "v": 5.0},
		{"type": "B2B", "v": 50.0},
		{"type": "EXPWP", "v": 5.0},
	}

	got := NewEngine().Apply(coll, FilterSpec{"type": "B2B", "v": "lt:10"})

	assert.Equal(t, []Record{coll[0]}, got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	coll := numbered(10)
	snapshot := fmt.Sprint(coll)

	_ = NewEngine().Apply(coll, FilterSpec{"n": "gt:5"})

	assert.Equal(t, snapshot, fmt.Sprint(coll))
}

func TestApplyCriteria_Or(t *testing.T) {
	coll := []Record{{"a": "x"}, {"a": "y"}, {"a": "z"}}
	crit := sharedDomain.Or(
		sharedDomain.Criterion{Field: "a", Op: sharedDomain.OpEq, Value: "x"},
		sharedDomain.Criterion{Field: "a", Op: sharedDomain.OpEq, Value: "z"},
	)

	got := NewEngine().ApplyCriteria(coll, crit)

	assert.Equal(t, []Record{coll[0], coll[2]}, got)
}

func TestApply_Idempotent(t *testing.T) {
	coll := numbered(30)
	spec := FilterSpec{"n": "gt:10"}
	engine := NewEngine()

	once := engine.Apply(coll, spec)
	twice := engine.Apply(once, spec)

	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len(once), len(coll))
}

func TestApply_BoolCoercion(t *testing.T) {
	coll := []Record{{"f": false, "id": "a"}, {"f": true, "id": "b"}, {"f": "true", "id": "c"}}
	engine := NewEngine()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"literal true", "true", []string{"b"}},
		{"literal false", "false", []string{"a"}},
		{"eq con texto cualquiera es false", "eq:no", []string{"a"}},
		{"eq:TRUE es false para bools", "eq:TRUE", []string{"a", "c"}},
		{"eq true", "eq:true", []string{"b", "c"}},
		{"ne true", "ne:true", []string{"a"}},
		{"ne con texto cualquiera", "ne:no", []string{"b", "c"}},
		{"lista con true", "true,maybe", []string{"a", "b", "c"}},
		{"lista sin true", "yes,maybe", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Apply(coll, FilterSpec{"f": tt.raw})

			ids := make([]string, 0, len(got))
			for _, rec := range got {
				ids = append(ids, rec["id"].(string))
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestApply_NoFalsePositivesOnMixedTypes(t *testing.T) {
	coll := []Record{
		{"v": 5.0},
		{"v": "5"},
		{"v": true},
		{"v": false},
		{"v": nil},
		{"v": map[string]any{"x": 1.0}},
		{"v": []any{5.0}},
		{"w": 5.0},
	}
	engine := NewEngine()

	tests := []struct {
		raw   string
		match func(Value, bool) bool
	}{
		{"5", func(v Value, ok bool) bool { return Equal(v, ok, "5") }},
		{"eq:5", func(v Value, ok bool) bool { return Equal(v, ok, "5") }},
		{"ne:5", func(v Value, ok bool) bool { return ok && !Equal(v, ok, "5") }},
		{"lt:10", func(v Value, ok bool) bool { return LessThan(v, ok, "10") }},
		{"gt:1", func(v Value, ok bool) bool { return GreaterThan(v, ok, "1") }},
		{"gt:abc", func(v Value, ok bool) bool { return false }},
		{"true", func(v Value, ok bool) bool { return ok && v.Kind() == KindBool && Equal(v, ok, "true") }},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := engine.Apply(coll, FilterSpec{"v": tt.raw})

			assert.LessOrEqual(t, len(got), len(coll))
			for _, rec := range got {
				v, ok := Resolve(rec, "v")
				assert.True(t, tt.match(v, ok), "record %v no cumple %q", rec, tt.raw)
			}
		})
	}
}
