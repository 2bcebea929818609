package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func field(recs []Record, key string) []any {
	out := make([]any, 0, len(recs))
	for _, r := range recs {
		out = append(out, r[key])
	}
	return out
}

func TestSortRecords_Numbers(t *testing.T) {
	coll := []Record{{"v": 3.0}, {"v": 1.0}, {"v": 2.0}}

	asc := SortRecords(coll, Sort{Field: "v"})
	desc := SortRecords(coll, Sort{Field: "v", Desc: true})

	assert.Equal(t, []any{1.0, 2.0, 3.0}, field(asc, "v"))
	assert.Equal(t, []any{3.0, 2.0, 1.0}, field(desc, "v"))
	assert.Equal(t, []any{3.0, 1.0, 2.0}, field(coll, "v"), "la entrada no se reordena")
}

func TestSortRecords_StableInBothDirections(t *testing.T) {
	coll := []Record{
		{"k": "b", "id": 1.0},
		{"k": "a", "id": 2.0},
		{"k": "b", "id": 3.0},
		{"k": "a", "id": 4.0},
	}

	asc := SortRecords(coll, Sort{Field: "k"})
	desc := SortRecords(coll, Sort{Field: "k", Desc: true})

	assert.Equal(t, []any{2.0, 4.0, 1.0, 3.0}, field(asc, "id"))
	assert.Equal(t, []any{1.0, 3.0, 2.0, 4.0}, field(desc, "id"))
}

func TestSortRecords_MissingValues(t *testing.T) {
	coll := []Record{{"v": 2.0, "id": "a"}, {"id": "b"}, {"v": nil, "id": "c"}, {"v": 1.0, "id": "d"}}

	asc := SortRecords(coll, Sort{Field: "v"})
	desc := SortRecords(coll, Sort{Field: "v", Desc: true})

	assert.Equal(t, []any{"b", "c", "d", "a"}, field(asc, "id"))
	assert.Equal(t, []any{"a", "d", "b", "c"}, field(desc, "id"))
}

func TestSortRecords_StringsAndDates(t *testing.T) {
	names := []Record{{"s": "beta"}, {"s": "Alpha"}, {"s": "gamma"}}
	assert.Equal(t, []any{"Alpha", "beta", "gamma"}, field(SortRecords(names, Sort{Field: "s"}), "s"))

	dates := []Record{
		{"at": "2024-03-01T10:00:00.000Z"},
		{"at": "2024-03-01T09:00:00+05:30"},
		{"at": "2023-12-31T23:00:00Z"},
	}
	got := SortRecords(dates, Sort{Field: "at"})
	assert.Equal(t, []any{"2023-12-31T23:00:00Z", "2024-03-01T09:00:00+05:30", "2024-03-01T10:00:00.000Z"}, field(got, "at"))
}

func TestSortRecords_DayFirstDates(t *testing.T) {
	coll := []Record{
		{"dt": "15/01/2024"},
		{"dt": "02/03/2024"},
		{"dt": "31/12/2023"},
		{"dt": "01/02/2024"},
	}

	asc := SortRecords(coll, Sort{Field: "dt"})
	desc := SortRecords(coll, Sort{Field: "dt", Desc: true})

	assert.Equal(t, []any{"31/12/2023", "15/01/2024", "01/02/2024", "02/03/2024"}, field(asc, "dt"))
	assert.Equal(t, []any{"02/03/2024", "01/02/2024", "15/01/2024", "31/12/2023"}, field(desc, "dt"))

	// textos con barras que no son fechas siguen comparando como strings
	paths := []Record{{"p": "b/a/c"}, {"p": "a/b/c"}}
	assert.Equal(t, []any{"a/b/c", "b/a/c"}, field(SortRecords(paths, Sort{Field: "p"}), "p"))
}

func TestParseOrder(t *testing.T) {
	assert.False(t, ParseOrder("asc", true))
	assert.True(t, ParseOrder("DESC", false))
	assert.True(t, ParseOrder("sideways", true))
	assert.False(t, ParseOrder("", false))
}
