package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate_ScenarioC(t *testing.T) {
	items := numbered(25)

	page := Paginate(items, 3, 10)

	require.Len(t, page.Data, 5)
	assert.Equal(t, 21.0, page.Data[0]["n"])
	assert.Equal(t, 25.0, page.Data[4]["n"])
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestPaginate_Clamping(t *testing.T) {
	items := numbered(250)

	tests := []struct {
		name          string
		page, limit   int
		wantPage      int
		wantLimit     int
		wantDataCount int
	}{
		{"page cero", 0, 10, 1, 10, 10},
		{"page negativa", -4, 10, 1, 10, 10},
		{"limit excesivo", 1, 1000, 1, 100, 100},
		{"limit cero", 1, 0, 1, 1, 1},
		{"limit negativo", 2, -5, 2, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(items, tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Len(t, p.Data, tt.wantDataCount)
			assert.Equal(t, 250, p.Total)
		})
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	p := Paginate(numbered(5), 9, 10)

	assert.NotNil(t, p.Data)
	assert.Empty(t, p.Data)
	assert.Equal(t, 5, p.Total)
	assert.Equal(t, 1, p.Pages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	p := Paginate([]int{1, 2, 3}, math.MaxInt64, 10)

	assert.NotNil(t, p.Data)
	assert.Empty(t, p.Data)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 1, p.Pages)
	assert.Equal(t, math.MaxInt64, p.Page)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)

	big := Paginate(numbered(250), math.MaxInt64/50, MaxLimit)
	assert.Empty(t, big.Data)
	assert.Equal(t, 250, big.Total)
	assert.Equal(t, 3, big.Pages)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]Record{}, 1, 10)

	assert.Equal(t, 0, p.Pages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestPaginate_PagesCoverCollection(t *testing.T) {
	items := numbered(37)
	const limit = 7

	first := Paginate(items, 1, limit)
	var all []Record
	for page := 1; page <= first.Pages; page++ {
		p := Paginate(items, page, limit)
		assert.Equal(t, first.Total, p.Total)
		all = append(all, p.Data...)
	}

	assert.Equal(t, items, all)
}

func TestMapPage(t *testing.T) {
	p := Paginate([]int{1, 2, 3}, 1, 2)

	mapped := MapPage(p, func(i int) string { return string(rune('a' + i - 1)) })

	assert.Equal(t, []string{"a", "b"}, mapped.Data)
	assert.Equal(t, p.Total, mapped.Total)
	assert.True(t, mapped.HasNext)
}
