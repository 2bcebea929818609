package query

import (
	"strconv"
	"strings"
)

// Defaults son los valores por endpoint cuando faltan parámetros o son inválidos.
type Defaults struct {
	SortBy string
	Desc   bool
	Limit  int
}

// Query es la petición completa: filtros, orden y página.
type Query struct {
	Filters FilterSpec
	Sort    Sort
	Page    PageSpec
}

// ParseParams separa los parámetros de control del resto, que pasan a ser filtros.
// page/limit no numéricos usan los valores por defecto; los límites se normalizan después.
func ParseParams(params map[string]string, d Defaults) Query {
	limit := d.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	q := Query{
		Filters: FilterSpec{},
		Sort:    Sort{Field: d.SortBy, Desc: d.Desc},
		Page:    PageSpec{Page: DefaultPage, Limit: limit},
	}

	for k, v := range params {
		switch k {
		case ParamPage:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				q.Page.Page = n
			}
		case ParamLimit:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				q.Page.Limit = n
			}
		case ParamSortBy:
			if s := strings.TrimSpace(v); s != "" {
				q.Sort.Field = s
			}
		case ParamSortOrder:
			// vacío conserva el orden del endpoint; un valor desconocido ordena desc
			if strings.TrimSpace(v) != "" {
				q.Sort.Desc = ParseOrder(v, true)
			}
		default:
			q.Filters[k] = v
		}
	}

	q.Page = q.Page.Normalize()
	return q
}

// Execute corre filtro, orden y paginación en ese orden. Total cuenta los records
// filtrados, antes de paginar.
func (e *Engine) Execute(coll []Record, q Query) PageResult[Record] {
	filtered := e.Apply(coll, q.Filters)
	sorted := SortRecords(filtered, q.Sort)
	return Paginate(sorted, q.Page.Page, q.Page.Limit)
}
