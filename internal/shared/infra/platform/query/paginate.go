package query

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageSpec es la página pedida, 1-based.
type PageSpec struct {
	Page  int
	Limit int
}

// Normalize fuerza page >= 1 y limit en [1, MaxLimit].
func (p PageSpec) Normalize() PageSpec {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// PageResult es una ventana de la colección más los metadatos de paginación.
type PageResult[T any] struct {
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Paginate recorta items a la página pedida. Una página fuera de rango devuelve Data vacío
// con el total intacto.
func Paginate[T any](items []T, page, limit int) PageResult[T] {
	spec := PageSpec{Page: page, Limit: limit}.Normalize()
	total := len(items)
	pages := (total + spec.Limit - 1) / spec.Limit

	data := []T{}
	// se compara con pages antes de multiplicar: una page enorme desbordaría start
	if spec.Page <= pages {
		start := (spec.Page - 1) * spec.Limit
		end := min(start+spec.Limit, total)
		data = append(data, items[start:end]...)
	}

	return PageResult[T]{
		Data:    data,
		Total:   total,
		Page:    spec.Page,
		Limit:   spec.Limit,
		Pages:   pages,
		HasNext: spec.Page < pages,
		HasPrev: spec.Page > 1,
	}
}

// MapPage transforma los elementos de una página conservando los metadatos.
func MapPage[T, U any](p PageResult[T], fn func(T) U) PageResult[U] {
	data := make([]U, 0, len(p.Data))
	for _, item := range p.Data {
		data = append(data, fn(item))
	}
	return PageResult[U]{
		Data:    data,
		Total:   p.Total,
		Page:    p.Page,
		Limit:   p.Limit,
		Pages:   p.Pages,
		HasNext: p.HasNext,
		HasPrev: p.HasPrev,
	}
}
