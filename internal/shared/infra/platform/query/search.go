package query

import "strings"

// Searcher busca texto libre en una lista fija de paths.
// Los campos fuera de la lista nunca son buscables.
type Searcher struct {
	Paths []string
}

func NewSearcher(paths ...string) Searcher {
	return Searcher{Paths: append([]string(nil), paths...)}
}

// Matches hace una búsqueda por subcadena sin distinguir mayúsculas en cada path.
func (s Searcher) Matches(rec Record, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, path := range s.Paths {
		v, ok := Resolve(rec, path)
		if !ok || !v.IsScalar() {
			continue
		}
		if strings.Contains(strings.ToLower(v.String()), term) {
			return true
		}
	}
	return false
}
