package animals

import "math"

type Sort string

const (
	SortNewest   Sort = "newest"
	SortOldest   Sort = "oldest"
	SortNameAsc  Sort = "name_asc"
	SortNameDesc Sort = "name_desc"
)

// Sorts en el orden en que se muestran en el dropdown.
var Sorts = []Sort{SortNewest, SortOldest, SortNameAsc, SortNameDesc}

func (s Sort) Valid() bool {
	for _, v := range Sorts {
		if s == v {
			return true
		}
	}
	return false
}

// Query filtra, ordena y pagina el listado. Campos vacíos = sin filtro.
type Query struct {
	Type   Type
	Gender Gender
	Size   Size
	Status Status

	Sort    Sort
	Page    int
	PerPage int
}

// Offset nunca es negativo; si no entra en un int satura en math.MaxInt.
func (q Query) Offset() int {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PerPage {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PerPage
}

func (q Query) Matches(a Animal) bool {
	if q.Type != "" && a.Type != q.Type {
		return false
	}
	if q.Gender != "" && a.Gender != q.Gender {
		return false
	}
	if q.Size != "" && a.Size != q.Size {
		return false
	}
	if q.Status != "" && a.Status != q.Status {
		return false
	}
	return true
}

type PageResult struct {
	Items   []Animal
	Total   int
	Page    int
	PerPage int
	Pages   int
	Query   Query
}
