package listing

import (
	"fmt"
	"net/url"
	"strconv"

	"animal-adoption/internal/domain/animals"
)

// PlaceholderCount es la cantidad de cards de la página de demo.
const PlaceholderCount = 12

const placeholderCountLabel = "X peluditos"

// Record es lo que recibe cada card.
type Record struct {
	IdentificationCode string
	Name               string
	Gender             string
	BirthDate          string
	ImageURL           string
}

// MockRecord es el registro fijo con el que se arma la página de demo.
var MockRecord = Record{
	IdentificationCode: "RD0012",
	Name:               "Lola",
	Gender:             "female",
	BirthDate:          "Tue, 12 Dec 2023 00:00:00 GMT",
	ImageURL:           "https://res.cloudinary.com/dnwfyqslx/image/upload/v1706385647/jddpb30yh9c6wovx07jh.jpg",
}

type Card struct {
	Key    int
	Animal Record
}

type ItemKind string

const (
	ItemPrev ItemKind = "prev"
	ItemPage ItemKind = "page"
	ItemNext ItemKind = "next"
)

type PageItem struct {
	Kind     ItemKind
	Label    string
	Number   int
	Disabled bool
	Active   bool
	// Href vacío = botón sin acción.
	Href string
}

type SortOption struct {
	Value    animals.Sort
	Label    string
	Selected bool
	Href     string
}

type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

type FilterGroup struct {
	Name    string
	Label   string
	Options []FilterOption
}

type Filter struct {
	Title  string
	Groups []FilterGroup
}

type Sort struct {
	Label   string
	Options []SortOption
}

type Page struct {
	Banner     string
	Filter     Filter
	Sort       Sort
	CountLabel string
	Cards      []Card
	Pagination []PageItem
}

var sortLabels = map[animals.Sort]string{
	animals.SortNewest:   "Más recientes",
	animals.SortOldest:   "Más antiguos",
	animals.SortNameAsc:  "Nombre (A-Z)",
	animals.SortNameDesc: "Nombre (Z-A)",
}

// placeholderSequence devuelve 0..n-1; solo sirve para repetir la card.
func placeholderSequence(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	return seq
}

// PlaceholderPage arma la página estática: 12 cards con MockRecord y
// paginado fijo [Anterior(deshabilitado), 1, 2, 3, Siguiente].
func PlaceholderPage() Page {
	seq := placeholderSequence(PlaceholderCount)
	cards := make([]Card, 0, len(seq))
	for _, i := range seq {
		cards = append(cards, Card{Key: i, Animal: MockRecord})
	}

	sorts := make([]SortOption, 0, len(animals.Sorts))
	for _, s := range animals.Sorts {
		sorts = append(sorts, SortOption{Value: s, Label: sortLabels[s]})
	}

	return Page{
		Banner:     "Banner",
		Filter:     Filter{Title: "Filtrar"},
		Sort:       Sort{Label: "Ordenar", Options: sorts},
		CountLabel: placeholderCountLabel,
		Cards:      cards,
		Pagination: []PageItem{
			{Kind: ItemPrev, Label: "Anterior", Disabled: true},
			{Kind: ItemPage, Label: "1", Number: 1},
			{Kind: ItemPage, Label: "2", Number: 2},
			{Kind: ItemPage, Label: "3", Number: 3},
			{Kind: ItemNext, Label: "Siguiente"},
		},
	}
}

// NewPage arma la página a partir de un resultado paginado.
func NewPage(res animals.PageResult) Page {
	cards := make([]Card, 0, len(res.Items))
	for i, a := range res.Items {
		cards = append(cards, Card{Key: i, Animal: recordFrom(a)})
	}

	q := res.Query
	sorts := make([]SortOption, 0, len(animals.Sorts))
	for _, s := range animals.Sorts {
		sq := q
		sq.Sort = s
		sq.Page = 1
		sorts = append(sorts, SortOption{
			Value:    s,
			Label:    sortLabels[s],
			Selected: s == q.Sort,
			Href:     href(sq),
		})
	}

	return Page{
		Banner:     "Banner",
		Filter:     Filter{Title: "Filtrar", Groups: filterGroups(q)},
		Sort:       Sort{Label: "Ordenar", Options: sorts},
		CountLabel: fmt.Sprintf("%d peluditos", res.Total),
		Cards:      cards,
		Pagination: pagination(res),
	}
}

// pagination: Anterior, hasta 3 páginas alrededor de la actual, Siguiente.
func pagination(res animals.PageResult) []PageItem {
	pages := res.Pages
	if pages < 1 {
		pages = 1
	}
	cur := res.Page
	if cur < 1 {
		cur = 1
	}
	if cur > pages {
		cur = pages
	}

	start := cur - 1
	if start > pages-2 {
		start = pages - 2
	}
	if start < 1 {
		start = 1
	}
	end := start + 2
	if end > pages {
		end = pages
	}

	at := func(n int) string {
		q := res.Query
		q.Page = n
		return href(q)
	}

	items := make([]PageItem, 0, end-start+3)

	prev := PageItem{Kind: ItemPrev, Label: "Anterior", Disabled: cur == 1}
	if !prev.Disabled {
		prev.Href = at(cur - 1)
	}
	items = append(items, prev)

	for n := start; n <= end; n++ {
		items = append(items, PageItem{
			Kind:   ItemPage,
			Label:  strconv.Itoa(n),
			Number: n,
			Active: n == cur,
			Href:   at(n),
		})
	}

	next := PageItem{Kind: ItemNext, Label: "Siguiente", Disabled: cur == pages}
	if !next.Disabled {
		next.Href = at(cur + 1)
	}
	return append(items, next)
}

func filterGroups(q animals.Query) []FilterGroup {
	group := func(name, label, selected string, opts ...[2]string) FilterGroup {
		g := FilterGroup{Name: name, Label: label}
		for _, o := range opts {
			g.Options = append(g.Options, FilterOption{Value: o[0], Label: o[1], Selected: o[0] == selected})
		}
		return g
	}

	return []FilterGroup{
		group("type", "Especie", string(q.Type),
			[2]string{string(animals.TypeDog), "Perro"},
			[2]string{string(animals.TypeCat), "Gato"}),
		group("gender", "Sexo", string(q.Gender),
			[2]string{string(animals.GenderMale), "Macho"},
			[2]string{string(animals.GenderFemale), "Hembra"}),
		group("size", "Tamaño", string(q.Size),
			[2]string{string(animals.SizeSmall), "Pequeño"},
			[2]string{string(animals.SizeMedium), "Mediano"},
			[2]string{string(animals.SizeLarge), "Grande"}),
		group("status", "Estado", string(q.Status),
			[2]string{string(animals.StatusNotAdopted), "En adopción"},
			[2]string{string(animals.StatusInProcess), "En proceso"},
			[2]string{string(animals.StatusAdopted), "Adoptado"}),
	}
}

func recordFrom(a animals.Animal) Record {
	r := Record{
		IdentificationCode: a.IdentificationCode,
		Name:               a.Name,
		Gender:             string(a.Gender),
		BirthDate:          animals.FormatDate(a.BirthDate),
	}
	if urls := a.ImageURLs(); len(urls) > 0 {
		r.ImageURL = urls[0]
	}
	return r
}

// href serializa la query en el mismo orden siempre (url.Values ordena por clave).
func href(q animals.Query) string {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("type", string(q.Type))
	set("gender", string(q.Gender))
	set("size", string(q.Size))
	set("status", string(q.Status))
	set("sort", string(q.Sort))
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return "?" + v.Encode()
}
