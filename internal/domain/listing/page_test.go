package listing

import (
	"bytes"
	"strings"
	"testing"

	"animal-adoption/internal/domain/animals"
)

func TestPlaceholderPage_TwelveCardsSameRecord(t *testing.T) {
	p := PlaceholderPage()

	if len(p.Cards) != 12 {
		t.Fatalf("expected 12 cards, got %d", len(p.Cards))
	}
	for i, c := range p.Cards {
		if c.Key != i {
			t.Fatalf("card %d has key %d", i, c.Key)
		}
		if c.Animal != MockRecord {
			t.Fatalf("card %d bound to %#v", i, c.Animal)
		}
	}
	if p.CountLabel != "X peluditos" {
		t.Fatalf("count label: %q", p.CountLabel)
	}
}

func TestPlaceholderPage_Pagination(t *testing.T) {
	p := PlaceholderPage()

	want := []struct {
		kind     ItemKind
		label    string
		disabled bool
	}{
		{ItemPrev, "Anterior", true},
		{ItemPage, "1", false},
		{ItemPage, "2", false},
		{ItemPage, "3", false},
		{ItemNext, "Siguiente", false},
	}
	if len(p.Pagination) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(p.Pagination))
	}
	for i, w := range want {
		got := p.Pagination[i]
		if got.Kind != w.kind || got.Label != w.label || got.Disabled != w.disabled {
			t.Fatalf("item %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestRender_PlaceholderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, PlaceholderPage()); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	if n := strings.Count(html, `class="card animal-card"`); n != 12 {
		t.Fatalf("expected 12 rendered cards, got %d", n)
	}
	if n := strings.Count(html, `data-code="RD0012"`); n != 12 {
		t.Fatalf("expected every card to show RD0012, got %d", n)
	}
	if n := strings.Count(html, `class="page-item`); n != 5 {
		t.Fatalf("expected 5 pagination items, got %d", n)
	}
	if n := strings.Count(html, `page-item disabled`); n != 1 {
		t.Fatalf("expected exactly one disabled item, got %d", n)
	}

	order := []string{">Anterior<", ">1<", ">2<", ">3<", ">Siguiente<"}
	last := -1
	for _, s := range order {
		i := strings.Index(html, s)
		if i <= last {
			t.Fatalf("%q out of order", s)
		}
		last = i
	}

	for _, s := range []string{"Banner", "Filtrar", "Ordenar", "X peluditos"} {
		if !strings.Contains(html, s) {
			t.Fatalf("missing %q", s)
		}
	}
}

func pageResult(page, pages, total int) animals.PageResult {
	return animals.PageResult{
		Total:   total,
		Page:    page,
		PerPage: 12,
		Pages:   pages,
		Query:   animals.Query{Sort: animals.SortNewest, Page: page, PerPage: 12},
	}
}

func labels(items []PageItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestNewPage_PaginationWindow(t *testing.T) {
	cases := []struct {
		name        string
		page, pages int
		want        []string
		active      string
		prevOff     bool
		nextOff     bool
	}{
		{"first of three", 1, 3, []string{"Anterior", "1", "2", "3", "Siguiente"}, "1", true, false},
		{"last of three", 3, 3, []string{"Anterior", "1", "2", "3", "Siguiente"}, "3", false, true},
		{"middle of ten", 5, 10, []string{"Anterior", "4", "5", "6", "Siguiente"}, "5", false, false},
		{"last of ten", 10, 10, []string{"Anterior", "8", "9", "10", "Siguiente"}, "10", false, true},
		{"single page", 1, 1, []string{"Anterior", "1", "Siguiente"}, "1", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := NewPage(pageResult(tc.page, tc.pages, tc.pages*12)).Pagination

			got := labels(items)
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if items[0].Disabled != tc.prevOff {
				t.Fatalf("prev disabled = %v", items[0].Disabled)
			}
			if items[len(items)-1].Disabled != tc.nextOff {
				t.Fatalf("next disabled = %v", items[len(items)-1].Disabled)
			}
			for _, it := range items {
				if it.Active != (it.Kind == ItemPage && it.Label == tc.active) {
					t.Fatalf("unexpected active state on %+v", it)
				}
			}
		})
	}
}

func TestNewPage_CardsAndLinks(t *testing.T) {
	res := pageResult(2, 3, 30)
	res.Query.Type = animals.TypeCat
	res.Items = []animals.Animal{
		{ID: 1, IdentificationCode: "RC0001", Name: "Michi", Gender: animals.GenderMale,
			Images: []animals.Image{{URL: "https://img/1.jpg"}}},
		{ID: 2, IdentificationCode: "RC0002", Name: "Nube"},
	}

	p := NewPage(res)

	if len(p.Cards) != 2 || p.Cards[0].Animal.Name != "Michi" || p.Cards[1].Key != 1 {
		t.Fatalf("unexpected cards: %#v", p.Cards)
	}
	if p.Cards[0].Animal.ImageURL != "https://img/1.jpg" || p.Cards[1].Animal.ImageURL != "" {
		t.Fatalf("unexpected image urls: %#v", p.Cards)
	}
	if p.CountLabel != "30 peluditos" {
		t.Fatalf("count label: %q", p.CountLabel)
	}

	next := p.Pagination[len(p.Pagination)-1]
	if next.Href != "?page=3&per_page=12&sort=newest&type=cat" {
		t.Fatalf("next href: %q", next.Href)
	}

	var selected []animals.Sort
	for _, o := range p.Sort.Options {
		if o.Selected {
			selected = append(selected, o.Value)
		}
		if !strings.Contains(o.Href, "page=1") {
			t.Fatalf("sort link should reset page: %q", o.Href)
		}
	}
	if len(selected) != 1 || selected[0] != animals.SortNewest {
		t.Fatalf("selected sorts: %v", selected)
	}

	for _, g := range p.Filter.Groups {
		if g.Name != "type" {
			continue
		}
		for _, o := range g.Options {
			if o.Selected != (o.Value == "cat") {
				t.Fatalf("type option %+v", o)
			}
		}
	}
}
