package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"animal-adoption/internal/domain/animals"
)

func seed(t *testing.T, r *AnimalRepo, name string, typ animals.Type, published time.Time) animals.Animal {
	t.Helper()
	a, err := r.Create(context.Background(), animals.Animal{
		Name:            name,
		Type:            typ,
		Status:          animals.StatusNotAdopted,
		PublicationDate: &published,
		CreatedAt:       published,
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return a
}

func TestAnimalRepo_CreateAssignsSequentialIDs(t *testing.T) {
	r := NewAnimalRepo()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a := seed(t, r, "Lola", animals.TypeDog, now)
	b := seed(t, r, "Michi", animals.TypeCat, now)

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1,2 got %d,%d", a.ID, b.ID)
	}
}

func TestAnimalRepo_SearchFiltersSortsAndPages(t *testing.T) {
	r := NewAnimalRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed(t, r, "Bruno", animals.TypeDog, base)
	seed(t, r, "Michi", animals.TypeCat, base.Add(time.Hour))
	seed(t, r, "Ares", animals.TypeDog, base.Add(2*time.Hour))
	seed(t, r, "Coco", animals.TypeDog, base.Add(3*time.Hour))

	items, total, err := r.Search(context.Background(), animals.Query{
		Type: animals.TypeDog, Sort: animals.SortNewest, Page: 1, PerPage: 2,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 dogs, got %d", total)
	}
	if len(items) != 2 || items[0].Name != "Coco" || items[1].Name != "Ares" {
		t.Fatalf("unexpected first page: %#v", items)
	}

	items, _, _ = r.Search(context.Background(), animals.Query{
		Type: animals.TypeDog, Sort: animals.SortNewest, Page: 2, PerPage: 2,
	})
	if len(items) != 1 || items[0].Name != "Bruno" {
		t.Fatalf("unexpected second page: %#v", items)
	}

	items, _, _ = r.Search(context.Background(), animals.Query{Sort: animals.SortNameAsc, Page: 1, PerPage: 10})
	if items[0].Name != "Ares" || items[3].Name != "Michi" {
		t.Fatalf("unexpected name order: %v, %v", items[0].Name, items[3].Name)
	}

	items, total, _ = r.Search(context.Background(), animals.Query{Sort: animals.SortNewest, Page: 9, PerPage: 10})
	if len(items) != 0 || total != 4 {
		t.Fatalf("expected empty page past the end, got %d items total=%d", len(items), total)
	}
}

func TestAnimalRepo_SearchHugePage(t *testing.T) {
	r := NewAnimalRepo()
	seed(t, r, "Lola", animals.TypeDog, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	items, total, err := r.Search(context.Background(), animals.Query{Sort: animals.SortNewest, Page: math.MaxInt, PerPage: 12})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 0 || total != 1 {
		t.Fatalf("expected empty page, got %d items total=%d", len(items), total)
	}
}

func TestAnimalRepo_ImagesAndRelated(t *testing.T) {
	r := NewAnimalRepo()
	a := seed(t, r, "Lola", animals.TypeDog, time.Now())
	ctx := context.Background()

	if err := r.AddImages(ctx, a.ID, []animals.Image{{ID: "i1", URL: "u1"}}); err != nil {
		t.Fatalf("add images: %v", err)
	}
	r.AddAdoption(a.ID)

	rel, err := r.CountRelated(ctx, a.ID)
	if err != nil {
		t.Fatalf("count related: %v", err)
	}
	if rel.Images != 1 || rel.Adoptions != 1 || rel.Testimonies != 0 {
		t.Fatalf("unexpected related: %#v", rel)
	}

	if err := r.ReplaceImages(ctx, a.ID, nil); err != nil {
		t.Fatalf("replace images: %v", err)
	}
	got, _ := r.GetByID(ctx, a.ID)
	if len(got.Images) != 0 {
		t.Fatalf("expected images cleared, got %#v", got.Images)
	}
}

func TestAnimalRepo_NotFound(t *testing.T) {
	r := NewAnimalRepo()
	ctx := context.Background()

	if _, err := r.GetByID(ctx, 42); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := r.Delete(ctx, 42); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := r.Update(ctx, animals.Animal{ID: 42, Name: "x"}); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
