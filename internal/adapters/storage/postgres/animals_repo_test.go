package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"animal-adoption/internal/domain/animals"
)

func TestSearchWhere_NumbersPlaceholdersInOrder(t *testing.T) {
	where, args := searchWhere(animals.Query{
		Type:   animals.TypeCat,
		Status: animals.StatusNotAdopted,
	})

	want := " WHERE type = $1 AND status = $2"
	if where != want {
		t.Fatalf("where = %q, want %q", where, want)
	}
	if len(args) != 2 || args[0] != "cat" || args[1] != "not_adopted" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestSearchWhere_Empty(t *testing.T) {
	where, args := searchWhere(animals.Query{})
	if where != "" || len(args) != 0 {
		t.Fatalf("expected no filter, got %q %#v", where, args)
	}
}

func TestOrderBy_DefaultsToNewest(t *testing.T) {
	if got := orderBy(""); got != orderBy(animals.SortNewest) {
		t.Fatalf("unexpected default order: %q", got)
	}
	if got := orderBy(animals.SortNameAsc); got != "LOWER(name) ASC, id ASC" {
		t.Fatalf("unexpected name order: %q", got)
	}
}

// Corre contra una base real solo si TEST_DB_DSN está seteado.
func TestAnimalsRepo_Integration(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewAnimalsRepo(db)
	now := time.Now().UTC().Truncate(time.Second)

	a, err := repo.Create(ctx, animals.Animal{
		Name:      "Lola",
		Type:      animals.TypeDog,
		Gender:    animals.GenderFemale,
		BirthDate: time.Date(2023, 12, 12, 0, 0, 0, 0, time.UTC),
		Status:    animals.StatusNotAdopted,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() {
		_ = repo.ReplaceImages(ctx, a.ID, nil)
		_ = repo.Delete(ctx, a.ID)
	}()

	a.IdentificationCode = animals.IdentificationCode(a.Type, a.ID)
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.AddImages(ctx, a.ID, []animals.Image{{ID: "img-" + a.IdentificationCode, URL: "https://example.test/a.jpg"}}); err != nil {
		t.Fatalf("add images: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IdentificationCode != a.IdentificationCode || len(got.Images) != 1 {
		t.Fatalf("unexpected animal: %#v", got)
	}

	rel, err := repo.CountRelated(ctx, a.ID)
	if err != nil {
		t.Fatalf("count related: %v", err)
	}
	if rel.Images != 1 {
		t.Fatalf("expected 1 related image, got %#v", rel)
	}
}
