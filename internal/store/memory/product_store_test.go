package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/shopspring/decimal"
)

func newProduct(id int, name string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        name,
		Price:       decimal.NewFromFloat(9.99),
		Description: "описание " + name,
		Category:    "Shoes",
	}
}

func TestUpsertGet(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	// miss
	got, err := s.GetByID(ctx, 1)
	if err != nil || got != nil {
		t.Fatalf("expected miss, got %v err=%v", got, err)
	}

	if err := s.UpsertMany(ctx, []domain.Product{newProduct(1, "Sneaker")}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err = s.GetByID(ctx, 1)
	if err != nil || got == nil || got.Name != "Sneaker" {
		t.Fatalf("expected hit for id=1, got %v err=%v", got, err)
	}
}

func TestUpsert_IsIdempotentLastWriteWins(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	p := newProduct(7, "Old name")
	_ = s.UpsertMany(ctx, []domain.Product{p})

	p.Name = "New name"
	_ = s.UpsertMany(ctx, []domain.Product{p})

	n, _ := s.Count(ctx)
	if n != 1 {
		t.Fatalf("want exactly one record, got %d", n)
	}
	got, _ := s.GetByID(ctx, 7)
	if got == nil || got.Name != "New name" {
		t.Fatalf("want latest name, got %+v", got)
	}
}

func TestAll_SortedByID(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	_ = s.UpsertMany(ctx, []domain.Product{newProduct(3, "c"), newProduct(1, "a"), newProduct(2, "b")})

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 || all[0].ID != 1 || all[1].ID != 2 || all[2].ID != 3 {
		t.Fatalf("want ids 1,2,3 in order, got %+v", all)
	}
}

func TestSearch_CaseInsensitiveNameOrDescription(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	a := newProduct(1, "Red Sneaker")
	b := newProduct(2, "Jacket")
	b.Description = "утеплённый, со sneaker-вставками"
	c := newProduct(3, "Hat")
	c.Description = "шерстяная"
	_ = s.UpsertMany(ctx, []domain.Product{a, b, c})

	found, err := s.Search(ctx, "SNEAKER")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 2 || found[0].ID != 1 || found[1].ID != 2 {
		t.Fatalf("want ids 1 and 2, got %+v", found)
	}
}

func TestByCategory_ExactMatchOnly(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	p := newProduct(1, "Sneaker")
	p.Category = "Shoes"
	_ = s.UpsertMany(ctx, []domain.Product{p})

	// точное совпадение
	got, err := s.ByCategory(ctx, "Shoes")
	if err != nil || len(got) != 1 {
		t.Fatalf("want 1 product for exact category, got %v err=%v", got, err)
	}

	// другой регистр — пусто: выборка по категории регистрозависимая
	got, err = s.ByCategory(ctx, "shoes")
	if err != nil || len(got) != 0 {
		t.Fatalf("lowercase category must not match, got %v err=%v", got, err)
	}
}

func TestCategories_DistinctSorted(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	a := newProduct(1, "a")
	a.Category = "shoes"
	b := newProduct(2, "b")
	b.Category = "beauty"
	c := newProduct(3, "c")
	c.Category = "shoes"
	_ = s.UpsertMany(ctx, []domain.Product{a, b, c})

	cats, err := s.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 || cats[0] != "beauty" || cats[1] != "shoes" {
		t.Fatalf("want [beauty shoes], got %v", cats)
	}
}

func TestClearAll_EmptiesStore(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	_ = s.UpsertMany(ctx, []domain.Product{newProduct(1, "a"), newProduct(2, "b")})
	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	n, _ := s.Count(ctx)
	if n != 0 {
		t.Fatalf("want empty store, got %d", n)
	}
}

func TestNextID(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	id, _ := s.NextID(ctx)
	if id != 1 {
		t.Fatalf("empty store: want 1, got %d", id)
	}

	_ = s.UpsertMany(ctx, []domain.Product{newProduct(41, "x")})
	id, _ = s.NextID(ctx)
	if id != 42 {
		t.Fatalf("want 42, got %d", id)
	}
}

func TestWatch_SignalsOnMutation(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	ch, cancel := s.Watch(ctx)
	defer cancel()

	_ = s.UpsertMany(ctx, []domain.Product{newProduct(1, "a")})

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("expected change signal after upsert")
	}
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	_ = s.UpsertMany(ctx, []domain.Product{newProduct(1, "Original")})

	got, _ := s.GetByID(ctx, 1)
	got.Name = "Mutated"

	again, _ := s.GetByID(ctx, 1)
	if again.Name != "Original" {
		t.Fatalf("store content must not be affected by caller mutation: %+v", again)
	}
}
