//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/rushbuy/internal/domain"

	pgstore "github.com/Gunvolt24/rushbuy/internal/store/postgres"
	"github.com/Gunvolt24/rushbuy/internal/testutil"
)

func startStore(t *testing.T) (*pgstore.ProductStore, context.Context) {
	t.Helper()

	// длинный контекст — только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	// миграции
	require.NoError(t, testutil.ApplyMigrationsGoose(pg.DSN))

	// короткий контекст — на сами БД-операции
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	pool, err := pgxpool.New(ctx, pg.DSN)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pgstore.NewProductStore(pool), ctx
}

// 1) Upsert и точечное чтение
func TestStore_UpsertAndGet_TC(t *testing.T) {
	t.Parallel()
	store, ctx := startStore(t)

	p := testutil.MakeProduct(1, testutil.WithPrice("49.90"))
	require.NoError(t, store.UpsertMany(ctx, []domain.Product{p}))

	got, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, p.Name, got.Name)
	require.True(t, got.Price.Equal(p.Price), "price mismatch: %s != %s", got.Price, p.Price)
}

// 2) Повторный upsert тем же id — last-write-wins, запись одна
func TestStore_Upsert_LastWriteWins_TC(t *testing.T) {
	t.Parallel()
	store, ctx := startStore(t)

	p := testutil.MakeProduct(7, testutil.WithName("first"))
	require.NoError(t, store.UpsertMany(ctx, []domain.Product{p}))

	p.Name = "second"
	require.NoError(t, store.UpsertMany(ctx, []domain.Product{p}))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	got, err := store.GetByID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "second", got.Name)
}

// 3) Search регистронезависимый, ByCategory — точное совпадение
func TestStore_SearchAndCategoryCase_TC(t *testing.T) {
	t.Parallel()
	store, ctx := startStore(t)

	shoe := testutil.MakeProduct(1, testutil.WithName("Red Sneaker"), testutil.WithCategory("Shoes"))
	hat := testutil.MakeProduct(2, testutil.WithName("Hat"),
		testutil.WithDescription("вязаная, sneaker-style"), testutil.WithCategory("Accessories"))
	require.NoError(t, store.UpsertMany(ctx, []domain.Product{shoe, hat}))

	found, err := store.Search(ctx, "SNEAKER")
	require.NoError(t, err)
	require.Len(t, found, 2)

	exact, err := store.ByCategory(ctx, "Shoes")
	require.NoError(t, err)
	require.Len(t, exact, 1)

	lower, err := store.ByCategory(ctx, "shoes")
	require.NoError(t, err)
	require.Empty(t, lower, "category match is case-sensitive")
}

// 4) Categories + ClearAll
func TestStore_CategoriesAndClear_TC(t *testing.T) {
	t.Parallel()
	store, ctx := startStore(t)

	a := testutil.MakeProduct(1, testutil.WithCategory("beauty"))
	b := testutil.MakeProduct(2, testutil.WithCategory("shoes"))
	c := testutil.MakeProduct(3, testutil.WithCategory("beauty"))
	require.NoError(t, store.UpsertMany(ctx, []domain.Product{a, b, c}))

	cats, err := store.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"beauty", "shoes"}, cats)

	require.NoError(t, store.ClearAll(ctx))
	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

// 5) Watch сигналит после мутации
func TestStore_WatchSignals_TC(t *testing.T) {
	t.Parallel()
	store, ctx := startStore(t)

	ch, cancel := store.Watch(ctx)
	defer cancel()

	require.NoError(t, store.UpsertMany(ctx, []domain.Product{testutil.MakeProduct(1)}))

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected change signal after upsert")
	}
}
