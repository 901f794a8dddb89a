package catalog_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Gunvolt24/rushbuy/internal/catalog"
	"github.com/Gunvolt24/rushbuy/internal/remote"
	"github.com/Gunvolt24/rushbuy/internal/store/memory"
)

// Сквозной сценарий: пустой кэш, удалённая сторона отдаёт 10+4 товара.
// Две последовательные загрузки дают 14 записей, конец данных после второй,
// кэш наполнен первой страницей.
func TestBrowseAll_TwoRemotePages(t *testing.T) {
	const total = 14

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"products":[`)
		wrote := 0
		for i := skip; i < total && i < skip+limit; i++ {
			if wrote > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w,
				`{"id":%d,"thumbnail":"t%d","title":"Product %d","price":%d.50,"description":"d","rating":4.0,"category":"misc"}`,
				i+1, i+1, i+1, i+1)
			wrote++
		}
		fmt.Fprintf(w, `],"total":%d,"skip":%d,"limit":%d}`, total, skip, limit)
	}))
	defer srv.Close()

	store := memory.NewProductStore()
	client := remote.NewClient(srv.URL, time.Second)

	pager := catalog.NewPager(catalog.NewPageSource(store, client, "", ""), 10)

	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if !pager.HasNext() {
		t.Fatalf("expected next page after full first page")
	}
	if err := pager.LoadNext(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}

	if pager.HasNext() {
		t.Fatalf("expected end of data after short second page")
	}
	items := pager.Items()
	if len(items) != total {
		t.Fatalf("items = %d, want %d", len(items), total)
	}
	for i, p := range items {
		if p.ID != i+1 {
			t.Fatalf("items[%d].ID = %d, want %d", i, p.ID, i+1)
		}
	}

	// Обе удалённые страницы осели в кэше.
	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != total {
		t.Fatalf("cached = %d, want %d", count, total)
	}

	// Повторный browse-all с тёплым кэшем обслуживается без сети.
	srv.Close()
	warm := catalog.NewPageSource(store, client, "", "")
	page, err := warm.Load(context.Background(), nil, 10)
	if err != nil {
		t.Fatalf("warm load: %v", err)
	}
	if len(page.Items) != total {
		t.Fatalf("warm items = %d, want %d", len(page.Items), total)
	}
}
