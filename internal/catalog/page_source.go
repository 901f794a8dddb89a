package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
	"github.com/Gunvolt24/rushbuy/pkg/metrics"
)

// defaultPageSize — внутренняя единица пагинации. Участвует в арифметике
// курсоров независимо от запрошенного размера страницы; менять нельзя —
// сломается совместимость курсоров между последовательными загрузками.
const defaultPageSize = 10

// PageSource — источник одной страницы по намерению запроса (cache-aside).
// Фильтры неизменяемы на время жизни экземпляра; сам экземпляр не хранит
// состояния между загрузками и безопасен для последовательных вызовов Load.
type PageSource struct {
	store  ports.ProductStore
	client ports.CatalogClient

	textFilter     string
	categoryFilter string
}

// NewPageSource — конструктор. Пустые фильтры означают «просмотр всего».
func NewPageSource(store ports.ProductStore, client ports.CatalogClient, textFilter, categoryFilter string) *PageSource {
	return &PageSource{
		store:          store,
		client:         client,
		textFilter:     textFilter,
		categoryFilter: categoryFilter,
	}
}

// Load — выдать страницу position (0-базный индекс) размера pageSize.
//
// Холодный старт (position == 0, фильтры пусты): непустой кэш отдаётся как
// есть без похода в сеть; пустой — наполняется первой удалённой страницей.
// Все остальные комбинации идут в сеть всегда: кэш не используется как
// индекс для поиска и фильтрации.
func (s *PageSource) Load(ctx context.Context, cursor *int, pageSize int) (domain.ProductPage, error) {
	position := 0
	if cursor != nil {
		position = *cursor
	}
	limit := pageSize
	if limit <= 0 {
		limit = defaultPageSize
	}

	if position == 0 && s.textFilter == "" && s.categoryFilter == "" {
		cached, err := s.store.All(ctx)
		if err != nil {
			metrics.PageLoads.WithLabelValues("cache", "error").Inc()
			return domain.ProductPage{}, fmt.Errorf("page source: read cache: %w", err)
		}
		if len(cached) > 0 {
			// Кэш непустой — он авторитетен, даже если устарел.
			metrics.PageLoads.WithLabelValues("cache", "ok").Inc()
			return domain.ProductPage{
				Items:      cached,
				PrevCursor: nil,
				NextCursor: nextCursor(position, limit, len(cached)),
			}, nil
		}
	}

	remote, err := s.client.FetchPage(ctx, limit, position*defaultPageSize)
	if err != nil {
		metrics.PageLoads.WithLabelValues("remote", "error").Inc()
		return domain.ProductPage{}, fmt.Errorf("page source: fetch page %d: %w", position, err)
	}

	// Побочный эффект каждой удалённой страницы: освежить кэш. Пишем
	// записи до фильтрации — кэш хранит товары, а не результаты запроса.
	if len(remote.Items) > 0 {
		if err := s.store.UpsertMany(ctx, remote.Items); err != nil {
			metrics.PageLoads.WithLabelValues("remote", "error").Inc()
			return domain.ProductPage{}, fmt.Errorf("page source: populate cache: %w", err)
		}
	}

	items := s.filter(remote.Items)

	metrics.PageLoads.WithLabelValues("remote", "ok").Inc()
	return domain.ProductPage{
		Items:      items,
		PrevCursor: prevCursor(position),
		NextCursor: nextCursor(position, limit, len(items)),
	}, nil
}

// filter — фильтрация удалённой страницы в памяти. Текстовый фильтр имеет
// приоритет над категорийным; оба без учёта регистра. Регистронезависимое
// совпадение категории здесь намеренно расходится с точным ByCategory
// хранилища.
func (s *PageSource) filter(items []domain.Product) []domain.Product {
	switch {
	case s.textFilter != "":
		needle := strings.ToLower(s.textFilter)
		out := make([]domain.Product, 0, len(items))
		for _, p := range items {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				out = append(out, p)
			}
		}
		return out
	case s.categoryFilter != "":
		out := make([]domain.Product, 0, len(items))
		for _, p := range items {
			if strings.EqualFold(p.Category, s.categoryFilter) {
				out = append(out, p)
			}
		}
		return out
	default:
		return items
	}
}

// nextCursor — nil при пустой или неполной странице (сигнал конца данных),
// иначе position + limit/defaultPageSize.
func nextCursor(position, limit, got int) *int {
	if got == 0 || got < limit {
		return nil
	}
	next := position + limit/defaultPageSize
	return &next
}

// prevCursor — nil на нулевой позиции, иначе position-1.
func prevCursor(position int) *int {
	if position == 0 {
		return nil
	}
	prev := position - 1
	return &prev
}

// RefreshCursor — якорь возобновления после инвалидации: предпочитаем
// prev+1, иначе next-1, иначе nil (начать с начала).
func RefreshCursor(prev, next *int) *int {
	if prev != nil {
		anchor := *prev + 1
		return &anchor
	}
	if next != nil {
		anchor := *next - 1
		return &anchor
	}
	return nil
}
