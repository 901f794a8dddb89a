package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
	"github.com/Gunvolt24/rushbuy/internal/store/watch"
	"github.com/Gunvolt24/rushbuy/pkg/metrics"
)

// Проверка, что ProductStore удовлетворяет интерфейсу ProductStore.
var _ ports.ProductStore = (*ProductStore)(nil)

// ProductStore — кэш товаров в памяти: map по id под RWMutex,
// возврат копий, сигнал изменения через watch.Hub после каждой мутации.
type ProductStore struct {
	mu    sync.RWMutex
	items map[int]domain.Product
	hub   *watch.Hub
}

func NewProductStore() *ProductStore {
	return &ProductStore{
		items: make(map[int]domain.Product),
		hub:   watch.NewHub(),
	}
}

// All — снимок кэша, отсортированный по id (стабильный порядок выдачи).
func (s *ProductStore) All(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ProductStore) GetByID(_ context.Context, id int) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	cp := p
	return &cp, nil
}

// UpsertMany — вставка-или-замена по id; батч применяется атомарно под одной
// блокировкой (частичных записей не бывает).
func (s *ProductStore) UpsertMany(_ context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	s.mu.Lock()
	for _, p := range products {
		s.items[p.ID] = p
	}
	size := len(s.items)
	s.mu.Unlock()

	metrics.CacheOps.WithLabelValues("upsert").Add(float64(len(products)))
	metrics.CacheSize.Set(float64(size))
	s.hub.Broadcast()
	return nil
}

func (s *ProductStore) DeleteByID(_ context.Context, id int) error {
	s.mu.Lock()
	_, existed := s.items[id]
	delete(s.items, id)
	size := len(s.items)
	s.mu.Unlock()

	if existed {
		metrics.CacheOps.WithLabelValues("delete").Inc()
		metrics.CacheSize.Set(float64(size))
		s.hub.Broadcast()
	}
	return nil
}

func (s *ProductStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	s.items = make(map[int]domain.Product)
	s.mu.Unlock()

	metrics.CacheOps.WithLabelValues("clear").Inc()
	metrics.CacheSize.Set(0)
	s.hub.Broadcast()
	return nil
}

func (s *ProductStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// NextID — максимальный id + 1 (локальное назначение id при создании админом).
func (s *ProductStore) NextID(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxID := 0
	for id := range s.items {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1, nil
}

// Search — подстрока в name ИЛИ description без учёта регистра.
func (s *ProductStore) Search(_ context.Context, substr string) ([]domain.Product, error) {
	needle := strings.ToLower(substr)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0)
	for _, p := range s.items {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ByCategory — точное совпадение категории (с учётом регистра).
// Регистронезависимой эту выборку не делаем — см. контракт порта.
func (s *ProductStore) ByCategory(_ context.Context, category string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0)
	for _, p := range s.items {
		if p.Category == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *ProductStore) Categories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	seen := make(map[string]struct{}, len(s.items))
	for _, p := range s.items {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (s *ProductStore) Watch(ctx context.Context) (<-chan struct{}, func()) {
	return s.hub.Subscribe(ctx)
}
