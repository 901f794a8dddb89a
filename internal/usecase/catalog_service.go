package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/rushbuy/internal/catalog"
	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
	"github.com/Gunvolt24/rushbuy/pkg/metrics"
)

// Проверка, что фасад удовлетворяет интерфейсу транспортного слоя.
var _ ports.CatalogService = (*CatalogService)(nil)

const (
	defaultPageSize             = 10
	defaultSearchDebounce       = 300 * time.Millisecond
	defaultCategoryRefreshLimit = 100
	categoryRefreshTimeout      = 30 * time.Second
	notifyTimeout               = 5 * time.Second
)

// Config — настройки фасада; нулевые значения заменяются дефолтами.
type Config struct {
	PageSize             int
	SearchDebounce       time.Duration
	CategoryRefreshLimit int
}

// CatalogService — фасад каталога: три точки входа постраничного чтения
// (просмотр всего, поиск, категория), точечное чтение и админские мутации.
// Хранилище и клиент передаются один раз при конструировании; на каждое
// намерение запроса создаётся свой PageSource.
type CatalogService struct {
	store     ports.ProductStore
	client    ports.CatalogClient
	validator ports.ProductValidator
	notifier  ports.Notifier
	logger    ports.Logger
	cfg       Config

	categoryRefreshing atomic.Bool
}

// NewCatalogService — конструктор с явной передачей зависимостей.
func NewCatalogService(
	store ports.ProductStore,
	client ports.CatalogClient,
	validator ports.ProductValidator,
	notifier ports.Notifier,
	logger ports.Logger,
	cfg Config,
) *CatalogService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = defaultSearchDebounce
	}
	if cfg.CategoryRefreshLimit <= 0 {
		cfg.CategoryRefreshLimit = defaultCategoryRefreshLimit
	}
	return &CatalogService{
		store:     store,
		client:    client,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
	}
}

// Products — постраничный поток просмотра всего каталога.
func (s *CatalogService) Products() *catalog.Pager {
	return s.newPager("", "")
}

// Search — постраничный поток текстового поиска.
func (s *CatalogService) Search(query string) *catalog.Pager {
	return s.newPager(query, "")
}

// ByCategory — постраничный поток по категории.
func (s *CatalogService) ByCategory(category string) *catalog.Pager {
	return s.newPager("", category)
}

// SearchStream — поток пейджеров по мере устаканивания поискового ввода:
// дебаунс и подавление повторов, новый Pager на каждый изменившийся запрос.
func (s *CatalogService) SearchStream(ctx context.Context, queries <-chan string) <-chan *catalog.Pager {
	out := make(chan *catalog.Pager)
	settled := catalog.DebounceQueries(ctx, queries, s.cfg.SearchDebounce)

	go func() {
		defer close(out)
		for q := range settled {
			select {
			case out <- s.Search(q):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (s *CatalogService) newPager(textFilter, categoryFilter string) *catalog.Pager {
	src := catalog.NewPageSource(s.store, s.client, textFilter, categoryFilter)
	return catalog.NewPager(src, s.cfg.PageSize)
}

// ProductsPage — одна страница по намерению запроса, для транспортного слоя.
func (s *CatalogService) ProductsPage(ctx context.Context, req domain.PageRequest) (domain.ProductPage, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = s.cfg.PageSize
	}
	src := catalog.NewPageSource(s.store, s.client, req.TextFilter, req.CategoryFilter)
	return src.Load(ctx, req.Cursor, pageSize)
}

// GetProduct — cache-first: попадание в кэш отдаётся сразу; промах достаётся
// с удалённой стороны и кэшируется. Любой сбой удалённой стороны — мягкий
// промах (nil, nil): ошибка логируется, но не всплывает. Это намеренная
// асимметрия с жёсткими ошибками постраничной загрузки.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	cached, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if cached != nil {
		return cached, nil
	}

	remote, err := s.client.FetchByID(ctx, id)
	if err != nil {
		s.logger.Warnf(ctx, "product %d remote lookup failed, treating as absent: %v", id, err)
		return nil, nil
	}

	if err := s.store.UpsertMany(ctx, []domain.Product{*remote}); err != nil {
		// Запись найдена — проблема кэша не должна прятать результат.
		s.logger.Errorf(ctx, "cache product %d: %v", id, err)
	}
	return remote, nil
}

// AddProduct — создание товара админом. Кэш-only: удалённая сторона не
// затрагивается. При нулевом id назначается следующий локальный. Событие о
// новом товаре публикуется в фоне; сбой публикации только логируется.
func (s *CatalogService) AddProduct(ctx context.Context, product *domain.Product) error {
	if err := s.validator.Validate(ctx, product); err != nil {
		return fmt.Errorf("add product: %w", err)
	}

	if product.ID == 0 {
		id, err := s.store.NextID(ctx)
		if err != nil {
			return fmt.Errorf("add product: assign id: %w", err)
		}
		product.ID = id
	}

	if err := s.store.UpsertMany(ctx, []domain.Product{*product}); err != nil {
		return fmt.Errorf("add product %d: %w", product.ID, err)
	}

	go s.publishAdded(*product)
	return nil
}

func (s *CatalogService) publishAdded(product domain.Product) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.ProductAdded(ctx, product); err != nil {
		metrics.NotifyEvents.WithLabelValues("error").Inc()
		s.logger.Errorf(ctx, "publish product %d added: %v", product.ID, err)
		return
	}
	metrics.NotifyEvents.WithLabelValues("ok").Inc()
}

// UpdateProduct — правка товара админом; кэш-only, как и AddProduct.
func (s *CatalogService) UpdateProduct(ctx context.Context, product domain.Product) error {
	if err := s.validator.Validate(ctx, &product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if err := s.store.UpsertMany(ctx, []domain.Product{product}); err != nil {
		return fmt.Errorf("update product %d: %w", product.ID, err)
	}
	return nil
}

// DeleteProduct — удаление товара из кэша.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// Categories — текущие категории из кэша. Вызов запускает фоновое
// ограниченное обновление кэша с удалённой стороны; его завершение
// проявится через реактивное перечитывание (WatchCategories), а сбой
// только логируется.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	if s.categoryRefreshing.CompareAndSwap(false, true) {
		go s.refreshCategories()
	}

	return cats, nil
}

// refreshCategories — свип «очистить и наполнить заново»: один большой
// удалённый батч, ClearAll, upsert. Не транзакционен — читатель может
// увидеть краткое пустое окно, это принятое ограничение.
func (s *CatalogService) refreshCategories() {
	defer s.categoryRefreshing.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), categoryRefreshTimeout)
	defer cancel()

	page, err := s.client.FetchPage(ctx, s.cfg.CategoryRefreshLimit, 0)
	if err != nil {
		s.logger.Warnf(ctx, "category refresh fetch failed: %v", err)
		return
	}
	if len(page.Items) == 0 {
		return
	}

	if err := s.store.ClearAll(ctx); err != nil {
		s.logger.Errorf(ctx, "category refresh clear: %v", err)
		return
	}
	if err := s.store.UpsertMany(ctx, page.Items); err != nil {
		s.logger.Errorf(ctx, "category refresh repopulate: %v", err)
		return
	}
	s.logger.Infof(ctx, "category refresh done: %d products", len(page.Items))
}

// WatchCategories — реактивный список категорий: текущее значение сразу,
// далее перечитывание после каждого изменения кэша. Отписка — через cancel
// либо отмену контекста.
func (s *CatalogService) WatchCategories(ctx context.Context) (<-chan []string, func()) {
	out := make(chan []string, 1)
	signal, cancel := s.store.Watch(ctx)

	go func() {
		defer close(out)

		// Читаем напрямую из хранилища: перечитывание по сигналу не должно
		// само запускать новое фоновое обновление, иначе свип зациклится.
		emit := func() bool {
			cats, err := s.store.Categories(ctx)
			if err != nil {
				s.logger.Warnf(ctx, "watch categories: %v", err)
				return true
			}
			select {
			case out <- cats:
			case <-ctx.Done():
				return false
			}
			return true
		}

		if !emit() {
			return
		}
		for range signal {
			if !emit() {
				return
			}
		}
	}()

	return out, cancel
}
