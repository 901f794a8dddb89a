package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
	"github.com/Gunvolt24/rushbuy/internal/store/watch"
	"github.com/Gunvolt24/rushbuy/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Проверка, что ProductStore удовлетворяет интерфейсу ProductStore.
var _ ports.ProductStore = (*ProductStore)(nil)

// ProductStore — долговечный кэш товаров на Postgres (pgxpool).
// Реактивность — через внутрипроцессный watch.Hub: сигнал после каждой
// успешной мутации, читатели перечитывают нужную выборку.
type ProductStore struct {
	pool *pgxpool.Pool
	hub  *watch.Hub
}

// NewProductStore - конструктор ProductStore.
func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool, hub: watch.NewHub()}
}

// storageErr — единообразная обёртка ошибок хранилища (domain.ErrStorage).
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}

const productColumns = `id, image_url, name, price::text, description, rating_score, category`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p        domain.Product
		priceRaw string
	)
	if err := row.Scan(&p.ID, &p.ImageURL, &p.Name, &priceRaw, &p.Description, &p.RatingScore, &p.Category); err != nil {
		return domain.Product{}, err
	}
	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return domain.Product{}, fmt.Errorf("parse price %q: %w", priceRaw, err)
	}
	p.Price = price
	return p, nil
}

func (s *ProductStore) queryProducts(ctx context.Context, op, query string, args ...any) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}

// All — весь кэш в стабильном порядке (по id).
func (s *ProductStore) All(ctx context.Context) ([]domain.Product, error) {
	return s.queryProducts(ctx, "select products",
		`SELECT `+productColumns+` FROM products ORDER BY id`)
}

// GetByID — точечное чтение; (nil, nil), если записи нет.
func (s *ProductStore) GetByID(ctx context.Context, id int) (*domain.Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("select product", err)
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return &p, nil
}

// UpsertMany — транзакционный батч-upsert по id (весь батч атомарен).
func (s *ProductStore) UpsertMany(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	transaction, err := s.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin", err)
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	for _, p := range products {
		if _, err = transaction.Exec(ctx, `
			INSERT INTO products (id, image_url, name, price, description, rating_score, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				image_url = EXCLUDED.image_url,
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				description = EXCLUDED.description,
				rating_score = EXCLUDED.rating_score,
				category = EXCLUDED.category
		`, p.ID, p.ImageURL, p.Name, p.Price.String(), p.Description, p.RatingScore, p.Category); err != nil {
			return storageErr("upsert product", err)
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return storageErr("commit", err)
	}

	metrics.CacheOps.WithLabelValues("upsert").Add(float64(len(products)))
	s.hub.Broadcast()
	return nil
}

// DeleteByID — удаление одной записи; отсутствие записи не ошибка.
func (s *ProductStore) DeleteByID(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete product", err)
	}
	if tag.RowsAffected() > 0 {
		metrics.CacheOps.WithLabelValues("delete").Inc()
		s.hub.Broadcast()
	}
	return nil
}

// ClearAll — полная очистка (используется свипом обновления категорий).
func (s *ProductStore) ClearAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM products`); err != nil {
		return storageErr("clear products", err)
	}
	metrics.CacheOps.WithLabelValues("clear").Inc()
	metrics.CacheSize.Set(0)
	s.hub.Broadcast()
	return nil
}

func (s *ProductStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, storageErr("count products", err)
	}
	metrics.CacheSize.Set(float64(n))
	return n, nil
}

// NextID — следующий локальный id (max + 1).
func (s *ProductStore) NextID(ctx context.Context) (int, error) {
	var id int
	if err := s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM products`).Scan(&id); err != nil {
		return 0, storageErr("next id", err)
	}
	return id, nil
}

// Search — ILIKE по name/description (без учёта регистра).
func (s *ProductStore) Search(ctx context.Context, substr string) ([]domain.Product, error) {
	pattern := "%" + substr + "%"
	return s.queryProducts(ctx, "search products", `
		SELECT `+productColumns+` FROM products
		WHERE name ILIKE $1 OR description ILIKE $1
		ORDER BY id
	`, pattern)
}

// ByCategory — точное совпадение категории (category = $1, с учётом регистра).
func (s *ProductStore) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.queryProducts(ctx, "select by category", `
		SELECT `+productColumns+` FROM products
		WHERE category = $1
		ORDER BY id
	`, category)
}

func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT category FROM products
		WHERE category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, storageErr("select categories", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, storageErr("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("categories rows", err)
	}
	return out, nil
}

func (s *ProductStore) Watch(ctx context.Context) (<-chan struct{}, func()) {
	return s.hub.Subscribe(ctx)
}
