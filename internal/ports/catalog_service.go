package ports

import (
	"context"

	"github.com/Gunvolt24/rushbuy/internal/domain"
)

// CatalogService — фасад каталога, каким его видит транспортный слой.
type CatalogService interface {
	// ProductsPage — одна страница по намерению запроса (browse / search / category).
	ProductsPage(ctx context.Context, req domain.PageRequest) (domain.ProductPage, error)

	// GetProduct — cache-first чтение одного товара; (nil, nil) при отсутствии
	// и при сбое удалённой стороны (мягкий промах).
	GetProduct(ctx context.Context, id int) (*domain.Product, error)

	// Categories — текущий список категорий; подписка запускает фоновое обновление.
	Categories(ctx context.Context) ([]string, error)

	AddProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, id int) error
}
