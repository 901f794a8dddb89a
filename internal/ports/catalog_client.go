package ports

import (
	"context"

	"github.com/Gunvolt24/rushbuy/internal/domain"
)

// CatalogClient — удалённый каталог товаров. Намеренно «глупый»:
// без кэша и ретраев, вся политика отказоустойчивости живёт выше.
// Ошибки оборачивают domain.ErrNetwork / domain.ErrRemote / domain.ErrNotFound.
type CatalogClient interface {
	// FetchPage — страница товаров по limit/skip.
	FetchPage(ctx context.Context, limit, skip int) (*domain.RemotePage, error)

	// FetchByID — один товар; domain.ErrNotFound, если удалённая сторона его не знает.
	FetchByID(ctx context.Context, id int) (*domain.Product, error)
}
