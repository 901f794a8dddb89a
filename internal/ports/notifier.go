package ports

import (
	"context"

	"github.com/Gunvolt24/rushbuy/internal/domain"
)

// Notifier — публикация событий каталога (например, «новый товар»).
// Доставка уведомлений пользователям — забота внешнего сервиса.
type Notifier interface {
	ProductAdded(ctx context.Context, product domain.Product) error
	Close() error
}
