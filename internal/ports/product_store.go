package ports

import (
	"context"

	"github.com/Gunvolt24/rushbuy/internal/domain"
)

// ProductStore — интерфейс локального кэша товаров (таблица "products").
// Требования к реализации: потокобезопасность; upsert атомарен на батч;
// возврат копий сущностей. Ошибки хранилища оборачивают domain.ErrStorage.
type ProductStore interface {
	// All — одномоментный снимок всего кэша.
	All(ctx context.Context) ([]domain.Product, error)

	// GetByID — точечное чтение; (nil, nil) при отсутствии записи.
	// Без сетевого фолбэка — это забота вызывающего.
	GetByID(ctx context.Context, id int) (*domain.Product, error)

	// UpsertMany — вставка-или-замена по id; идемпотентен; весь батч атомарен.
	UpsertMany(ctx context.Context, products []domain.Product) error

	// DeleteByID — удаление одной записи; отсутствие записи не ошибка.
	DeleteByID(ctx context.Context, id int) error

	// ClearAll — полная очистка кэша. Используется только свипом обновления
	// категорий; читатели обязаны переживать краткое пустое окно.
	ClearAll(ctx context.Context) error

	// Count — размер кэша (Count == 0 означает «холодный» кэш).
	Count(ctx context.Context) (int, error)

	// NextID — следующий свободный локальный id (для создания товара админом).
	NextID(ctx context.Context) (int, error)

	// Search — подстрока в name ИЛИ description, без учёта регистра.
	Search(ctx context.Context, substr string) ([]domain.Product, error)

	// ByCategory — точное совпадение категории с учётом регистра.
	// Асимметрия с регистронезависимым Search сохранена намеренно.
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// Categories — отсортированный список различных категорий кэша.
	Categories(ctx context.Context) ([]string, error)

	// Watch — сигнал об изменении содержимого (срабатывает после каждой
	// мутации, слившись при отставании подписчика). Отписка — через cancel.
	Watch(ctx context.Context) (<-chan struct{}, func())
}
