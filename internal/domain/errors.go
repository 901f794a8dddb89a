package domain

import "errors"

// Таксономия ошибок каталога. Конкретные слои оборачивают причины через
// fmt.Errorf("%w: ...", ErrX), вызывающие различают их errors.Is.
var (
	// ErrStorage — сбой локального хранилища; не ретраится автоматически.
	ErrStorage = errors.New("storage failure")

	// ErrNetwork — транспортный сбой при обращении к удалённому каталогу;
	// ретраится повторной загрузкой страницы.
	ErrNetwork = errors.New("network failure")

	// ErrRemote — не-2xx ответ или некорректное тело; ретраится так же, как ErrNetwork.
	ErrRemote = errors.New("remote failure")

	// ErrNotFound — товара нет на удалённой стороне; терминальная для одиночного запроса.
	ErrNotFound = errors.New("product not found")
)

// Retryable — можно ли повторить операцию тем же запросом.
func Retryable(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrRemote)
}
