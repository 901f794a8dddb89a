package notify

import (
	"context"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
)

var _ ports.Notifier = (*NoopNotifier)(nil)

// NoopNotifier — заглушка для запуска без Kafka (брокеры не настроены).
type NoopNotifier struct{}

func (NoopNotifier) ProductAdded(context.Context, domain.Product) error { return nil }

func (NoopNotifier) Close() error { return nil }
