package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/rushbuy/internal/domain"
	"github.com/Gunvolt24/rushbuy/internal/ports"
)

// Проверка, что KafkaNotifier удовлетворяет порту приложения.
var _ ports.Notifier = (*KafkaNotifier)(nil)

// writer — минимальный контракт над kafka.Writer,
// чтобы легко подменять его моками в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier — издатель событий каталога в Kafka. Одно событие на
// добавленный товар; ключ сообщения — id товара, чтобы события одного
// товара попадали в одну партицию.
type KafkaNotifier struct {
	writer    writer
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

// NewKafkaNotifier — конструктор поверх kafka.Writer с балансировкой
// least-bytes и подтверждением от всех реплик.
func NewKafkaNotifier(cfg *Config, log ports.Logger) *KafkaNotifier {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: cfg.batchTimeout(),
	}
	return &KafkaNotifier{writer: w, topic: cfg.Topic, log: log}
}

// productAddedEvent — формат события нового товара.
type productAddedEvent struct {
	Event      string         `json:"event"`
	Product    domain.Product `json:"product"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// ProductAdded — публикация события о новом товаре. Ошибка возвращается
// вызывающему; решение «глотать или всплывать» принимает он.
func (n *KafkaNotifier) ProductAdded(ctx context.Context, product domain.Product) error {
	payload, err := json.Marshal(productAddedEvent{
		Event:      "product_added",
		Product:    product,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notify: marshal product %d: %w", product.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", product.ID)),
		Value: payload,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("notify: publish product %d to %s: %w", product.ID, n.topic, err)
	}

	n.log.Infof(ctx, "published product_added id=%d topic=%s", product.ID, n.topic)
	return nil
}

// Close — закрывает writer. Вызывается при остановке приложения.
func (n *KafkaNotifier) Close() (retErr error) {
	n.closeOnce.Do(func() {
		retErr = n.writer.Close()
	})
	return retErr
}
