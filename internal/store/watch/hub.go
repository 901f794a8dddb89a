// Пакет watch — внутрипроцессный «хаб» уведомлений об изменениях хранилища.
// Подписчик получает сигнал после каждой мутации; отстающий подписчик
// получает сигналы слитно (буфер канала — 1).
package watch

import (
	"context"
	"sync"
)

type Hub struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan struct{})}
}

// Subscribe — подписка на сигналы изменений. Отписка — через возвращённый
// cancel либо отменой контекста; канал закрывается при отписке.
func (h *Hub) Subscribe(ctx context.Context) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = ch
	h.mu.Unlock()

	done := make(chan struct{})

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(done)
			close(ch)
		})
	}

	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-done:
			}
		}()
	}

	return ch, cancel
}

// Broadcast — неблокирующая рассылка сигнала всем подписчикам.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default: // подписчик ещё не разобрал предыдущий сигнал — сливаем
		}
	}
}

// Len — число активных подписчиков (для тестов и метрик).
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
