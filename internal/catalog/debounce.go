package catalog

import (
	"context"
	"time"
)

// DebounceQueries — гасит дребезг поискового ввода: значение уходит дальше
// только после delay тишины и только если отличается от предыдущего
// отправленного. Защищает удалённый каталог от запроса на каждое нажатие.
// Выходной канал закрывается при закрытии входного либо отмене контекста.
func DebounceQueries(ctx context.Context, in <-chan string, delay time.Duration) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		timer := time.NewTimer(delay)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		var (
			pending  string
			armed    bool
			lastSent string
			sentOnce bool
		)

		for {
			select {
			case <-ctx.Done():
				return
			case q, ok := <-in:
				if !ok {
					return
				}
				pending = q
				if armed && !timer.Stop() {
					<-timer.C
				}
				timer.Reset(delay)
				armed = true
			case <-timer.C:
				armed = false
				if sentOnce && pending == lastSent {
					continue // запрос не изменился — подавляем повтор
				}
				select {
				case out <- pending:
					lastSent = pending
					sentOnce = true
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
