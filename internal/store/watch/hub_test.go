package watch

import (
	"context"
	"testing"
	"time"
)

func TestSubscribeBroadcast(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe(context.Background())
	defer cancel()

	h.Broadcast()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("expected a change signal")
	}
}

func TestBroadcast_CoalescesWhenSubscriberLags(t *testing.T) {
	h := NewHub()

	ch, cancel := h.Subscribe(context.Background())
	defer cancel()

	// Подписчик не читает — сигналы должны слиться, а не блокировать.
	h.Broadcast()
	h.Broadcast()
	h.Broadcast()

	<-ch
	select {
	case <-ch:
		t.Fatalf("coalesced signals must collapse into one")
	default:
	}
}

func TestCancel_Unsubscribes(t *testing.T) {
	h := NewHub()

	_, cancel := h.Subscribe(context.Background())
	if h.Len() != 1 {
		t.Fatalf("want 1 subscriber, got %d", h.Len())
	}

	cancel()
	cancel() // повторная отписка безопасна
	if h.Len() != 0 {
		t.Fatalf("want 0 subscribers, got %d", h.Len())
	}
}

func TestContextCancel_Unsubscribes(t *testing.T) {
	h := NewHub()

	ctx, stop := context.WithCancel(context.Background())
	ch, _ := h.Subscribe(ctx)
	stop()

	// Канал закрывается после отписки по контексту.
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel, got a signal")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel must be closed after context cancel")
	}
}
