package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/rushbuy/pkg/ctxmeta"
)

func TestWithRequestID_RoundTrip(t *testing.T) {
	ctx := ctxmeta.WithRequestID(context.Background(), "req-1")

	got, ok := ctxmeta.RequestIDFromContext(ctx)
	if !ok || got != "req-1" {
		t.Fatalf("want req-1, got %q ok=%v", got, ok)
	}
}

func TestWithRequestID_EmptyIsNoop(t *testing.T) {
	ctx := ctxmeta.WithRequestID(context.Background(), "")

	if _, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		t.Fatalf("empty request_id must not be stored")
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	if _, ok := ctxmeta.RequestIDFromContext(context.Background()); ok {
		t.Fatalf("must be absent in a fresh context")
	}
}
