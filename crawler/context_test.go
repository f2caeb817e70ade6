package crawler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	id := NewRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid, got %q: %v", id, err)
	}
	if other := NewRequestID(); other == id {
		t.Errorf("expected unique ids, got %q twice", id)
	}

	ctx := WithRequestID(context.Background(), id)
	if got := GetRequestID(ctx); got != id {
		t.Errorf("expected %q, got %q", id, got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("expected no id, got %q", got)
	}
}

func TestGetContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := WithQuery(WithRequestID(context.Background(), "req-1"), "tomates")
	GetContextLogger(ctx, base).Info("hello")
	GetContextLogger(context.Background(), base).Info("bare")

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["query"] != "tomates" {
		t.Errorf("expected request fields, got %v", fields)
	}
	if len(entries[1].ContextMap()) != 0 {
		t.Errorf("expected no fields, got %v", entries[1].ContextMap())
	}
}
