package logs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrapSpan(t *testing.T) {
	errFoo := errors.New("foo")
	ctx := context.Background()
	if err := WrapSpan(ctx, errFoo); err != errFoo {
		t.Fatalf("got %v", err)
	}
	if err := WrapSpan(ctx, nil); err != nil {
		t.Fatalf("got %v", err)
	}
	ctx = context.WithValue(ctx, SpanKey, Span("bar"))
	err := WrapSpan(ctx, errFoo)
	if !errors.Is(err, errFoo) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "span: bar") {
		t.Fatalf("got %v", err)
	}
}
