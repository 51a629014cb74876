package logs

import "context"

type Span string

type spanKey struct{}

var SpanKey spanKey

func SpanOf(ctx context.Context) (Span, bool) {
	span, ok := ctx.Value(SpanKey).(Span)
	return span, ok
}
