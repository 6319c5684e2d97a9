package pkg

import "context"

// WithTraceID stores the request trace id so that services below the HTTP layer can log it.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

// TraceIDFrom returns the trace id stored by WithTraceID, or an empty string.
func TraceIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(traceKey{}).(string); ok {
		return v
	}
	return ""
}
