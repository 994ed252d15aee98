package logtrace

import "context"

type ctxKey string

const (
	// CorrelationIDKey tags every log line emitted for one logical operation.
	CorrelationIDKey ctxKey = "correlation_id"
	originKey        ctxKey = "origin"
)

// CtxWithCorrelationID stores a correlation ID inside the context.
func CtxWithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

// CtxWithOrigin marks which phase of a flow produced the log line.
func CtxWithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey, origin)
}

// OriginFromContext returns the origin set by CtxWithOrigin, or "".
func OriginFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(originKey).(string); ok {
		return v
	}
	return ""
}

func extractCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if v, ok := ctx.Value(CorrelationIDKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
