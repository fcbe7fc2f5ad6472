package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the private context key for the request-scoped logger.
type loggerKey struct{}

// ContextWithLogger returns a child context carrying the request-scoped
// logger, typically stamped with the request ID by the HTTP middleware.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the request-scoped logger, or a no-op logger outside
// a request.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
