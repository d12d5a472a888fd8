// Package logging is the structured logger shared by the console and the
// development backend. The implementation wraps log/slog.
package logging

import "context"

// Logger writes key-value records:
//
//	log.Info(ctx, "refresh succeeded", "path", path)
//
// A request ID stored in ctx with ContextWithRequestID is added to every
// record as "request_id".
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

type requestIDKey struct{}

// ContextWithRequestID returns ctx carrying id, the X-Request-ID of the
// exchange being handled.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
