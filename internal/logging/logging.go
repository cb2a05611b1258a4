// Package logging carries a request scoped slog.Logger through contexts so
// handlers and services can share one annotated logger per request.
package logging

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

// ContextWithLogger returns a derived context carrying the provided logger.
// A nil logger leaves the context untouched.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext extracts a logger previously attached to the context, or nil
// when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	return logger
}
