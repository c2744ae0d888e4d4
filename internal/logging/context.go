package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	return withStr(ctx, "component", component)
}

// WithPath creates a child logger with a path field
func WithPath(ctx context.Context, path string) context.Context {
	return withStr(ctx, "path", path)
}

// WithURL creates a child logger with a url field
func WithURL(ctx context.Context, url string) context.Context {
	return withStr(ctx, "url", url)
}

// WithWorkspace creates a child logger with a workspace field
func WithWorkspace(ctx context.Context, dir string) context.Context {
	return withStr(ctx, "workspace", dir)
}

func withStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str(key, value).Logger()
	return WithContext(ctx, childLogger)
}
