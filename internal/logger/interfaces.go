// Package logger provides structured logging for clawctl.
package logger

import (
	"context"

	"github.com/openclaw/clawctl/pkg/types"
)

// Logger is the structured logging interface used by every component.
type Logger interface {
	Debug(ctx context.Context, message string, fields ...types.Field)
	Info(ctx context.Context, message string, fields ...types.Field)
	Warn(ctx context.Context, message string, fields ...types.Field)
	Error(ctx context.Context, message string, err error, fields ...types.Field)

	WithField(key string, value interface{}) Logger
	WithFields(fields ...types.Field) Logger
}

// Factory creates loggers from configuration.
type Factory interface {
	Create(config types.LogConfig) (Logger, error)
	CreateWithName(name string, config types.LogConfig) (Logger, error)
}

// ContextKey is the type for context keys owned by this package.
type ContextKey string

// ContextKeyLogger stores a Logger in a context.
const ContextKeyLogger ContextKey = "logger"

// FromContext retrieves the logger from the context, falling back to a
// NopLogger when none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ContextKeyLogger).(Logger); ok {
		return l
	}
	return &NopLogger{}
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, l)
}

// NopLogger discards everything.
type NopLogger struct{}

func (n *NopLogger) Debug(ctx context.Context, message string, fields ...types.Field)            {}
func (n *NopLogger) Info(ctx context.Context, message string, fields ...types.Field)             {}
func (n *NopLogger) Warn(ctx context.Context, message string, fields ...types.Field)             {}
func (n *NopLogger) Error(ctx context.Context, message string, err error, fields ...types.Field) {}
func (n *NopLogger) WithField(key string, value interface{}) Logger                              { return n }
func (n *NopLogger) WithFields(fields ...types.Field) Logger                                     { return n }
