package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/openclaw/clawctl/pkg/types"
)

// StructuredLogger is the slog-backed Logger implementation.
type StructuredLogger struct {
	logger *slog.Logger
	fields []types.Field
}

// StructuredLoggerFactory builds StructuredLoggers.
type StructuredLoggerFactory struct{}

// NewStructuredLoggerFactory returns a new factory.
func NewStructuredLoggerFactory() *StructuredLoggerFactory {
	return &StructuredLoggerFactory{}
}

// Create builds a logger with the default component name.
func (f *StructuredLoggerFactory) Create(config types.LogConfig) (Logger, error) {
	return f.CreateWithName("clawctl", config)
}

// CreateWithName builds a named logger from the configuration. Output goes
// to stderr so stdout stays clean for command output; a file target is used
// when configured.
func (f *StructuredLoggerFactory) CreateWithName(name string, config types.LogConfig) (Logger, error) {
	var output io.Writer = os.Stderr

	if config.File != "" {
		file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	level := parseLogLevel(config.Level)

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	}

	return &StructuredLogger{
		logger: slog.New(handler).With("component", name),
		fields: []types.Field{},
	}, nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs at debug level.
func (l *StructuredLogger) Debug(ctx context.Context, message string, fields ...types.Field) {
	l.log(ctx, slog.LevelDebug, message, fields...)
}

// Info logs at info level.
func (l *StructuredLogger) Info(ctx context.Context, message string, fields ...types.Field) {
	l.log(ctx, slog.LevelInfo, message, fields...)
}

// Warn logs at warn level.
func (l *StructuredLogger) Warn(ctx context.Context, message string, fields ...types.Field) {
	l.log(ctx, slog.LevelWarn, message, fields...)
}

// Error logs at error level with the error attached as a field.
func (l *StructuredLogger) Error(ctx context.Context, message string, err error, fields ...types.Field) {
	allFields := fields
	if err != nil {
		allFields = append(allFields, types.Field{Key: "error", Value: err.Error()})
	}
	l.log(ctx, slog.LevelError, message, allFields...)
}

// WithField returns a logger with an additional preset field.
func (l *StructuredLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(types.Field{Key: key, Value: value})
}

// WithFields returns a logger with additional preset fields.
func (l *StructuredLogger) WithFields(fields ...types.Field) Logger {
	newFields := make([]types.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &StructuredLogger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *StructuredLogger) log(ctx context.Context, level slog.Level, message string, fields ...types.Field) {
	attrs := make([]slog.Attr, 0, len(l.fields)+len(fields))
	for _, field := range l.fields {
		attrs = append(attrs, slog.Any(field.Key, field.Value))
	}
	for _, field := range fields {
		attrs = append(attrs, slog.Any(field.Key, field.Value))
	}
	l.logger.LogAttrs(ctx, level, message, attrs...)
}
