// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying the per-request correlation id.
const CorrelationID LogContextKey = "correlation_id"

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// SweepLogger provides structured logging for the expiry sweep.
type SweepLogger struct {
	logger *Logger
}

// NewSweepLogger creates a logger for sweep cycles.
func NewSweepLogger() *SweepLogger {
	return &SweepLogger{logger: GlobalLogger}
}

// LogCycle records the outcome of one sweep cycle.
func (l *SweepLogger) LogCycle(ctx context.Context, expired, removed, failed int) {
	l.logger.InfoContext(ctx, "expiry sweep cycle",
		slog.Int("expired", expired),
		slog.Int("removed", removed),
		slog.Int("failed", failed),
	)
}

// LogRowFailure records a per-row sweep failure; the sweep continues past it.
func (l *SweepLogger) LogRowFailure(ctx context.Context, postID uint, err error) {
	l.logger.ErrorContext(ctx, "expiry sweep row failed",
		slog.Uint64("post_id", uint64(postID)),
		slog.String("error", err.Error()),
	)
}
