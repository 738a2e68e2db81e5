// Package logger provides structured logging for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// AdminIDKey is the context key for the acting admin's ID
	AdminIDKey contextKey = "admin_id"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with request-scoped values attached.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	result := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		result = &Logger{Logger: result.With(slog.String("request_id", requestID))}
	}
	if adminID, ok := ctx.Value(AdminIDKey).(string); ok && adminID != "" {
		result = &Logger{Logger: result.With(slog.String("admin_id", adminID))}
	}

	return result
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent logs authentication events
func (l *Logger) AuthEvent(event, email string, success bool, reason string) {
	if success {
		l.Info("auth_event",
			slog.String("event", event),
			slog.String("email", email),
			slog.Bool("success", success),
		)
	} else {
		l.Warn("auth_event",
			slog.String("event", event),
			slog.String("email", email),
			slog.Bool("success", success),
			slog.String("reason", reason),
		)
	}
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// AdminAction logs a mutation performed through the admin surface.
func (l *Logger) AdminAction(action, entityType, entityID string) {
	l.Info("admin_action",
		slog.String("action", action),
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
	)
}

// ImportSummary logs the outcome of a bulk import run.
func (l *Logger) ImportSummary(source string, successCount, failedCount int) {
	l.Info("import_summary",
		slog.String("source", source),
		slog.Int("success_count", successCount),
		slog.Int("failed_count", failedCount),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
