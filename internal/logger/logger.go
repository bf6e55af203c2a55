// Package logger provides the structured logger shared by the HTTP and service layers.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type contextKey string

// RequestIDKey stores the request identifier in a context.Context.
const RequestIDKey contextKey = "request_id"

// Logger wraps slog.Logger with a few domain helpers.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stdout. Development gets text output at debug level,
// everything else JSON at info level.
func New(env string) *Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(env string, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ContextWithRequestID returns a copy of ctx carrying the request id.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithContext returns a logger annotated with values found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return &Logger{Logger: l.With(slog.String("request_id", requestID))}
	}
	return l
}

// HTTPRequest logs a completed HTTP request.
func (l *Logger) HTTPRequest(requestID, method, path string, status int, latency time.Duration, clientIP string) {
	l.Info("http_request",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", float64(latency.Microseconds())/1000),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs an error surfaced to an HTTP caller.
func (l *Logger) HTTPError(method, path string, status int, err error) {
	l.Error("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
}

// ProviderCall logs one outbound call to the maps provider.
func (l *Logger) ProviderCall(endpoint, status string, results int, latency time.Duration) {
	l.Info("provider_call",
		slog.String("endpoint", endpoint),
		slog.String("status", status),
		slog.Int("results", results),
		slog.Float64("latency_ms", float64(latency.Microseconds())/1000),
	)
}

// CacheHit logs a response served from the cache.
func (l *Logger) CacheHit(key string) {
	l.Debug("cache_hit", slog.String("key", key))
}

// RateLimitExceeded logs a rejected request.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}

// MaskSecret returns a printable hint of a secret: its first 10 characters followed by "...".
func MaskSecret(secret string) string {
	if secret == "" {
		return "N/A"
	}
	if len(secret) <= 10 {
		return secret[:len(secret)/2] + "..."
	}
	return secret[:10] + "..."
}
