// Package logging provides structured logging configuration using log/slog.
//
// This package integrates with chi's RequestID middleware to propagate
// request IDs through structured log entries. Parses additionally carry a
// parse ID so one upload can be followed from request to response.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey int

const parseIDKey ctxKey = iota

// Setup configures the global slog logger to write to stdout.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w. The CLI uses it with stderr so that
// stdout only carries the chart bundle.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithParseID returns a context whose loggers carry parse_id.
func WithParseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, parseIDKey, id)
}

// ParseID returns the parse ID stored by WithParseID, or "".
func ParseID(ctx context.Context) string {
	id, _ := ctx.Value(parseIDKey).(string)
	return id
}

// FromContext returns a logger enriched with request context.
//
// When called with a request context that contains a chi RequestID,
// the returned logger includes request_id in all log entries, and
// parse_id when one was attached with WithParseID.
//
// Usage:
//
//	func handleParse(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.FromContext(r.Context())
//	    logger.Info("parse received", "file", name)
//	}
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	// Chi's RequestID middleware stores the ID in context
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if parseID := ParseID(ctx); parseID != "" {
		logger = logger.With("parse_id", parseID)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	parseLogger := logging.WithFields(ctx,
//	    "file", name,
//	    "size", len(data),
//	)
//	parseLogger.Info("parse started")
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
