package episcan

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with episcan-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithMarker adds a marker field to the logger.
func (l *Logger) WithMarker(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("marker", id),
	}
}

// WithPair adds the two markers of a pair to the logger.
func (l *Logger) WithPair(a, b string) *Logger {
	return &Logger{
		Logger: l.Logger.With("marker_a", a, "marker_b", b),
	}
}

// WithVersion adds a case/control selection version to the logger.
func (l *Logger) WithVersion(v uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("mask_version", v),
	}
}

// LogLoad logs the load of one marker.
func (l *Logger) LogLoad(ctx context.Context, marker string, err error) {
	if err != nil {
		l.WarnContext(ctx, "marker rejected",
			"marker", marker,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "marker loaded",
			"marker", marker,
		)
	}
}

// LogSelect logs a case/control selection.
func (l *Logger) LogSelect(ctx context.Context, cases, controls, unknown int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "selection failed",
			"error", err,
		)
	case unknown > 0:
		l.WarnContext(ctx, "selection skipped unknown individuals",
			"cases", cases,
			"controls", controls,
			"unknown", unknown,
		)
	default:
		l.InfoContext(ctx, "selection completed",
			"cases", cases,
			"controls", controls,
		)
	}
}

// LogScan logs the end of an all-pairs scan.
func (l *Logger) LogScan(ctx context.Context, pairs, emitted int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "pair scan failed",
			"pairs_done", pairs,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "pair scan completed",
			"pairs", pairs,
			"emitted", emitted,
		)
	}
}

// LogProgress logs the progress of a running scan.
func (l *Logger) LogProgress(ctx context.Context, done, total int) {
	l.InfoContext(ctx, "pair scan progress",
		"done", done,
		"total", total,
	)
}
