package sdag

import (
	"context"
	"log/slog"
	"os"

	"github.com/phylogo/sdag/dag"
)

// Logger wraps slog.Logger with sdag-specific helpers so facade operations
// log with consistent field names.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithEdge adds an edge field to the logger.
func (l *Logger) WithEdge(e dag.EdgeID) *Logger {
	return &Logger{
		Logger: l.Logger.With("edge", uint32(e)),
	}
}

// WithTaxa adds a taxa (universe size) field to the logger.
func (l *Logger) WithTaxa(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("taxa", n),
	}
}

// LogAddTree logs a topology addition.
func (l *Logger) LogAddTree(added, edges int, err error) {
	if err != nil {
		l.Error("add tree failed",
			"error", err,
		)
	} else {
		l.Debug("tree added",
			"new_edges", added,
			"edges", edges,
		)
	}
}

// LogExtract logs a topology extraction.
func (l *Logger) LogExtract(e dag.EdgeID, err error) {
	if err != nil {
		l.Error("extract failed",
			"edge", uint32(e),
			"error", err,
		)
	} else {
		l.Debug("topology extracted",
			"edge", uint32(e),
		)
	}
}

// LogExtractBatch logs a batch topology extraction.
func (l *Logger) LogExtractBatch(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch extract failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch extract completed",
			"count", count,
		)
	}
}

// LogCandidates logs a candidate NNI enumeration.
func (l *Logger) LogCandidates(edges, found int) {
	l.Debug("candidate rearrangements enumerated",
		"edges", edges,
		"found", found,
	)
}

// LogValidate logs a validation run.
func (l *Logger) LogValidate(err error) {
	if err != nil {
		l.Error("validation failed",
			"error", err,
		)
	} else {
		l.Debug("validation passed")
	}
}
