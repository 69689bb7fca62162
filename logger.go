package collesort

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with collesort-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTeams adds a teams field to the logger.
func (l *Logger) WithTeams(teams int) *Logger {
	return &Logger{
		Logger: l.Logger.With("teams", teams),
	}
}

// WithSize adds a size (number of values) field to the logger.
func (l *Logger) WithSize(size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogEstimate logs the greedy bound that seeds a search.
func (l *Logger) LogEstimate(ctx context.Context, amplitude float64, swaps int) {
	l.DebugContext(ctx, "greedy bound computed",
		"amplitude", amplitude,
		"swaps", swaps,
	)
}

// LogSolve logs a finished solve. Cancellation by the caller is logged at
// debug level.
func (l *Logger) LogSolve(ctx context.Context, res *Result, err error) {
	if errors.Is(err, context.Canceled) {
		l.DebugContext(ctx, "solve canceled",
			"error", err,
		)
		return
	}
	if err != nil {
		l.ErrorContext(ctx, "solve failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "solve completed",
		"amplitude", res.Amplitude,
		"bound", res.Bound,
		"nodes", res.Stats.Nodes,
		"pruned", res.Stats.Pruned,
	)
}
