package glovebin

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/glovebin/convert"
)

// Logger wraps slog.Logger with glovebin-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
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

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithPrefix adds the store prefix to every record.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		Logger: l.Logger.With("prefix", prefix),
	}
}

// LogOpen logs opening a store.
func (l *Logger) LogOpen(ctx context.Context, prefix string, records, dim int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "open failed",
			"prefix", prefix,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "store opened",
		"prefix", prefix,
		"records", records,
		"dimension", dim,
	)
}

// LogLookup logs a token lookup.
func (l *Logger) LogLookup(ctx context.Context, token string, found bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lookup failed",
			"token", token,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "lookup completed",
		"token", token,
		"found", found,
	)
}

// LogConvert logs a conversion run.
func (l *Logger) LogConvert(ctx context.Context, source string, st convert.Stats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "conversion failed",
			"source", source,
			"records", st.Records,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "conversion completed",
		"source", source,
		"records", st.Records,
		"dimension", st.Dim,
		"vec_bytes", st.VecBytes,
	)
}
