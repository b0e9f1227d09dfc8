// Package log provides structured logging for curvecore. It wraps Go's
// log/slog with per-subsystem child loggers, so a trusted-setup ceremony,
// a task pool, or a batch verifier can each attach their own "module"
// attribute without threading a logger through every constructor.
//
// Library code in this module should log sparingly: per-call hot paths
// (field arithmetic, a single pairing, a signature check) never log,
// since a verification library that writes to stderr on every call is
// unusable inside a node's own logging pipeline. Logging is reserved for
// one-shot or lifecycle events — loading a trusted setup, accumulating a
// ceremony contribution, starting or shutting down a task pool — the
// same places the teacher's eth2030-geth command logs node startup and
// shutdown rather than per-block or per-transaction events.
package log

import (
	"log/slog"
	"os"
)

// slogLevel maps this package's LogLevel (used by the text/JSON/color
// formatters in formatter.go) onto slog's level type, so NewFromEnv can
// share one level vocabulary across both logging paths.
func slogLevel(l LogLevel) slog.Level {
	switch l {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR, FATAL:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewFromEnv creates a Logger at the level named by the CURVECORE_LOG_LEVEL
// environment variable (DEBUG/INFO/WARN/ERROR/FATAL, case-insensitive),
// defaulting to INFO when unset or unrecognised.
func NewFromEnv() *Logger {
	return New(slogLevel(LevelFromString(os.Getenv("CURVECORE_LOG_LEVEL"))))
}

// Logger wraps slog.Logger with Ethereum-specific context.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = NewFromEnv()
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute. This
// is the primary way subsystems (kzg, taskpool, bls, precompile, ...) obtain
// their own contextual logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
