package amplitude

import (
	"log/slog"
	"os"
)

// StructuredLogger provides structured logging support for the SDK.
// It is compatible with Go's slog package and similar structured logging
// libraries.
//
// Use WithLogger() to configure:
//
//	client, _ := amplitude.New(apiKey,
//	    amplitude.WithLogger(amplitude.NewSlogAdapter(slog.Default())),
//	)
type StructuredLogger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}

// NopLogger is a logger that discards all log messages.
type NopLogger struct{}

// Debug implements StructuredLogger.Debug.
func (NopLogger) Debug(msg string, args ...any) {}

// Info implements StructuredLogger.Info.
func (NopLogger) Info(msg string, args ...any) {}

// Warn implements StructuredLogger.Warn.
func (NopLogger) Warn(msg string, args ...any) {}

// Error implements StructuredLogger.Error.
func (NopLogger) Error(msg string, args ...any) {}

var _ StructuredLogger = NopLogger{}

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	client, _ := amplitude.New(apiKey,
//	    amplitude.WithLogger(amplitude.NewSlogAdapter(logger)),
//	)
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Info implements StructuredLogger.Info.
func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Warn implements StructuredLogger.Warn.
func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error implements StructuredLogger.Error.
func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}

// With returns a new SlogAdapter with the given attributes added.
func (a *SlogAdapter) With(args ...any) *SlogAdapter {
	return &SlogAdapter{logger: a.logger.With(args...)}
}

// newDebugLogger returns the logger installed by WithDebug when no logger
// was configured.
func newDebugLogger() StructuredLogger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler).With("component", "amplitude"))
}
