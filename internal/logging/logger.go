// Package logging provides centralized logging functionality for the application.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug for detailed troubleshooting information.
	LevelDebug LogLevel = "debug"
	// LevelInfo for general operational information.
	LevelInfo LogLevel = "info"
	// LevelWarn for potentially harmful situations.
	LevelWarn LogLevel = "warn"
	// LevelError for error events that end the run.
	LevelError LogLevel = "error"
)

// LogFormat selects the handler used to render log records.
type LogFormat string

const (
	// FormatText renders key=value lines, readable in the Actions log viewer.
	FormatText LogFormat = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON LogFormat = "json"
)

var (
	// defaultLogger is the default logger instance.
	defaultLogger *slog.Logger
)

// init initializes the default logger from LOG_LEVEL and LOG_FORMAT.
func init() {
	SetupLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")), ParseFormat(os.Getenv("LOG_FORMAT")))
}

// ParseLevel converts a case-insensitive level name into a LogLevel,
// falling back to info for empty or unknown values.
func ParseLevel(s string) LogLevel {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return level
	default:
		return LevelInfo
	}
}

// ParseFormat converts a format name into a LogFormat, defaulting to text.
func ParseFormat(s string) LogFormat {
	if LogFormat(strings.ToLower(strings.TrimSpace(s))) == FormatJSON {
		return FormatJSON
	}
	return FormatText
}

// SetupLogger configures the logger with the specified output, level and format.
func SetupLogger(w io.Writer, level LogLevel, format LogFormat) {
	var logLevel slog.Level
	switch level {
	case LevelDebug:
		logLevel = slog.LevelDebug
	case LevelWarn:
		logLevel = slog.LevelWarn
	case LevelError:
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Debug logs a message at debug level.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs a message at info level.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a message at warn level.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs a message at error level.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// MaskSensitive masks tokens before they reach the log stream.
func MaskSensitive(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 4 {
		return "<set>"
	}
	return value[:4] + "..." + strings.Repeat("*", 3)
}
