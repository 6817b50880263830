package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"

	// EnvVarLogFormat is the environment variable name for choosing json or text output.
	EnvVarLogFormat = "LOG_FORMAT"
)

// Format is the log output encoding.
type Format string

const (
	// FormatJSON writes one JSON object per record. It is the default.
	FormatJSON Format = "json"

	// FormatText writes logfmt-style key=value records.
	FormatText Format = "text"
)

// NewStructuredLogger creates a structured logger writing to w.
// Module name and version are included in the logger's context.
// AddSource is enabled for debug level logging only.
// Parameters:
//   - w: destination, usually os.Stderr.
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application (e.g., "v1.0.0").
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//   - format: json (default) or text.
func NewStructuredLogger(w io.Writer, module, version, level string, format Format) *slog.Logger {
	lev := ParseLogLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	}

	var h slog.Handler
	if format == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// NewLogLogger creates a standard library log.Logger backed by slog, for
// APIs such as http.Server.ErrorLog that only accept *log.Logger.
func NewLogLogger(level slog.Level, withSource bool) *log.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: withSource,
	})

	return slog.NewLogLogger(handler, level)
}

// SetDefaultLogger sets the default slog logger for module and version,
// with level and format taken from LOG_LEVEL and LOG_FORMAT.
func SetDefaultLogger(module, version string) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version,
		os.Getenv(EnvVarLogLevel), ParseFormat(os.Getenv(EnvVarLogFormat))))
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Unrecognized strings default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// ParseFormat converts a string into a Format, defaulting to json.
func ParseFormat(s string) Format {
	if Format(strings.ToLower(strings.TrimSpace(s))) == FormatText {
		return FormatText
	}
	return FormatJSON
}
