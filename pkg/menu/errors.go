package menu

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every ConfigError.
var ErrConfig = errors.New("invalid navigation config")

// ConfigError describes a malformed navigation configuration.
// It is fatal: a menu that fails validation is never rendered.
type ConfigError struct {
	// Path locates the offending node, e.g. "items[1].items[0]". Empty for document-level errors.
	Path string

	// Reason says what is wrong with it.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	msg := ErrConfig.Error()
	if e.Path != "" {
		msg += ": " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match both ErrConfig and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Err}
}

func configErrorf(path, format string, args ...any) *ConfigError {
	return &ConfigError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
