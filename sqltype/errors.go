package sqltype

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned when a type is rendered with an
// inconsistent parameter combination.
var ErrInvalidConfiguration = errors.New("sqltype: invalid type configuration")

// ConfigurationError reports an inconsistent parameter combination on a
// parameterized type. It is produced at render time, not at construction.
type ConfigurationError struct {
	Type    string // Keyword of the offending type, empty when none applies
	Message string // What is inconsistent
}

// Error returns the error string.
func (e *ConfigurationError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("sqltype: invalid %s configuration: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("sqltype: invalid configuration: %s", e.Message)
}

// Is reports whether the target error matches ConfigurationError.
// This allows errors.Is(cfgErr, ErrInvalidConfiguration) to return true.
func (e *ConfigurationError) Is(err error) bool {
	return err == ErrInvalidConfiguration
}

// NewConfigurationError returns a new ConfigurationError for the given
// type keyword.
func NewConfigurationError(typ, message string) *ConfigurationError {
	return &ConfigurationError{Type: typ, Message: message}
}

// IsConfigurationError returns true if the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidConfiguration)
}
