package keymap

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic matching
var (
	ErrMissingKey     = errors.New("required key is missing")
	ErrUnknownPrefix  = errors.New("namespace prefix is not declared")
	ErrUnknownNodeKey = errors.New("edge references an undeclared node")
	ErrNotQualified   = errors.New("not a prefixed name or absolute IRI")
)

// ConfigError reports a structural problem in the keymap. It is fatal:
// the keymap is validated once at load, before any record is processed.
type ConfigError struct {
	Section string // keymap section, e.g. "nodes", "edges", "namespaces"
	Key     string // offending entry within the section
	Cause   error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("keymap %s[%s]: %v", e.Section, e.Key, e.Cause)
	}
	return fmt.Sprintf("keymap %s: %v", e.Section, e.Cause)
}

// Unwrap returns the underlying cause for error chain support
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's cause
func (e *ConfigError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func configErr(section, key string, cause error) *ConfigError {
	return &ConfigError{Section: section, Key: key, Cause: cause}
}
