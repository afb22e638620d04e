package codegen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes the generator reports.
var (
	// ErrInvalidConfig indicates an override configuration that cannot be applied.
	ErrInvalidConfig = errors.New("scale: invalid configuration")
	// ErrInvalidExternPath indicates an extern path that is not fully qualified
	// or contains an empty segment.
	ErrInvalidExternPath = errors.New("scale: invalid extern path")
	// ErrDuplicateExternPath indicates the same proto path was registered twice.
	ErrDuplicateExternPath = errors.New("scale: duplicate extern path")
	// ErrEnumVariantCollision indicates two enum values map to one Rust variant.
	ErrEnumVariantCollision = errors.New("scale: enum variant names overlap")
	// ErrMalformedMapEntry indicates a map entry message without key/value fields.
	ErrMalformedMapEntry = errors.New("scale: malformed map entry")
)

// ConfigError reports a configuration entry that was rejected before generation.
type ConfigError struct {
	Key     string // Configuration category (e.g. "extern_path")
	Value   string // Offending entry
	Message string
	Cause   error
}

// NewConfigError creates a ConfigError wrapping ErrInvalidConfig.
func NewConfigError(key, value, message string) *ConfigError {
	return &ConfigError{Key: key, Value: value, Message: message, Cause: ErrInvalidConfig}
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("scale: config error")
	if e.Key != "" {
		b.WriteString(" in ")
		b.WriteString(e.Key)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " %q", e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// SchemaError reports an input schema that cannot be generated unambiguously.
type SchemaError struct {
	Path    string // Fully-qualified proto path of the offending declaration
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("scale: schema error")
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}
