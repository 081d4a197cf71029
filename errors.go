package veil

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrDuplicateClass indicates a second redactor was registered for a
	// data class that already has one.
	ErrDuplicateClass = errors.New("duplicate redactor")

	// ErrNilRedactor indicates a nil redactor was passed to the builder.
	ErrNilRedactor = errors.New("nil redactor")

	// ErrBuilderBuilt indicates an engine builder was used after Build.
	ErrBuilderBuilt = errors.New("builder already consumed")

	// ErrInvalidClass indicates a data class string is not in
	// "taxonomy/name" form.
	ErrInvalidClass = errors.New("malformed class name")

	// ErrUnboundClass indicates a decode into a container that carries no
	// static data class.
	ErrUnboundClass = errors.New("container has no data class")

	// ErrInvalidKey indicates a digest redactor key or size is out of range.
	ErrInvalidKey = errors.New("invalid digest key")

	// ErrNilCodec indicates an exporter was constructed without a codec.
	ErrNilCodec = errors.New("nil codec")

	// ErrNilEngine indicates an exporter was constructed without an engine.
	ErrNilEngine = errors.New("nil engine")

	// ErrNotStruct indicates an exporter was instantiated for a non-struct type.
	ErrNotStruct = errors.New("not a struct type")

	// ErrRedact indicates redaction of a field failed during export.
	ErrRedact = errors.New("redact failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// ConfigError represents a builder or exporter configuration error.
// It wraps a sentinel error with additional context about the data class
// and field involved.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrDuplicateClass, etc.)
	Class string // Data class that triggered the error
	Field string // Field name that triggered the error
}

func (e *ConfigError) Error() string {
	if e.Class != "" && e.Field != "" {
		return fmt.Sprintf("%s for class %q (field %s)", e.Err.Error(), e.Class, e.Field)
	}
	if e.Class != "" {
		return fmt.Sprintf("%s for class %q", e.Err.Error(), e.Class)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents an error while redacting a field during export.
// It wraps a sentinel error with context about which field failed.
type ExportError struct {
	Err   error  // Underlying sentinel error (ErrRedact)
	Field string // Field name that failed
	Cause error  // Original error from the redactor or sink
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("redact field %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("redact field %s", e.Field)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal error during export.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for registration and plan failures.
func newConfigError(sentinel error, class, field string) error {
	return &ConfigError{
		Err:   sentinel,
		Class: class,
		Field: field,
	}
}

// newExportError creates an ExportError for field redaction failures.
func newExportError(sentinel error, field string, cause error) error {
	return &ExportError{
		Err:   sentinel,
		Field: field,
		Cause: cause,
	}
}

// newCodecError creates a CodecError for marshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
