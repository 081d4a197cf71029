package veil

import (
	"errors"
	"testing"
)

func TestConfigError_Is(t *testing.T) {
	err := newConfigError(ErrDuplicateClass, "hr/ssn", "")

	if !errors.Is(err, ErrDuplicateClass) {
		t.Error("ConfigError should unwrap to ErrDuplicateClass")
	}

	if errors.Is(err, ErrNilRedactor) {
		t.Error("ConfigError should not match ErrNilRedactor")
	}
}

func TestConfigError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantPart string
	}{
		{
			name:     "full context",
			err:      newConfigError(ErrInvalidClass, "hrssn", "SSN"),
			wantPart: `malformed class name for class "hrssn" (field SSN)`,
		},
		{
			name:     "class only",
			err:      newConfigError(ErrDuplicateClass, "hr/ssn", ""),
			wantPart: `duplicate redactor for class "hr/ssn"`,
		},
		{
			name:     "field only",
			err:      &ConfigError{Err: ErrNotStruct, Field: "int"},
			wantPart: `not a struct type (field int)`,
		},
		{
			name:     "bare sentinel",
			err:      &ConfigError{Err: ErrNilCodec},
			wantPart: `nil codec`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.wantPart {
				t.Errorf("Error() = %q, want %q", got, tt.wantPart)
			}
		})
	}
}

func TestExportError_Is(t *testing.T) {
	err := newExportError(ErrRedact, "SSN", errors.New("sink closed"))

	if !errors.Is(err, ErrRedact) {
		t.Error("ExportError should unwrap to ErrRedact")
	}

	if errors.Is(err, ErrMarshal) {
		t.Error("ExportError should not match ErrMarshal")
	}
}

func TestExportError_Message(t *testing.T) {
	cause := errors.New("sink closed")
	err := newExportError(ErrRedact, "SSN", cause)

	want := "redact field SSN: sink closed"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCodecError_Is(t *testing.T) {
	err := newCodecError(ErrMarshal, errors.New("unsupported type"))

	if !errors.Is(err, ErrMarshal) {
		t.Error("CodecError should unwrap to ErrMarshal")
	}
}

func TestCodecError_Message(t *testing.T) {
	err := newCodecError(ErrMarshal, errors.New("unsupported type"))

	want := "marshal failed: unsupported type"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{
		ErrDuplicateClass,
		ErrNilRedactor,
		ErrBuilderBuilt,
		ErrInvalidClass,
		ErrUnboundClass,
		ErrInvalidKey,
		ErrNilCodec,
		ErrNilEngine,
		ErrNotStruct,
		ErrRedact,
		ErrMarshal,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}
