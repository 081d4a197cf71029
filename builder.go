package veil

import (
	"context"
	"fmt"
)

// EngineBuilder accumulates class-to-redactor registrations and produces an
// immutable Engine. A builder moves through exactly two states: building,
// where registrations are accepted, and built, after which every method
// fails with ErrBuilderBuilt. Builders are not safe for concurrent use;
// the engines they produce are.
type EngineBuilder struct {
	redactors map[DataClass]Redactor
	fallback  Redactor
	built     bool
}

// NewEngineBuilder returns an empty builder.
func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{redactors: make(map[DataClass]Redactor)}
}

// AddClassRedactor registers r for the given class. Registering a second
// redactor for the same class is a configuration error, not a silent
// overwrite: the call fails with ErrDuplicateClass and the first
// registration stays intact, so the caller can drop the duplicate and still
// Build.
func (b *EngineBuilder) AddClassRedactor(class DataClass, r Redactor) error {
	if b.built {
		return &ConfigError{Err: ErrBuilderBuilt}
	}
	if r == nil {
		return newConfigError(ErrNilRedactor, class.String(), "")
	}
	if _, ok := b.redactors[class]; ok {
		return newConfigError(ErrDuplicateClass, class.String(), "")
	}

	b.redactors[class] = r
	return nil
}

// SetFallbackRedactor sets the redactor used for any class with no explicit
// registration. The fallback is a single global policy knob, so re-setting
// replaces the previous choice without error: last write wins. Without a
// fallback the engine erases unregistered classes.
func (b *EngineBuilder) SetFallbackRedactor(r Redactor) error {
	if b.built {
		return &ConfigError{Err: ErrBuilderBuilt}
	}
	if r == nil {
		return &ConfigError{Err: ErrNilRedactor}
	}

	b.fallback = r
	return nil
}

// Build consumes the builder and produces an immutable Engine. The
// registrations are snapshotted; the builder accepts no further use.
func (b *EngineBuilder) Build() (*Engine, error) {
	if b.built {
		return nil, &ConfigError{Err: ErrBuilderBuilt}
	}
	b.built = true

	redactors := make(map[DataClass]Redactor, len(b.redactors))
	for class, r := range b.redactors {
		redactors[class] = r
	}

	e := &Engine{redactors: redactors, fallback: b.fallback}
	emitEngineBuilt(context.Background(), len(redactors), fallbackName(b.fallback))
	return e, nil
}

// fallbackName renders a fallback redactor for telemetry.
func fallbackName(r Redactor) string {
	if r == nil {
		return "none"
	}
	return fmt.Sprintf("%T", r)
}
