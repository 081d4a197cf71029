package veil

// The core taxonomy: the three classes every deployment starts from.
// Applications add their own taxonomies with NewDataClass the same way.
var (
	// ClassSensitive marks data that must always be redacted.
	ClassSensitive = NewDataClass("core", "sensitive")

	// ClassInsensitive marks data established as safe to emit.
	ClassInsensitive = NewDataClass("core", "insensitive")

	// ClassUnknownSensitivity marks data whose sensitivity has not been
	// assessed. Treat it as sensitive until classified otherwise.
	ClassUnknownSensitivity = NewDataClass("core", "unknown_sensitivity")
)

type coreSensitive struct{}

func (coreSensitive) Class() DataClass { return ClassSensitive }

type coreInsensitive struct{}

func (coreInsensitive) Class() DataClass { return ClassInsensitive }

type coreUnknownSensitivity struct{}

func (coreUnknownSensitivity) Class() DataClass { return ClassUnknownSensitivity }

// Sensitive wraps a value under core/sensitive.
type Sensitive[T any] = Keyed[T, coreSensitive]

// Insensitive wraps a value under core/insensitive.
type Insensitive[T any] = Keyed[T, coreInsensitive]

// UnknownSensitivity wraps a value under core/unknown_sensitivity.
type UnknownSensitivity[T any] = Keyed[T, coreUnknownSensitivity]

// NewSensitive classifies v as core/sensitive.
func NewSensitive[T any](v T) Sensitive[T] {
	return NewKeyed[T, coreSensitive](v)
}

// NewInsensitive classifies v as core/insensitive.
func NewInsensitive[T any](v T) Insensitive[T] {
	return NewKeyed[T, coreInsensitive](v)
}

// NewUnknownSensitivity classifies v as core/unknown_sensitivity.
func NewUnknownSensitivity[T any](v T) UnknownSensitivity[T] {
	return NewKeyed[T, coreUnknownSensitivity](v)
}
