package veil

import (
	"encoding/json"
	"fmt"
	"io"
)

// Classified is the contract satisfied by every classified container: it
// reports its data class and externalizes its textual form through an
// Extractor. The raw value is reachable only through the container's own
// declassify accessors, which this interface deliberately omits.
//
// Container and Keyed are the provided implementations. Hand-written types
// are equally valid; the engine has no knowledge of built-in vs custom
// containers.
type Classified interface {
	// DataClass returns the fixed class tag for this container.
	DataClass() DataClass

	// Externalize pushes the wrapped value's textual form to the extractor
	// as one or more (class, text) pairs.
	Externalize(x Extractor) error
}

// Extractor receives the textual form of classified values during
// externalization. The engine supplies an extractor that routes each pair
// through the redactor configured for its class.
type Extractor interface {
	// ExtractString consumes one textual fragment and its class.
	ExtractString(class DataClass, text string) error
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(class DataClass, text string) error

// ExtractString calls f(class, text).
func (f ExtractorFunc) ExtractString(class DataClass, text string) error {
	return f(class, text)
}

// Marker returns the fixed redacted marker for a class, the only textual
// form a container ever yields outside an engine: "<taxonomy/name:REDACTED>".
func Marker(class DataClass) string {
	return "<" + class.String() + ":REDACTED>"
}

// Container wraps a single value together with a data class chosen at
// runtime. It never converts the value to readable text: every fmt verb,
// String, MarshalText, and MarshalJSON yield only the class marker. The
// value itself is reachable only through Declassify and DeclassifyRef.
//
// Use Keyed (or an alias like Sensitive) when the class is known at compile
// time; use Container when classes are data, for example loaded from a
// policy catalog.
type Container[T any] struct {
	class DataClass
	value T
}

// Classify wraps v with the given data class.
func Classify[T any](class DataClass, v T) Container[T] {
	return Container[T]{class: class, value: v}
}

// DataClass returns the class assigned at Classify time.
func (c Container[T]) DataClass() DataClass {
	return c.class
}

// Declassify returns the raw wrapped value. This is the single auditable
// escape hatch from the wrapper; call sites are meant to be searchable.
func (c Container[T]) Declassify() T {
	return c.value
}

// DeclassifyRef returns a pointer to the wrapped value, for access or
// mutation without copying. The same audit caveat as Declassify applies.
func (c *Container[T]) DeclassifyRef() *T {
	return &c.value
}

// Externalize pushes the value's fmt.Sprint form to the extractor under the
// container's class.
func (c Container[T]) Externalize(x Extractor) error {
	return x.ExtractString(c.class, fmt.Sprint(c.value))
}

// String returns the class marker, never the wrapped value.
func (c Container[T]) String() string {
	return Marker(c.class)
}

// Format implements fmt.Formatter so that every verb, including %v, %+v,
// %#v, and %d, produces the class marker. fmt gives Formatter precedence
// over reflection, so no verb can reach the wrapped value.
func (c Container[T]) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, c.String())
}

// MarshalText returns the class marker. Text-based encoders therefore emit
// the marker, not the value.
func (c Container[T]) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// MarshalJSON returns the class marker as a JSON string. Serialization is
// one-way by default: producing the raw value for a wire format is the
// Exporter's job, under an engine.
func (c Container[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON always fails: a runtime-classified container cannot learn
// its class from a payload. Decode into a Keyed container (or an alias such
// as Sensitive) instead, or construct with Classify.
func (c *Container[T]) UnmarshalJSON([]byte) error {
	return fmt.Errorf("%w: decode into a Keyed container or construct with Classify", ErrUnboundClass)
}

// ClassKey associates a data class with a container type at compile time.
// Implementations are zero-size key types:
//
//	var ClassSSN = veil.NewDataClass("hr", "ssn")
//
//	type ssnKey struct{}
//
//	func (ssnKey) Class() veil.DataClass { return ClassSSN }
type ClassKey interface {
	// Class returns the data class this key stands for.
	Class() DataClass
}

// Keyed wraps a single value whose data class is carried by the key type K
// rather than stored. Behavior matches Container except that the static
// class makes deserialization well-defined: UnmarshalJSON fills the raw
// inner value, satisfying the serialization half of the generated-container
// contract.
//
// Declare one alias per class for ergonomic use:
//
//	type SSN[T any] = veil.Keyed[T, ssnKey]
//
//	func NewSSN[T any](v T) SSN[T] { return veil.NewKeyed[T, ssnKey](v) }
type Keyed[T any, K ClassKey] struct {
	value T
}

// NewKeyed wraps v under the class carried by K.
func NewKeyed[T any, K ClassKey](v T) Keyed[T, K] {
	return Keyed[T, K]{value: v}
}

// keyClass resolves the class carried by a key type.
func keyClass[K ClassKey]() DataClass {
	var k K
	return k.Class()
}

// DataClass returns the class carried by the key type K.
func (c Keyed[T, K]) DataClass() DataClass {
	return keyClass[K]()
}

// Declassify returns the raw wrapped value. This is the single auditable
// escape hatch from the wrapper; call sites are meant to be searchable.
func (c Keyed[T, K]) Declassify() T {
	return c.value
}

// DeclassifyRef returns a pointer to the wrapped value, for access or
// mutation without copying. The same audit caveat as Declassify applies.
func (c *Keyed[T, K]) DeclassifyRef() *T {
	return &c.value
}

// Externalize pushes the value's fmt.Sprint form to the extractor under the
// key's class.
func (c Keyed[T, K]) Externalize(x Extractor) error {
	return x.ExtractString(keyClass[K](), fmt.Sprint(c.value))
}

// String returns the class marker, never the wrapped value.
func (c Keyed[T, K]) String() string {
	return Marker(keyClass[K]())
}

// Format implements fmt.Formatter; every verb produces the class marker.
func (c Keyed[T, K]) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, c.String())
}

// MarshalText returns the class marker.
func (c Keyed[T, K]) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// MarshalJSON returns the class marker as a JSON string, never the value.
func (c Keyed[T, K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes the raw inner value. The class is static, so the
// wrapper re-forms around the decoded payload with the no-display rule
// intact.
func (c *Keyed[T, K]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.value)
}
