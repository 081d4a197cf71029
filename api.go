// Package veil classifies sensitive values and keeps them out of logs,
// telemetry, and serialized output unless a caller explicitly declassifies
// them or redacts them through an engine.
//
// The package offers typed containers that wrap sensitive values, an Engine
// that maps data classes to redaction strategies, and a generic Exporter
// that walks structs and emits redacted representations through pluggable
// codecs.
//
// # Data Classes
//
// A DataClass names a kind of sensitive data as a taxonomy/name pair:
//
//	ssn := veil.NewDataClass("hr", "ssn")
//	ssn.String() // "hr/ssn"
//
// Classes are comparable values, usable as map keys, and totally ordered by
// taxonomy then name. The core taxonomy ships three classes: ClassSensitive,
// ClassInsensitive, and ClassUnknownSensitivity.
//
// # Containers
//
// Classify wraps a value with a class chosen at runtime; Keyed binds the
// class into the type via a ClassKey. Both refuse to print their contents:
// fmt verbs, MarshalText, and MarshalJSON all yield the redaction marker.
//
//	name := veil.NewSensitive("John Doe")
//	fmt.Sprintf("%v", name) // "<core/sensitive:REDACTED>"
//	name.Declassify()       // "John Doe", by explicit choice only
//
// # Redactors
//
// A Redactor rewrites classified text into a sink. Built-ins cover erasure,
// fixed-width masking, literal insertion, deterministic digests (XXH3,
// BLAKE2b), and a Tagged decorator that wraps any redactor's output in a
// class marker.
//
// # Engine
//
// EngineBuilder collects class-to-redactor bindings plus an optional
// fallback, and Build freezes them into an immutable Engine:
//
//	b := veil.NewEngineBuilder()
//	_ = b.AddClassRedactor(veil.ClassSensitive, veil.Mask())
//	_ = b.SetFallbackRedactor(veil.Erase())
//	engine, err := b.Build()
//
//	var buf strings.Builder
//	_ = engine.Redact(name, &buf) // buf holds "********"
//
// Binding the same class twice is a configuration error and the first
// binding stays in force. A class with no binding and no fallback redacts
// to nothing; the engine never falls open to the raw value.
//
// # Struct Tags
//
// Exporter redacts three kinds of fields: containers are redacted under
// their own class, plain fields tagged `veil:"taxonomy/name"` are redacted
// under the tag's class, and fields tagged `veil:"-"` are omitted. Output
// keys follow the json tag when present.
//
//	type Employee struct {
//	    Name  veil.Sensitive[string] `json:"name"`
//	    SSN   string                 `json:"ssn" veil:"hr/ssn"`
//	    Notes string                 `json:"-" veil:"-"`
//	    Team  string                 `json:"team"`
//	}
//
//	exp, _ := veil.NewExporter[Employee](veiljson.New(), engine)
//	data, _ := exp.Export(ctx, &employee)
//
// # Codec Providers
//
// Codec implementations live in subpackages, one per format:
//
//	veiljson "github.com/zoobzio/veil/json"
//	veilyaml "github.com/zoobzio/veil/yaml"
//	veilmsgpack "github.com/zoobzio/veil/msgpack"
//	veilbson "github.com/zoobzio/veil/bson"
//
// # Logging
//
// The veilslog subpackage builds a slog ReplaceAttr func that redacts
// container attrs through an engine, so handlers emit redacted text instead
// of markers.
package veil

// Codec handles marshaling and unmarshaling of data.
type Codec interface {
	// ContentType returns the MIME type (e.g., "application/json")
	ContentType() string

	// Marshal converts a value to bytes
	Marshal(v any) ([]byte, error)

	// Unmarshal converts bytes to a value
	Unmarshal(data []byte, v any) error
}
