package veil

import (
	"fmt"
	"strings"
)

// DataClass identifies one category of sensitive data: a taxonomy name plus
// a class name within it. It is an immutable value type, comparable with ==,
// usable as a map key, and totally ordered by Compare.
//
// Taxonomy and class names are treated as opaque strings. They are not
// validated; empty names are accepted. By convention names are short
// snake_case identifiers ("core/sensitive", "hr/ssn").
type DataClass struct {
	taxonomy string
	name     string
}

// NewDataClass returns the DataClass for the given taxonomy and class name.
// Typically called once per class at package level:
//
//	var ClassSSN = veil.NewDataClass("hr", "ssn")
func NewDataClass(taxonomy, name string) DataClass {
	return DataClass{taxonomy: taxonomy, name: name}
}

// ParseDataClass parses the canonical "taxonomy/name" form produced by
// String. It is the inverse of String and the format used in veil struct
// tags. Everything after the first separator belongs to the class name.
// A string without a separator fails with ErrInvalidClass.
func ParseDataClass(s string) (DataClass, error) {
	taxonomy, name, ok := strings.Cut(s, "/")
	if !ok {
		return DataClass{}, fmt.Errorf("%w %q: missing %q separator", ErrInvalidClass, s, "/")
	}
	return DataClass{taxonomy: taxonomy, name: name}, nil
}

// Taxonomy returns the taxonomy name.
func (d DataClass) Taxonomy() string {
	return d.taxonomy
}

// Name returns the class name within the taxonomy.
func (d DataClass) Name() string {
	return d.name
}

// String returns the canonical "taxonomy/name" form.
func (d DataClass) String() string {
	return d.taxonomy + "/" + d.name
}

// Compare orders classes by taxonomy, then by name. It returns a negative
// number when d sorts before other, zero when equal, positive otherwise.
func (d DataClass) Compare(other DataClass) int {
	if c := strings.Compare(d.taxonomy, other.taxonomy); c != 0 {
		return c
	}
	return strings.Compare(d.name, other.name)
}

// IsZero reports whether d is the zero DataClass (both names empty).
func (d DataClass) IsZero() bool {
	return d.taxonomy == "" && d.name == ""
}

// Taxonomy mints DataClass values sharing one taxonomy name:
//
//	hr := veil.Taxonomy("hr")
//	ssn := hr.Class("ssn")
type Taxonomy string

// Class returns the DataClass for name within this taxonomy.
func (t Taxonomy) Class(name string) DataClass {
	return DataClass{taxonomy: string(t), name: name}
}
