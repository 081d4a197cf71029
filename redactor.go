package veil

import (
	"io"
	"strings"
)

// Redactor transforms sensitive text into a safe-to-emit substitute. The
// result is written incrementally to w, never returned as an owned buffer,
// so no redacted copy lingers in library-managed memory. The class rides
// along so that decorating strategies and shared fallbacks can render
// class-qualified output.
//
// Implementations must be safe for concurrent use once constructed, must
// write only transformed bytes (never the source text), and must handle
// empty input like any other: redaction is not skipped for "".
type Redactor interface {
	// Redact writes the redacted form of text to w. The writer may be
	// called zero or more times; a write failure aborts redaction and is
	// returned to the caller.
	Redact(class DataClass, text string, w io.Writer) error
}

// LengthHinter is an optional Redactor side-contract. A redactor whose
// output is always exactly n bytes reports it so sinks can pre-size
// buffers. The engine surfaces the hint through Engine.ExactLen.
type LengthHinter interface {
	// ExactLen returns the fixed output length in bytes, and whether the
	// redactor has one.
	ExactLen() (n int, ok bool)
}

// asteriskMask is the constant mask written by Mask regardless of input
// length, so output length reveals nothing about the value.
const asteriskMask = "********"

// eraseRedactor drops the text entirely.
type eraseRedactor struct{}

// Erase returns a redactor that writes nothing: the field disappears from
// the output. This is also the engine's behavior for a class with neither a
// registered redactor nor a fallback.
func Erase() Redactor {
	return &eraseRedactor{}
}

func (r *eraseRedactor) Redact(_ DataClass, _ string, _ io.Writer) error {
	return nil
}

func (r *eraseRedactor) ExactLen() (int, bool) {
	return 0, true
}

// maskRedactor writes a fixed mask string.
type maskRedactor struct {
	mask string
}

// Mask returns a redactor that writes the constant 8-character mask
// "********" regardless of input length.
func Mask() Redactor {
	return &maskRedactor{mask: asteriskMask}
}

// MaskWith returns a redactor that writes n copies of r. Values of n at or
// below zero produce an empty mask, equivalent to Erase.
func MaskWith(r rune, n int) Redactor {
	if n < 0 {
		n = 0
	}
	return &maskRedactor{mask: strings.Repeat(string(r), n)}
}

func (r *maskRedactor) Redact(_ DataClass, _ string, w io.Writer) error {
	_, err := io.WriteString(w, r.mask)
	return err
}

func (r *maskRedactor) ExactLen() (int, bool) {
	return len(r.mask), true
}

// insertRedactor writes fixed replacement text.
type insertRedactor struct {
	text string
}

// Insert returns a redactor that writes the given replacement text in place
// of the value, for example "[removed]". The replacement is fixed at
// construction and never derived from the input.
func Insert(text string) Redactor {
	return &insertRedactor{text: text}
}

func (r *insertRedactor) Redact(_ DataClass, _ string, w io.Writer) error {
	_, err := io.WriteString(w, r.text)
	return err
}

func (r *insertRedactor) ExactLen() (int, bool) {
	return len(r.text), true
}

// taggedRedactor wraps another redactor's output in a class tag.
type taggedRedactor struct {
	inner Redactor
}

// Tagged returns a redactor that wraps inner's output in a class tag:
// "<taxonomy/name:" + inner output + ">". A nil inner tags an empty body,
// so Tagged(nil) produces exactly the debug marker shape. Tagged output has
// no exact length: the prefix varies by class.
func Tagged(inner Redactor) Redactor {
	if inner == nil {
		inner = Erase()
	}
	return &taggedRedactor{inner: inner}
}

func (r *taggedRedactor) Redact(class DataClass, text string, w io.Writer) error {
	if _, err := io.WriteString(w, "<"+class.String()+":"); err != nil {
		return err
	}
	if err := r.inner.Redact(class, text, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, ">")
	return err
}
