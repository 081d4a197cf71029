package veil

import (
	"context"
	"io"
	"slices"
	"time"
)

// Engine is the read-only dispatch table built by an EngineBuilder: it maps
// each data class to its redactor and drives redaction into caller-supplied
// sinks. An engine is immutable after Build and safe to share across all
// concurrent callers; dispatch touches no mutable state.
//
// Resolution order for a class: exact registration, else the fallback, else
// fail-closed erasure (nothing is written and a veil.engine.gap signal is
// emitted). No resolution path can fall open to the raw text.
type Engine struct {
	redactors map[DataClass]Redactor
	fallback  Redactor
}

// Redact resolves a redactor for the container's class and drives the
// container's textual extraction through it into w. Sink write failures
// propagate; by then only redacted bytes have been written, never the raw
// text.
func (e *Engine) Redact(v Classified, w io.Writer) error {
	start := time.Now()

	err := v.Externalize(ExtractorFunc(func(class DataClass, text string) error {
		return e.RedactText(class, text, w)
	}))

	emitRedactComplete(context.Background(), v.DataClass().String(), time.Since(start), err)
	return err
}

// RedactText applies the redactor resolved for class to already-extracted
// text. Exported for callers that hold text outside a container, such as
// tag-classified struct fields during export.
func (e *Engine) RedactText(class DataClass, text string, w io.Writer) error {
	r, ok := e.redactors[class]
	if !ok {
		r = e.fallback
		if r == nil {
			emitDispatchGap(context.Background(), class.String())
			return nil
		}
	}
	return r.Redact(class, text, w)
}

// ExactLen returns the fixed output length for a class, when the resolved
// redactor declares one via LengthHinter. A class that resolves to the
// fail-closed erasure reports (0, true): nothing will be written.
func (e *Engine) ExactLen(class DataClass) (int, bool) {
	r, ok := e.redactors[class]
	if !ok {
		r = e.fallback
		if r == nil {
			return 0, true
		}
	}
	if h, ok := r.(LengthHinter); ok {
		return h.ExactLen()
	}
	return 0, false
}

// Classes returns the explicitly registered classes in Compare order. The
// fallback, if any, is not listed.
func (e *Engine) Classes() []DataClass {
	out := make([]DataClass, 0, len(e.redactors))
	for class := range e.redactors {
		out = append(out, class)
	}
	slices.SortFunc(out, DataClass.Compare)
	return out
}

// HasFallback reports whether a fallback redactor is set.
func (e *Engine) HasFallback() bool {
	return e.fallback != nil
}
