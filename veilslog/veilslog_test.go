package veilslog

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/zoobzio/veil"
)

// failRedactor fails every redaction.
type failRedactor struct{}

func (failRedactor) Redact(veil.DataClass, string, io.Writer) error {
	return errors.New("redactor backend down")
}

func maskEngine(t *testing.T) *veil.Engine {
	t.Helper()
	b := veil.NewEngineBuilder()
	if err := b.AddClassRedactor(veil.ClassSensitive, veil.Mask()); err != nil {
		t.Fatalf("AddClassRedactor() error: %v", err)
	}
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return engine
}

func TestNew(t *testing.T) {
	if fn := New(maskEngine(t)); fn == nil {
		t.Error("New() should return non-nil func")
	}
}

func TestReplaceAttr_RedactsContainer(t *testing.T) {
	fn := New(maskEngine(t))

	got := fn(nil, slog.Any("user", veil.NewSensitive("John Doe")))

	if got.Value.Kind() != slog.KindString {
		t.Fatalf("replaced attr kind = %v, want KindString", got.Value.Kind())
	}
	if got.Value.String() != "********" {
		t.Errorf("replaced attr = %q, want %q", got.Value.String(), "********")
	}
	if got.Key != "user" {
		t.Errorf("replaced attr key = %q, want %q", got.Key, "user")
	}
}

func TestReplaceAttr_PassthroughNonClassified(t *testing.T) {
	fn := New(maskEngine(t))

	tests := []slog.Attr{
		slog.String("msg", "login"),
		slog.Int("count", 3),
		slog.Any("payload", struct{ Region string }{"eu-west"}),
	}

	for _, a := range tests {
		got := fn(nil, a)
		if !got.Equal(a) {
			t.Errorf("attr %v was rewritten to %v", a, got)
		}
	}
}

func TestReplaceAttr_NilEngine(t *testing.T) {
	fn := New(nil)

	got := fn(nil, slog.Any("user", veil.NewSensitive("John Doe")))

	if got.Value.String() != "<core/sensitive:REDACTED>" {
		t.Errorf("replaced attr = %q, want marker", got.Value.String())
	}
}

func TestReplaceAttr_GapClassErases(t *testing.T) {
	engine, err := veil.NewEngineBuilder().Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	fn := New(engine)

	got := fn(nil, slog.Any("user", veil.NewSensitive("John Doe")))

	if got.Value.Kind() != slog.KindString || got.Value.String() != "" {
		t.Errorf("gap attr = %q, want empty string", got.Value.String())
	}
}

func TestReplaceAttr_RedactErrorFallsBackToMarker(t *testing.T) {
	b := veil.NewEngineBuilder()
	if err := b.AddClassRedactor(veil.ClassSensitive, failRedactor{}); err != nil {
		t.Fatalf("AddClassRedactor() error: %v", err)
	}
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	fn := New(engine)

	got := fn(nil, slog.Any("user", veil.NewSensitive("John Doe")))

	if got.Value.String() != "<core/sensitive:REDACTED>" {
		t.Errorf("replaced attr = %q, want marker", got.Value.String())
	}
	if strings.Contains(got.Value.String(), "John Doe") {
		t.Errorf("replaced attr %q leaks the value", got.Value.String())
	}
}

func TestHandler_EndToEnd(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: New(maskEngine(t)),
	}))

	logger.Info("login", "user", veil.NewSensitive("John Doe"), "attempt", 2)

	out := buf.String()
	if strings.Contains(out, "John Doe") {
		t.Errorf("log output leaks the value: %s", out)
	}
	if !strings.Contains(out, `"user":"********"`) {
		t.Errorf("log output missing redacted attr: %s", out)
	}
	if !strings.Contains(out, `"attempt":2`) {
		t.Errorf("log output missing plain attr: %s", out)
	}
}

func TestHandler_NestedContainerMarshalsAsMarker(t *testing.T) {
	// Containers inside struct attrs are out of ReplaceAttr's reach; the
	// handler's encoder still only sees the marker
	type record struct {
		Name veil.Sensitive[string] `json:"name"`
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: New(maskEngine(t)),
	}))

	logger.Info("sync", "record", record{Name: veil.NewSensitive("John Doe")})

	out := buf.String()
	if strings.Contains(out, "John Doe") {
		t.Errorf("log output leaks the value: %s", out)
	}
	if !strings.Contains(out, "REDACTED") {
		t.Errorf("log output missing marker: %s", out)
	}
}
