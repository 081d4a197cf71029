package veil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitEngineBuilt(_ *testing.T) {
	// Should not panic
	emitEngineBuilt(context.Background(), 3, "*veil.eraseRedactor")
}

func TestEmitDispatchGap(_ *testing.T) {
	emitDispatchGap(context.Background(), "hr/ssn")
}

func TestEmitRedactComplete_Success(_ *testing.T) {
	emitRedactComplete(context.Background(), "core/sensitive", 5*time.Millisecond, nil)
}

func TestEmitRedactComplete_Error(_ *testing.T) {
	emitRedactComplete(context.Background(), "core/sensitive", 5*time.Millisecond, errors.New("test error"))
}

func TestEmitExporterCreated(_ *testing.T) {
	emitExporterCreated(context.Background(), "application/json", "TestType")
}

func TestEmitExportStart(_ *testing.T) {
	emitExportStart(context.Background(), "application/json", "TestType")
}

func TestEmitExportComplete_Success(_ *testing.T) {
	emitExportComplete(context.Background(), "application/json", "TestType", 100, 10*time.Millisecond, 5, nil)
}

func TestEmitExportComplete_Error(_ *testing.T) {
	emitExportComplete(context.Background(), "application/json", "TestType", 0, 10*time.Millisecond, 0, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal any
	}{
		{"SignalEngineBuilt", SignalEngineBuilt},
		{"SignalDispatchGap", SignalDispatchGap},
		{"SignalRedactComplete", SignalRedactComplete},
		{"SignalExporterCreated", SignalExporterCreated},
		{"SignalExportStart", SignalExportStart},
		{"SignalExportComplete", SignalExportComplete},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  any
	}{
		{"KeyClass", KeyClass},
		{"KeyClassCount", KeyClassCount},
		{"KeyFallback", KeyFallback},
		{"KeyContentType", KeyContentType},
		{"KeyTypeName", KeyTypeName},
		{"KeySize", KeySize},
		{"KeyDuration", KeyDuration},
		{"KeyError", KeyError},
		{"KeyRedactedCount", KeyRedactedCount},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
