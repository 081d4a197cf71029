package veil

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for veil events.
var (
	SignalEngineBuilt     = capitan.NewSignal("veil.engine.built", "Redaction engine constructed")
	SignalDispatchGap     = capitan.NewSignal("veil.engine.gap", "No redactor or fallback for a data class")
	SignalRedactComplete  = capitan.NewSignal("veil.redact.complete", "Container redaction finished")
	SignalExporterCreated = capitan.NewSignal("veil.exporter.created", "Exporter instantiated")
	SignalExportStart     = capitan.NewSignal("veil.export.start", "Export operation beginning")
	SignalExportComplete  = capitan.NewSignal("veil.export.complete", "Export operation finished")
)

// Keys for typed event data.
var (
	KeyClass         = capitan.NewStringKey("class")
	KeyClassCount    = capitan.NewIntKey("class_count")
	KeyFallback      = capitan.NewStringKey("fallback")
	KeyContentType   = capitan.NewStringKey("content_type")
	KeyTypeName      = capitan.NewStringKey("type_name")
	KeySize          = capitan.NewIntKey("size")
	KeyDuration      = capitan.NewDurationKey("duration")
	KeyError         = capitan.NewErrorKey("error")
	KeyRedactedCount = capitan.NewIntKey("redacted_count")
)

// emitEngineBuilt emits an event when a builder produces an engine.
func emitEngineBuilt(ctx context.Context, classCount int, fallback string) {
	capitan.Emit(ctx, SignalEngineBuilt,
		KeyClassCount.Field(classCount),
		KeyFallback.Field(fallback),
	)
}

// emitDispatchGap emits an event when a class resolves to neither a
// registered redactor nor a fallback and the engine erases instead.
func emitDispatchGap(ctx context.Context, class string) {
	capitan.Emit(ctx, SignalDispatchGap,
		KeyClass.Field(class),
	)
}

// emitRedactComplete emits an event when a container redaction finishes.
func emitRedactComplete(ctx context.Context, class string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyClass.Field(class),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalRedactComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalRedactComplete, fields...)
	}
}

// emitExporterCreated emits an event when an exporter is created.
func emitExporterCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalExporterCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitExportStart emits an event when export begins.
func emitExportStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalExportStart,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitExportComplete emits an event when export finishes.
func emitExportComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, redacted int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyRedactedCount.Field(redacted),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalExportComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalExportComplete, fields...)
	}
}
