package veil

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the veil tag with sentinel
	sentinel.Tag("veil")
}

// classifiedType is the interface type Classified for plan-time checks.
var classifiedType = reflect.TypeOf((*Classified)(nil)).Elem()

// Exporter walks structs of type T and produces a redacted, codec-encoded
// representation for telemetry or storage. Classified fields and fields
// tagged `veil:"taxonomy/name"` are redacted through the engine; fields
// tagged `veil:"-"` are omitted; everything else passes through unchanged.
//
// Exporters are safe for concurrent use. Field plans are built once per
// type at construction and cached process-wide.
type Exporter[T any] struct {
	codec  Codec
	engine *Engine

	// Field plan (immutable after construction)
	plan *exportPlan

	// Type metadata
	typeName string
}

// exportPlan describes how to export one struct type.
type exportPlan struct {
	typeName string
	fields   []exportFieldPlan

	// redacted counts the fields, including nested ones, that go through
	// the engine.
	redacted int
}

// exportMode selects how a field reaches the output map.
type exportMode int

const (
	modePassthrough exportMode = iota // copy the value as-is
	modeClassified                    // externalize through the engine
	modeTagged                        // redact the textual form under the tag class
	modeNested                        // recurse into a sub-plan
)

// exportFieldPlan describes how to export a single field.
type exportFieldPlan struct {
	index  []int  // reflect.Value.FieldByIndex access path
	name   string // field name for error messages
	key    string // output map key (json tag name when present)
	mode   exportMode
	class  DataClass   // tag-declared class for modeTagged
	nested *exportPlan // sub-plan for modeNested
	isPtr  bool        // nested struct behind a pointer
}

// NewExporter creates an Exporter for struct type T, encoding through codec
// and redacting through engine.
//
// Configuration errors surface here: a nil codec or engine, a non-struct T,
// and malformed veil tags all fail construction rather than the first
// Export.
func NewExporter[T any](codec Codec, engine *Engine) (*Exporter[T], error) {
	if codec == nil {
		return nil, &ConfigError{Err: ErrNilCodec}
	}
	if engine == nil {
		return nil, &ConfigError{Err: ErrNilEngine}
	}

	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, newConfigError(ErrNotStruct, "", rt.String())
	}

	// Get or build the cached field plan
	plan, err := getOrBuildPlan[T]()
	if err != nil {
		return nil, err
	}

	p := &Exporter[T]{
		codec:    codec,
		engine:   engine,
		plan:     plan,
		typeName: plan.typeName,
	}

	emitExporterCreated(context.Background(), codec.ContentType(), plan.typeName)
	return p, nil
}

// Export builds the redacted representation of obj and marshals it through
// the codec. A nil obj marshals the codec's null form. Redaction failures
// surface as ExportError; codec failures as CodecError.
func (p *Exporter[T]) Export(ctx context.Context, obj *T) ([]byte, error) {
	start := time.Now()
	emitExportStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitExportComplete(ctx, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start), p.plan.redacted, retErr)
	}()

	if obj == nil {
		retData, retErr = p.codec.Marshal(nil)
		if retErr != nil {
			retErr = newCodecError(ErrMarshal, retErr)
			return nil, retErr
		}
		return retData, nil
	}

	rv := reflect.ValueOf(obj).Elem()
	out, err := p.redactedMap(rv, p.plan)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, retErr = p.codec.Marshal(out)
	if retErr != nil {
		retErr = newCodecError(ErrMarshal, retErr)
		return nil, retErr
	}
	return retData, nil
}

// redactedMap applies a plan to a struct value, producing the output map.
func (p *Exporter[T]) redactedMap(rv reflect.Value, plan *exportPlan) (map[string]any, error) {
	out := make(map[string]any, len(plan.fields))

	for _, f := range plan.fields {
		fv := rv.FieldByIndex(f.index)

		switch f.mode {
		case modeClassified:
			switch fv.Kind() {
			case reflect.Pointer, reflect.Interface:
				if fv.IsNil() {
					out[f.key] = nil
					continue
				}
			}
			cv, ok := fv.Interface().(Classified)
			if !ok {
				cv, ok = fv.Addr().Interface().(Classified)
				if !ok {
					return nil, newExportError(ErrRedact, f.name,
						fmt.Errorf("%s does not implement Classified", fv.Type()))
				}
			}
			// An interface field can hold a typed nil container.
			if held := reflect.ValueOf(cv); held.Kind() == reflect.Pointer && held.IsNil() {
				out[f.key] = nil
				continue
			}

			redacted, err := p.redactClassified(cv)
			if err != nil {
				return nil, newExportError(ErrRedact, f.name, err)
			}
			out[f.key] = redacted

		case modeTagged:
			var sb strings.Builder
			if n, exact := p.engine.ExactLen(f.class); exact {
				sb.Grow(n)
			}
			if err := p.engine.RedactText(f.class, fieldText(fv), &sb); err != nil {
				return nil, newExportError(ErrRedact, f.name, err)
			}
			out[f.key] = sb.String()

		case modeNested:
			nv := fv
			if f.isPtr {
				if nv.IsNil() {
					out[f.key] = nil
					continue
				}
				nv = nv.Elem()
			}
			sub, err := p.redactedMap(nv, f.nested)
			if err != nil {
				return nil, err
			}
			out[f.key] = sub

		default:
			out[f.key] = fv.Interface()
		}
	}

	return out, nil
}

// redactClassified externalizes one container through the engine.
func (p *Exporter[T]) redactClassified(cv Classified) (string, error) {
	var sb strings.Builder
	if n, exact := p.engine.ExactLen(cv.DataClass()); exact {
		sb.Grow(n)
	}

	err := cv.Externalize(ExtractorFunc(func(class DataClass, text string) error {
		return p.engine.RedactText(class, text, &sb)
	}))
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// fieldText renders a field value as redaction input. Pointers dereference
// to their element; a nil pointer renders as the empty string and is still
// redacted under the field's class.
func fieldText(fv reflect.Value) string {
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return ""
		}
		fv = fv.Elem()
	}
	if fv.Kind() == reflect.String {
		return fv.String()
	}
	return fmt.Sprint(fv.Interface())
}

// Plan cache, keyed by struct type.
var (
	planCache   = make(map[reflect.Type]*exportPlan)
	planCacheMu sync.RWMutex
)

// getOrBuildPlan returns the cached plan for T or builds and caches it.
func getOrBuildPlan[T any]() (*exportPlan, error) {
	rt := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	planCacheMu.RLock()
	if plan, ok := planCache[rt]; ok {
		planCacheMu.RUnlock()
		return plan, nil
	}
	planCacheMu.RUnlock()

	// Slow path: build and cache with write-lock
	planCacheMu.Lock()
	defer planCacheMu.Unlock()

	// Double-check pattern
	if plan, ok := planCache[rt]; ok {
		return plan, nil
	}

	spec := sentinel.Scan[T]()
	plan, err := buildPlanFor(spec, rt, map[reflect.Type]bool{rt: true})
	if err != nil {
		return nil, err
	}

	planCache[rt] = plan
	return plan, nil
}

// buildPlanFor creates the export plan for one struct type. seen holds the
// types currently on the recursion stack, so self-referential structs
// terminate as passthrough fields.
func buildPlanFor(spec sentinel.Metadata, rt reflect.Type, seen map[reflect.Type]bool) (*exportPlan, error) {
	plan := &exportPlan{typeName: spec.TypeName}

	for _, field := range spec.Fields {
		sf := rt.FieldByIndex(field.Index)
		if !sf.IsExported() {
			continue
		}

		tag, hasTag := field.Tags["veil"]
		if hasTag && tag == "-" {
			continue
		}

		base := exportFieldPlan{
			index: field.Index,
			name:  field.Name,
			key:   exportKey(sf, field.Name),
		}

		// Classified containers redact under their own class
		if implementsClassified(field.ReflectType) {
			base.mode = modeClassified
			plan.fields = append(plan.fields, base)
			plan.redacted++
			continue
		}

		// Tagged fields redact their textual form under the tag class
		if hasTag {
			class, err := ParseDataClass(tag)
			if err != nil {
				return nil, newConfigError(ErrInvalidClass, tag, field.Name)
			}
			base.mode = modeTagged
			base.class = class
			plan.fields = append(plan.fields, base)
			plan.redacted++
			continue
		}

		// Nested structs recurse when anything inside needs redaction
		if field.Kind == sentinel.KindStruct {
			nested, err := nestedPlan(field.ReflectType, seen)
			if err != nil {
				return nil, err
			}
			if nested != nil {
				base.mode = modeNested
				base.nested = nested
				plan.fields = append(plan.fields, base)
				plan.redacted += nested.redacted
				continue
			}
		}

		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			nested, err := nestedPlan(field.ReflectType.Elem(), seen)
			if err != nil {
				return nil, err
			}
			if nested != nil {
				base.mode = modeNested
				base.nested = nested
				base.isPtr = true
				plan.fields = append(plan.fields, base)
				plan.redacted += nested.redacted
				continue
			}
		}

		base.mode = modePassthrough
		plan.fields = append(plan.fields, base)
	}

	return plan, nil
}

// nestedPlan builds the sub-plan for a nested struct type. It returns nil
// when the type is already on the recursion stack or contains nothing to
// redact; such fields pass through whole and their containers, if any,
// marshal as markers.
func nestedPlan(rt reflect.Type, seen map[reflect.Type]bool) (*exportPlan, error) {
	if seen[rt] {
		return nil, nil
	}

	spec := scanNested(rt)
	if spec == nil {
		return nil, nil
	}

	seen[rt] = true
	nested, err := buildPlanFor(*spec, rt, seen)
	delete(seen, rt)
	if err != nil {
		return nil, err
	}

	if nested.redacted == 0 {
		return nil, nil
	}
	return nested, nil
}

// scanNested scans a nested struct type and returns its metadata.
func scanNested(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseVeilTag(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// parseVeilTag extracts the veil tag from a struct tag.
func parseVeilTag(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup("veil"); ok {
		tags["veil"] = val
	}
	return tags
}

// implementsClassified reports whether values of rt satisfy Classified,
// directly or through their address.
func implementsClassified(rt reflect.Type) bool {
	return rt.Implements(classifiedType) || reflect.PointerTo(rt).Implements(classifiedType)
}

// exportKey returns the output map key for a field: the json tag name when
// one is present, else the field name.
func exportKey(sf reflect.StructField, name string) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return name
	}
	jsonName, _, _ := strings.Cut(tag, ",")
	if jsonName == "" || jsonName == "-" {
		return name
	}
	return jsonName
}
