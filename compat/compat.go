// Package compat presents one contract over both generations of the model
// library so calling code never branches on the installed version.
//
// The generation is resolved once, at package initialization, from
// LibraryVersion; Default is the matching Adapter and the package-level
// functions forward to it. Legacy and Current return the two
// implementations directly for callers that inject an Adapter themselves.
//
// Typical usage:
//
//	p, err := compat.ParseInto[Point](map[string]any{"x": 5})
//	fields, err := compat.ModelFields[Point]()
//	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
//		def, ok := compat.FieldDefault(pair.Value)
//		...
//	}
//	out, err := compat.DumpDict(p, compat.DumpOptions{ExcludeDefaults: true})
//
// The adapter never catches library errors: validation failures surface as
// the generation's own *ValidationError.
package compat

import (
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/modelshim/model"
)

// Generation identifies a model library API generation.
type Generation int

const (
	GenerationV1 Generation = 1
	GenerationV2 Generation = 2
)

func (g Generation) String() string {
	if g == GenerationV2 {
		return "v2"
	}
	return "v1"
}

// DumpOptions selects the fields DumpDict leaves out. The flags are
// independent.
type DumpOptions struct {
	ExcludeUnset    bool // Leave out fields never explicitly assigned.
	ExcludeDefaults bool // Leave out fields equal to their declared default.
}

// Field is an opaque field descriptor produced by an Adapter. It must be
// passed back to the Adapter (generation) that produced it.
type Field struct {
	Name   string
	native any
}

// NewField wraps a generation-native descriptor (*v1.ModelField or
// *v2.FieldInfo).
func NewField(name string, native any) Field { return Field{Name: name, native: native} }

// Native returns the generation-native descriptor.
func (f Field) Native() any { return f.native }

// Adapter is the uniform function contract over one library generation.
type Adapter interface {
	Generation() Generation
	// Version returns the library version string of the generation.
	Version() string

	// Validate coerces value (a string-keyed mapping) into dst.
	Validate(dst model.Model, value any) error

	FieldIsRequired(f Field) bool
	// FieldDefault returns the declared default; ok is false when there is
	// none. A declared nil default yields (nil, true).
	FieldDefault(f Field) (v any, ok bool)
	FieldDeclaredType(f Field) reflect.Type

	ModelConfig(t reflect.Type) (model.Config, error)
	// ModelFields enumerates declared fields in declaration order.
	ModelFields(t reflect.Type) (*orderedmap.OrderedMap[string, Field], error)

	// CopyModel returns a shallow copy; m must be a non-nil pointer.
	CopyModel(m model.Model) model.Model
	// DumpJSON serializes m; indent <= 0 yields compact output.
	DumpJSON(m model.Model, indent int) (string, error)
	DumpDict(m model.Model, opt DumpOptions) (map[string]any, error)
}

type modelPtr[T any] interface {
	*T
	model.Model
}

// ParseInto validates value into a new T using Default.
func ParseInto[T any, PT modelPtr[T]](value any) (PT, error) {
	dst := PT(new(T))
	if err := Default.Validate(dst, value); err != nil {
		return nil, err
	}
	return dst, nil
}

// Parse is ParseInto for call sites that already hold a raw mapping.
func Parse[T any, PT modelPtr[T]](data map[string]any) (PT, error) {
	return ParseInto[T, PT](data)
}

// FieldIsRequired reports whether f has no default.
func FieldIsRequired(f Field) bool { return Default.FieldIsRequired(f) }

// FieldDefault returns f's default; ok is false when there is none.
func FieldDefault(f Field) (any, bool) { return Default.FieldDefault(f) }

// FieldDeclaredType returns f's declared Go type.
func FieldDeclaredType(f Field) reflect.Type { return Default.FieldDeclaredType(f) }

// ModelConfig returns the normalized configuration of T.
func ModelConfig[T any]() (model.Config, error) { return Default.ModelConfig(model.TypeOf[T]()) }

// ModelFields returns the declared fields of T in declaration order.
func ModelFields[T any]() (*orderedmap.OrderedMap[string, Field], error) {
	return Default.ModelFields(model.TypeOf[T]())
}

// CopyModel returns a shallow, independent copy of m.
func CopyModel[M model.Model](m M) M { return Default.CopyModel(m).(M) }

// DumpJSON serializes m; indent <= 0 yields compact output.
func DumpJSON(m model.Model, indent int) (string, error) { return Default.DumpJSON(m, indent) }

// DumpDict renders m as a plain map.
func DumpDict(m model.Model, opt DumpOptions) (map[string]any, error) {
	return Default.DumpDict(m, opt)
}
