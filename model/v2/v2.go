// Package v2 is the second generation of the model library API.
//
// Field metadata is exposed as FieldInfo values whose GetDefault returns the
// Undefined sentinel for required fields; configuration comes from a
// ModelConfig method on the model. Validation honors ConfigDict.Strict and
// does not turn numbers into strings.
package v2

import (
	"fmt"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/modelshim/internal/core"
	"github.com/reoring/modelshim/model"
)

// Version is the library version string of this generation.
const Version = "2.5.3"

// UndefinedType is the type of Undefined.
type UndefinedType struct{}

func (UndefinedType) String() string { return "Undefined" }

// Undefined marks "no default" in FieldInfo. It is distinct from a nil
// default.
var Undefined = UndefinedType{}

// ConfigDict is the configuration of a model. Extra is "ignore", "forbid"
// or "allow"; empty means "ignore".
type ConfigDict struct {
	Title  string
	Extra  string
	Strict bool
}

// ConfigProvider is implemented by models that carry a ConfigDict.
type ConfigProvider interface {
	ModelConfig() ConfigDict
}

// ModelConfig returns the ConfigDict of the model type t.
func ModelConfig(t reflect.Type) ConfigDict {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var cfg ConfigDict
	if c, ok := reflect.New(t).Interface().(ConfigProvider); ok {
		cfg = c.ModelConfig()
	}
	if cfg.Title == "" {
		cfg.Title = model.TypeName(t)
	}
	if cfg.Extra == "" {
		cfg.Extra = "ignore"
	}
	return cfg
}

func engineConfig(t reflect.Type) model.Config {
	cfg := ModelConfig(t)
	extra, err := model.ParseExtraPolicy(cfg.Extra)
	if err != nil {
		extra = model.ExtraIgnore
	}
	return model.Config{Title: cfg.Title, Extra: extra, Strict: cfg.Strict}
}

var options = core.Options{Config: engineConfig}

// FieldInfo describes one declared field.
type FieldInfo struct {
	Annotation reflect.Type
	field      *core.Field
}

// IsRequired reports whether the field has no default.
func (f *FieldInfo) IsRequired() bool { return f.field == nil || !f.field.HasDefault }

// GetDefault returns a fresh copy of the default, or Undefined.
func (f *FieldInfo) GetDefault() any {
	if f.field == nil {
		return Undefined
	}
	v, ok := f.field.DefaultValue()
	if !ok {
		return Undefined
	}
	return v
}

// ModelFields returns the fields of the model type t keyed by name, in
// declaration order.
func ModelFields(t reflect.Type) (*orderedmap.OrderedMap[string, *FieldInfo], error) {
	st, err := core.Inspect(t)
	if err != nil {
		return nil, fmt.Errorf("v2: %w", err)
	}
	out := orderedmap.New[string, *FieldInfo]()
	for _, f := range st.Fields {
		out.Set(f.Name, &FieldInfo{Annotation: f.Type, field: f})
	}
	return out, nil
}

// ModelValidate validates obj (a string-keyed mapping) into dst. Validation
// failures are returned as *ValidationError.
func ModelValidate(dst model.Model, obj any) error {
	faults, err := core.Validate(dst, obj, options)
	if err != nil {
		return fmt.Errorf("v2: %w", err)
	}
	if len(faults) > 0 {
		return newValidationError(ModelConfig(reflect.TypeOf(dst)).Title, faults)
	}
	return nil
}

// ModelCopy returns a shallow copy of m.
func ModelCopy(m model.Model) model.Model { return core.Copy(m) }

// DumpOptions selects the fields ModelDump leaves out.
type DumpOptions struct {
	ExcludeUnset    bool
	ExcludeDefaults bool
}

// ModelDump renders m as a plain map.
func ModelDump(m model.Model, opt DumpOptions) (map[string]any, error) {
	om, err := core.Dump(m, core.DumpOptions{ExcludeUnset: opt.ExcludeUnset, ExcludeDefaults: opt.ExcludeDefaults})
	if err != nil {
		return nil, fmt.Errorf("v2: %w", err)
	}
	return core.Plain(om), nil
}

// ModelDumpJSON serializes m; indent <= 0 yields compact output.
func ModelDumpJSON(m model.Model, indent int) (string, error) {
	s, err := core.JSON(m, indent)
	if err != nil {
		return "", fmt.Errorf("v2: %w", err)
	}
	return s, nil
}
