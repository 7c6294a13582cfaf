// Package v1 is the first generation of the model library API.
//
// Field metadata is exposed as ModelField values with a Required flag and a
// nil Default for required fields; configuration comes from a Config method
// on the model. Validation is always lax: numeric strings become numbers and
// numbers become strings.
package v1

import (
	"fmt"
	"reflect"

	"github.com/reoring/modelshim/internal/core"
	"github.com/reoring/modelshim/model"
)

// Version is the library version string of this generation.
const Version = "1.10.13"

// Extra is the extra-keys behavior of a model.
type Extra string

const (
	ExtraIgnore Extra = "ignore"
	ExtraForbid Extra = "forbid"
	ExtraAllow  Extra = "allow"
)

// Config is the configuration of a model. Models provide it by implementing
// Configurer; the zero value means defaults.
type Config struct {
	Title string
	Extra Extra
}

// Configurer is implemented by models that carry a Config.
type Configurer interface {
	Config() Config
}

// ConfigOf returns the Config of the model type t.
func ConfigOf(t reflect.Type) Config {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var cfg Config
	if c, ok := reflect.New(t).Interface().(Configurer); ok {
		cfg = c.Config()
	}
	if cfg.Title == "" {
		cfg.Title = model.TypeName(t)
	}
	if cfg.Extra == "" {
		cfg.Extra = ExtraIgnore
	}
	return cfg
}

func engineConfig(t reflect.Type) model.Config {
	cfg := ConfigOf(t)
	extra, err := model.ParseExtraPolicy(string(cfg.Extra))
	if err != nil {
		extra = model.ExtraIgnore
	}
	return model.Config{Title: cfg.Title, Extra: extra}
}

var options = core.Options{Config: engineConfig, NumbersToStrings: true}

// ModelField describes one declared field.
type ModelField struct {
	Name      string
	Required  bool
	Default   any // nil for required fields.
	OuterType reflect.Type
	field     *core.Field
}

// GetDefault returns a fresh copy of the default, or nil for required fields.
func (f *ModelField) GetDefault() any {
	if f.field == nil {
		return f.Default
	}
	v, _ := f.field.DefaultValue()
	return v
}

// FieldList returns the fields of the model type t in declaration order.
func FieldList(t reflect.Type) ([]*ModelField, error) {
	st, err := core.Inspect(t)
	if err != nil {
		return nil, fmt.Errorf("v1: %w", err)
	}
	out := make([]*ModelField, 0, len(st.Fields))
	for _, f := range st.Fields {
		def, _ := f.DefaultValue()
		out = append(out, &ModelField{
			Name:      f.Name,
			Required:  !f.HasDefault,
			Default:   def,
			OuterType: f.Type,
			field:     f,
		})
	}
	return out, nil
}

// ParseObj validates obj (a string-keyed mapping) into dst. Validation
// failures are returned as *ValidationError.
func ParseObj(dst model.Model, obj any) error {
	faults, err := core.Validate(dst, obj, options)
	if err != nil {
		return fmt.Errorf("v1: %w", err)
	}
	if len(faults) > 0 {
		return newValidationError(ConfigOf(reflect.TypeOf(dst)).Title, faults)
	}
	return nil
}

// Copy returns a shallow copy of m.
func Copy(m model.Model) model.Model { return core.Copy(m) }

// DictOptions selects the fields Dict leaves out.
type DictOptions struct {
	ExcludeUnset    bool
	ExcludeDefaults bool
}

// Dict renders m as a plain map.
func Dict(m model.Model, opt DictOptions) (map[string]any, error) {
	om, err := core.Dump(m, core.DumpOptions{ExcludeUnset: opt.ExcludeUnset, ExcludeDefaults: opt.ExcludeDefaults})
	if err != nil {
		return nil, fmt.Errorf("v1: %w", err)
	}
	return core.Plain(om), nil
}

// JSON serializes m; indent <= 0 yields compact output.
func JSON(m model.Model, indent int) (string, error) {
	s, err := core.JSON(m, indent)
	if err != nil {
		return "", fmt.Errorf("v1: %w", err)
	}
	return s, nil
}
