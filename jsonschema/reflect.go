package jsonschema

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/modelshim/compat"
	"github.com/reoring/modelshim/model"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// For returns the schema of the model type T as seen through a.
func For[T any](a compat.Adapter) (*Schema, error) {
	return Reflect(a, model.TypeOf[T]())
}

// Reflect returns the schema of the model type t as seen through a. Field
// names, requiredness, defaults and declared types all come from the
// adapter, so both generations produce the same document.
func Reflect(a compat.Adapter, t reflect.Type) (*Schema, error) {
	r := &reflector{a: a, visiting: map[reflect.Type]bool{}}
	s, err := r.object(t)
	if err != nil {
		return nil, err
	}
	s.Schema = Draft
	return s, nil
}

type reflector struct {
	a        compat.Adapter
	visiting map[reflect.Type]bool
}

func (r *reflector) object(t reflect.Type) (*Schema, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	// recursive models are cut at the second visit
	if r.visiting[t] {
		return &Schema{Type: "object"}, nil
	}
	r.visiting[t] = true
	defer delete(r.visiting, t)

	cfg, err := r.a.ModelConfig(t)
	if err != nil {
		return nil, err
	}
	fields, err := r.a.ModelFields(t)
	if err != nil {
		return nil, err
	}
	props := orderedmap.New[string, *Schema]()
	var req []string
	for p := fields.Oldest(); p != nil; p = p.Next() {
		ps, err := r.value(r.a.FieldDeclaredType(p.Value))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", cfg.Title, p.Key, err)
		}
		if r.a.FieldIsRequired(p.Value) {
			req = append(req, p.Key)
		} else if def, ok := r.a.FieldDefault(p.Value); ok && !isNil(def) {
			ps.Default = def
		}
		props.Set(p.Key, ps)
	}
	sort.Strings(req)
	return &Schema{
		Title:                cfg.Title,
		Type:                 "object",
		Properties:           props,
		Required:             req,
		AdditionalProperties: cfg.Extra != model.ExtraForbid,
	}, nil
}

func (r *reflector) value(t reflect.Type) (*Schema, error) {
	switch {
	case t == timeType:
		return &Schema{Type: "string", Format: "date-time"}, nil
	case t == bytesType:
		return &Schema{Type: "string", Format: "byte"}, nil
	case model.IsModelType(t):
		return r.object(t)
	}
	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Interface:
		return &Schema{}, nil
	case reflect.Pointer:
		inner, err := r.value(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{AnyOf: []*Schema{inner, {Type: "null"}}}, nil
	case reflect.Slice, reflect.Array:
		items, err := r.value(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &Schema{Type: "object"}, nil
		}
		vs, err := r.value(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: vs}, nil
	case reflect.Struct:
		return &Schema{Type: "object"}, nil
	}
	return nil, fmt.Errorf("unsupported type %v", t)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
