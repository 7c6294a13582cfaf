package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/reoring/modelshim/model"
)

// ErrNotModel is returned for types that do not embed model.Base.
var ErrNotModel = errors.New("not a model type")

// Field is the engine's view of one declared field.
type Field struct {
	Name       string // External key.
	GoName     string
	Index      []int
	Type       reflect.Type
	HasDefault bool
	defaultTag string
}

// Default decodes a fresh copy of the declared default. Callers must check
// HasDefault first.
func (f *Field) Default() (reflect.Value, error) {
	return decodeDefault(f.Type, f.defaultTag)
}

// DefaultValue returns the declared default; ok is false when the field has
// none.
func (f *Field) DefaultValue() (v any, ok bool) {
	if !f.HasDefault {
		return nil, false
	}
	d, err := f.Default()
	if err != nil {
		// Defaults are checked by Inspect.
		return nil, false
	}
	return d.Interface(), true
}

// Struct describes a model type.
type Struct struct {
	Type   reflect.Type
	Fields []*Field // Declaration order.
	byName map[string]*Field
}

// Lookup returns the field with the given external key.
func (s *Struct) Lookup(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

var (
	inspected sync.Map // reflect.Type -> *Struct
	baseType  = reflect.TypeOf(model.Base{})
)

// Inspect returns the field layout of t (a model struct or a pointer to one).
// Results are cached per type.
func Inspect(t reflect.Type) (*Struct, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !model.IsModelType(t) {
		return nil, fmt.Errorf("%w: %v", ErrNotModel, t)
	}
	if s, ok := inspected.Load(t); ok {
		return s.(*Struct), nil
	}
	s := &Struct{Type: t, byName: map[string]*Field{}}
	if err := collect(s, t, nil); err != nil {
		return nil, err
	}
	actual, _ := inspected.LoadOrStore(t, s)
	return actual.(*Struct), nil
}

func collect(s *Struct, t reflect.Type, index []int) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		idx := append(append([]int(nil), index...), i)
		if sf.Anonymous {
			if sf.Type == baseType {
				continue
			}
			// untagged embedded structs are flattened, like encoding/json
			if sf.Type.Kind() == reflect.Struct && sf.Tag.Get("json") == "" {
				if err := collect(s, sf.Type, idx); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		name := ResolveKey(sf)
		if name == "-" {
			continue
		}
		if _, dup := s.byName[name]; dup {
			return fmt.Errorf("%v: duplicate field key %q", s.Type, name)
		}
		f := &Field{Name: name, GoName: sf.Name, Index: idx, Type: sf.Type}
		if tag, ok := sf.Tag.Lookup("default"); ok {
			f.HasDefault = true
			f.defaultTag = tag
			if _, err := f.Default(); err != nil {
				return fmt.Errorf("%v.%s: invalid default %q: %w", s.Type, sf.Name, tag, err)
			}
		}
		s.Fields = append(s.Fields, f)
		s.byName[name] = f
	}
	return nil
}

// decodeDefault turns a default tag into a value of type t. String-kinded
// fields take the raw text unless it is a quoted JSON string.
func decodeDefault(t reflect.Type, tag string) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	if t.Kind() == reflect.String && !strings.HasPrefix(tag, `"`) {
		v.SetString(tag)
		return v, nil
	}
	if err := json.Unmarshal([]byte(tag), v.Addr().Interface()); err != nil {
		return reflect.Value{}, err
	}
	return v, nil
}
