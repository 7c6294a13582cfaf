// Package model holds the generation-neutral building blocks that user
// models embed. Both library generations (model/v1 and model/v2) operate on
// the same Go structs; only their APIs differ.
//
// A model is a struct that embeds Base:
//
//	type Point struct {
//		model.Base
//		X int `json:"x"`
//		Y int `json:"y" default:"0"`
//	}
//
// Field keys come from the json tag. A default tag declares a default value
// as JSON text (string fields take the raw text unless it starts with a
// quote). Fields without a default are required.
package model

import (
	"reflect"
	"regexp"
	"sort"
)

// Model is implemented by every struct embedding Base (through its pointer).
type Model interface {
	ModelBase() *Base
}

// Base records which fields were explicitly assigned and keeps extra keys
// accepted under ExtraAllow. The zero value is ready to use.
//
// Base is not safe for concurrent mutation.
type Base struct {
	fieldsSet map[string]struct{}
	extra     map[string]any
}

// GenericModel is the base for parametrized models. Go generics make it the
// same type as Base:
//
//	type Page[T any] struct {
//		model.GenericModel
//		Data []T `json:"data"`
//	}
type GenericModel = Base

// ModelBase returns b itself; it makes every embedding struct a Model.
func (b *Base) ModelBase() *Base { return b }

// MarkSet records names as explicitly assigned. Parsing marks the fields it
// receives; fields assigned directly in Go code must be marked by the caller.
func (b *Base) MarkSet(names ...string) {
	if b.fieldsSet == nil {
		b.fieldsSet = make(map[string]struct{}, len(names))
	}
	for _, n := range names {
		b.fieldsSet[n] = struct{}{}
	}
}

// IsSet reports whether name was explicitly assigned.
func (b *Base) IsSet(name string) bool {
	_, ok := b.fieldsSet[name]
	return ok
}

// FieldsSet returns the explicitly assigned field names, sorted.
func (b *Base) FieldsSet() []string {
	out := make([]string, 0, len(b.fieldsSet))
	for k := range b.fieldsSet {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetExtra stores a value for a key that is not a declared field.
func (b *Base) SetExtra(key string, v any) {
	if b.extra == nil {
		b.extra = map[string]any{}
	}
	b.extra[key] = v
}

// Extra returns a copy of the extra keys, or nil when there are none.
func (b *Base) Extra() map[string]any {
	if len(b.extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(b.extra))
	for k, v := range b.extra {
		out[k] = v
	}
	return out
}

// ExtraKeys returns the extra keys, sorted.
func (b *Base) ExtraKeys() []string {
	out := make([]string, 0, len(b.extra))
	for k := range b.extra {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Reset forgets all fields-set and extra bookkeeping.
func (b *Base) Reset() {
	b.fieldsSet = nil
	b.extra = nil
}

// Clone returns an independent copy of the bookkeeping.
func (b *Base) Clone() Base {
	var out Base
	if len(b.fieldsSet) > 0 {
		out.fieldsSet = make(map[string]struct{}, len(b.fieldsSet))
		for k := range b.fieldsSet {
			out.fieldsSet[k] = struct{}{}
		}
	}
	out.extra = b.Extra()
	return out
}

// TypeOf returns the struct type of T; T may also be a pointer type.
func TypeOf[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

var qualifier = regexp.MustCompile(`[\w./-]+\.`)

// TypeName returns the name of t with type arguments unqualified, for
// example Page[Model] instead of Page[example.com/pkg.Model].
func TypeName(t reflect.Type) string {
	name := t.Name()
	for i := 0; i < len(name); i++ {
		if name[i] == '[' {
			return name[:i] + qualifier.ReplaceAllString(name[i:], "")
		}
	}
	return name
}

var modelType = reflect.TypeOf((*Model)(nil)).Elem()

// IsModelType reports whether t (or *t) implements Model and t is a struct.
func IsModelType(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	return reflect.PointerTo(t).Implements(modelType)
}
