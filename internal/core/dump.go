package core

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/modelshim/model"
)

// Ordered is a dumped model: declared fields in declaration order followed
// by extra keys in sorted order.
type Ordered = orderedmap.OrderedMap[string, any]

// DumpOptions selects which fields a dump leaves out.
type DumpOptions struct {
	ExcludeUnset    bool // Leave out fields never explicitly assigned.
	ExcludeDefaults bool // Leave out fields equal to their declared default.
}

// Dump renders m as an ordered map. Nested models (directly, behind
// pointers, or inside slices and string-keyed maps) are dumped with the same
// options; other values are returned as they are.
func Dump(m model.Model, opt DumpOptions) (*Ordered, error) {
	rv := reflect.ValueOf(m)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: need a non-nil pointer, got %T", ErrNotModel, m)
	}
	return dumpModel(rv.Elem(), opt)
}

func dumpModel(sv reflect.Value, opt DumpOptions) (*Ordered, error) {
	if !sv.CanAddr() {
		cp := reflect.New(sv.Type()).Elem()
		cp.Set(sv)
		sv = cp
	}
	st, err := Inspect(sv.Type())
	if err != nil {
		return nil, err
	}
	base := sv.Addr().Interface().(model.Model).ModelBase()

	out := orderedmap.New[string, any]()
	for _, f := range st.Fields {
		if opt.ExcludeUnset && !base.IsSet(f.Name) {
			continue
		}
		fv := sv.FieldByIndex(f.Index)
		if opt.ExcludeDefaults && f.HasDefault {
			if d, err := f.Default(); err == nil && reflect.DeepEqual(fv.Interface(), d.Interface()) {
				continue
			}
		}
		val, err := dumpValue(fv, opt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		out.Set(f.Name, val)
	}
	extra := base.Extra()
	for _, k := range base.ExtraKeys() {
		out.Set(k, extra[k])
	}
	return out, nil
}

func dumpValue(v reflect.Value, opt DumpOptions) (any, error) {
	t := v.Type()
	switch {
	case model.IsModelType(t):
		return dumpModel(v, opt)
	case t.Kind() == reflect.Pointer && model.IsModelType(t.Elem()):
		if v.IsNil() {
			return nil, nil
		}
		return dumpModel(v.Elem(), opt)
	case (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && holdsModels(t.Elem()):
		if t.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}
		out := make([]any, v.Len())
		for i := range out {
			item, err := dumpValue(v.Index(i), opt)
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case t.Kind() == reflect.Map && t.Key().Kind() == reflect.String && holdsModels(t.Elem()):
		if v.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			item, err := dumpValue(iter.Value(), opt)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = item
		}
		return out, nil
	}
	return v.Interface(), nil
}

func holdsModels(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return model.IsModelType(t)
}

// Plain converts a dump into plain maps and slices.
func Plain(om *Ordered) map[string]any {
	if om == nil {
		return nil
	}
	out := make(map[string]any, om.Len())
	for p := om.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = plainValue(p.Value)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Ordered:
		return Plain(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plainValue(item)
		}
		return out
	}
	return v
}

// JSON serializes a full dump of m. indent <= 0 yields compact output;
// otherwise nested levels are indented by that many spaces.
func JSON(m model.Model, indent int) (string, error) {
	om, err := Dump(m, DumpOptions{})
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(om)
	if err != nil {
		return "", err
	}
	if indent <= 0 {
		return string(b), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", strings.Repeat(" ", indent)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Copy returns a shallow copy of m with independent fields-set bookkeeping.
// m must be a non-nil pointer.
func Copy(m model.Model) model.Model {
	src := reflect.ValueOf(m).Elem()
	dst := reflect.New(src.Type())
	dst.Elem().Set(src)
	out := dst.Interface().(model.Model)
	*out.ModelBase() = m.ModelBase().Clone()
	return out
}
