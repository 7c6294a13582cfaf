package core

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/reoring/modelshim/model"
)

// FaultKind classifies a validation failure. Generations map kinds to their
// own error codes.
type FaultKind int

const (
	FaultMissing   FaultKind = iota + 1 // Required field absent.
	FaultExtra                          // Unknown key under ExtraForbid.
	FaultType                           // Value cannot be coerced.
	FaultNull                           // Null for a non-nullable field.
	FaultNotObject                      // Model input is not a mapping.
	FaultOverflow                       // Number out of range for the field.
)

// Fault is one validation failure. Path holds object keys and array indices
// from the root model.
type Fault struct {
	Path     []string
	Kind     FaultKind
	Expected string // Expected Go type for FaultType/FaultOverflow.
	Cause    error
}

// Options tune the engine per generation.
type Options struct {
	// Config resolves a model type's configuration. Nil means defaults.
	Config func(reflect.Type) model.Config
	// NumbersToStrings lets numbers coerce into string fields in lax mode.
	NumbersToStrings bool
}

func (o Options) config(t reflect.Type) model.Config {
	if o.Config == nil {
		return model.Config{}
	}
	return o.Config(t)
}

// Validate fills dst from value. Validation failures are returned as faults;
// the error is non-nil only when dst is not a usable model pointer.
func Validate(dst model.Model, value any, opt Options) ([]Fault, error) {
	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: need a non-nil pointer, got %T", ErrNotModel, dst)
	}
	if _, err := Inspect(rv.Type()); err != nil {
		return nil, err
	}
	v := &validator{opt: opt}
	v.model(rv.Elem(), value, nil)
	return v.faults, nil
}

type validator struct {
	opt    Options
	faults []Fault
}

func (v *validator) fault(path []string, kind FaultKind, t reflect.Type, cause error) {
	f := Fault{Path: path, Kind: kind, Cause: cause}
	if t != nil {
		f.Expected = t.String()
	}
	v.faults = append(v.faults, f)
}

// model validates raw into the model struct sv (addressable).
func (v *validator) model(sv reflect.Value, raw any, path []string) bool {
	before := len(v.faults)
	st, err := Inspect(sv.Type())
	if err != nil {
		v.fault(path, FaultType, sv.Type(), err)
		return false
	}
	obj, ok := asObject(raw)
	if !ok {
		v.fault(path, FaultNotObject, sv.Type(), nil)
		return false
	}
	cfg := v.opt.config(sv.Type())
	base := sv.Addr().Interface().(model.Model).ModelBase()
	base.Reset()

	for _, f := range st.Fields {
		fv := sv.FieldByIndex(f.Index)
		item, present := obj[f.Name]
		if !present {
			if !f.HasDefault {
				v.fault(appendPath(path, f.Name), FaultMissing, nil, nil)
				continue
			}
			d, err := f.Default()
			if err != nil {
				v.fault(appendPath(path, f.Name), FaultType, f.Type, err)
				continue
			}
			fv.Set(d)
			continue
		}
		if v.assign(fv, item, appendPath(path, f.Name), cfg.Strict) {
			base.MarkSet(f.Name)
		}
	}

	if cfg.Extra != model.ExtraIgnore {
		var unknown []string
		for k := range obj {
			if _, declared := st.Lookup(k); !declared {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			if cfg.Extra == model.ExtraForbid {
				v.fault(appendPath(path, k), FaultExtra, nil, nil)
				continue
			}
			base.SetExtra(k, obj[k])
		}
	}
	return len(v.faults) == before
}

var timeType = reflect.TypeOf(time.Time{})

// assign coerces raw into dst (addressable) and reports success.
func (v *validator) assign(dst reflect.Value, raw any, path []string, strict bool) bool {
	t := dst.Type()
	if raw == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			dst.Set(reflect.Zero(t))
			return true
		}
		v.fault(path, FaultNull, t, nil)
		return false
	}
	rv := reflect.ValueOf(raw)
	if rv.Type() == t {
		dst.Set(rv)
		if model.IsModelType(t) {
			b := dst.Addr().Interface().(model.Model).ModelBase()
			*b = b.Clone()
		}
		return true
	}
	if model.IsModelType(t) {
		return v.model(dst, raw, path)
	}

	switch t.Kind() {
	case reflect.Pointer:
		nv := reflect.New(t.Elem())
		if !v.assign(nv.Elem(), raw, path, strict) {
			return false
		}
		dst.Set(nv)
		return true
	case reflect.Interface:
		if rv.Type().AssignableTo(t) {
			dst.Set(rv)
			return true
		}
		v.fault(path, FaultType, t, nil)
		return false
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 && rv.Kind() == reflect.String {
			return v.decode(dst, raw, path)
		}
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			v.fault(path, FaultType, t, nil)
			return false
		}
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		ok := true
		for i := 0; i < rv.Len(); i++ {
			if !v.assign(out.Index(i), rv.Index(i).Interface(), appendPath(path, strconv.Itoa(i)), strict) {
				ok = false
			}
		}
		if ok {
			dst.Set(out)
		}
		return ok
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return v.decode(dst, raw, path)
		}
		obj, isObj := asObject(raw)
		if !isObj {
			v.fault(path, FaultType, t, nil)
			return false
		}
		out := reflect.MakeMapWithSize(t, len(obj))
		ok := true
		for k, item := range obj {
			ev := reflect.New(t.Elem()).Elem()
			if !v.assign(ev, item, appendPath(path, k), strict) {
				ok = false
				continue
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
		}
		if ok {
			dst.Set(out)
		}
		return ok
	case reflect.Struct:
		if t == timeType {
			var (
				tm  time.Time
				err error
			)
			if strict {
				tm, err = parseDateTimeStrict(raw)
			} else {
				tm, err = ParseDateTime(raw)
			}
			if err != nil {
				v.fault(path, FaultType, t, err)
				return false
			}
			dst.Set(reflect.ValueOf(tm))
			return true
		}
		return v.decode(dst, raw, path)
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		if kind, err := setScalar(dst, rv, strict, v.opt.NumbersToStrings); kind != 0 {
			v.fault(path, kind, t, err)
			return false
		}
		return true
	}
	return v.decode(dst, raw, path)
}

// decode is the fallback for types without a dedicated rule: round-trip the
// raw value through JSON into a fresh value of dst's type.
func (v *validator) decode(dst reflect.Value, raw any, path []string) bool {
	b, err := json.Marshal(raw)
	if err != nil {
		v.fault(path, FaultType, dst.Type(), err)
		return false
	}
	nv := reflect.New(dst.Type())
	if err := json.Unmarshal(b, nv.Interface()); err != nil {
		v.fault(path, FaultType, dst.Type(), err)
		return false
	}
	dst.Set(nv.Elem())
	return true
}

// asObject converts any string-keyed map into map[string]any.
func asObject(raw any) (map[string]any, bool) {
	if m, ok := raw.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func appendPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
