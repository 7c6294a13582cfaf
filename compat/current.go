package compat

import (
	"fmt"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/modelshim/model"
	v2 "github.com/reoring/modelshim/model/v2"
)

type currentAdapter struct{}

// Current returns the Adapter for generation 2.
func Current() Adapter { return currentAdapter{} }

func (currentAdapter) Generation() Generation { return GenerationV2 }
func (currentAdapter) Version() string        { return v2.Version }

func (currentAdapter) Validate(dst model.Model, value any) error { return v2.ModelValidate(dst, value) }

func (currentAdapter) FieldIsRequired(f Field) bool { return currentField(f).IsRequired() }

func (currentAdapter) FieldDefault(f Field) (any, bool) {
	v := currentField(f).GetDefault()
	if _, undefined := v.(v2.UndefinedType); undefined {
		return nil, false
	}
	return v, true
}

func (currentAdapter) FieldDeclaredType(f Field) reflect.Type { return currentField(f).Annotation }

func (currentAdapter) ModelConfig(t reflect.Type) (model.Config, error) {
	if err := checkModelType(t); err != nil {
		return model.Config{}, err
	}
	cfg := v2.ModelConfig(t)
	extra, err := model.ParseExtraPolicy(cfg.Extra)
	if err != nil {
		return model.Config{}, err
	}
	return model.Config{Title: cfg.Title, Extra: extra, Strict: cfg.Strict}, nil
}

func (currentAdapter) ModelFields(t reflect.Type) (*orderedmap.OrderedMap[string, Field], error) {
	infos, err := v2.ModelFields(t)
	if err != nil {
		return nil, err
	}
	out := orderedmap.New[string, Field]()
	for p := infos.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, Field{Name: p.Key, native: p.Value})
	}
	return out, nil
}

func (currentAdapter) CopyModel(m model.Model) model.Model { return v2.ModelCopy(m) }

func (currentAdapter) DumpJSON(m model.Model, indent int) (string, error) {
	return v2.ModelDumpJSON(m, indent)
}

func (currentAdapter) DumpDict(m model.Model, opt DumpOptions) (map[string]any, error) {
	return v2.ModelDump(m, v2.DumpOptions{ExcludeUnset: opt.ExcludeUnset, ExcludeDefaults: opt.ExcludeDefaults})
}

func currentField(f Field) *v2.FieldInfo {
	fi, ok := f.native.(*v2.FieldInfo)
	if !ok || fi == nil {
		panic(fmt.Sprintf("compat: field %q does not carry a v2 descriptor (got %T)", f.Name, f.native))
	}
	return fi
}
