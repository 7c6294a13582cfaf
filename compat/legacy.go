package compat

import (
	"fmt"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/modelshim/model"
	v1 "github.com/reoring/modelshim/model/v1"
)

type legacyAdapter struct{}

// Legacy returns the Adapter for generation 1.
func Legacy() Adapter { return legacyAdapter{} }

func (legacyAdapter) Generation() Generation { return GenerationV1 }
func (legacyAdapter) Version() string        { return v1.Version }

func (legacyAdapter) Validate(dst model.Model, value any) error { return v1.ParseObj(dst, value) }

func (legacyAdapter) FieldIsRequired(f Field) bool { return legacyField(f).Required }

func (legacyAdapter) FieldDefault(f Field) (any, bool) {
	mf := legacyField(f)
	if mf.Required {
		return nil, false
	}
	return mf.GetDefault(), true
}

func (legacyAdapter) FieldDeclaredType(f Field) reflect.Type { return legacyField(f).OuterType }

func (legacyAdapter) ModelConfig(t reflect.Type) (model.Config, error) {
	if err := checkModelType(t); err != nil {
		return model.Config{}, err
	}
	cfg := v1.ConfigOf(t)
	extra, err := model.ParseExtraPolicy(string(cfg.Extra))
	if err != nil {
		return model.Config{}, err
	}
	return model.Config{Title: cfg.Title, Extra: extra}, nil
}

func (legacyAdapter) ModelFields(t reflect.Type) (*orderedmap.OrderedMap[string, Field], error) {
	list, err := v1.FieldList(t)
	if err != nil {
		return nil, err
	}
	out := orderedmap.New[string, Field]()
	for _, mf := range list {
		out.Set(mf.Name, Field{Name: mf.Name, native: mf})
	}
	return out, nil
}

func (legacyAdapter) CopyModel(m model.Model) model.Model { return v1.Copy(m) }

func (legacyAdapter) DumpJSON(m model.Model, indent int) (string, error) { return v1.JSON(m, indent) }

func (legacyAdapter) DumpDict(m model.Model, opt DumpOptions) (map[string]any, error) {
	return v1.Dict(m, v1.DictOptions{ExcludeUnset: opt.ExcludeUnset, ExcludeDefaults: opt.ExcludeDefaults})
}

func legacyField(f Field) *v1.ModelField {
	mf, ok := f.native.(*v1.ModelField)
	if !ok || mf == nil {
		panic(fmt.Sprintf("compat: field %q does not carry a v1 descriptor (got %T)", f.Name, f.native))
	}
	return mf
}

func checkModelType(t reflect.Type) error {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if !model.IsModelType(t) {
		return fmt.Errorf("compat: %v is not a model type", t)
	}
	return nil
}
