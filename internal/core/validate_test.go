package core

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/modelshim/model"
)

type item struct {
	model.Base
	SKU   string  `json:"sku"`
	Price float64 `json:"price"`
}

type order struct {
	model.Base
	ID      int64             `json:"id"`
	Paid    bool              `json:"paid" default:"false"`
	Items   []item            `json:"items" default:"[]"`
	Ship    *item             `json:"ship" default:"null"`
	Meta    map[string]int    `json:"meta" default:"{}"`
	At      time.Time         `json:"at" default:"\"2024-01-01T00:00:00Z\""`
	Note    string            `json:"note" default:"n/a"`
	Any     any               `json:"any" default:"null"`
	Raw     map[int]string    `json:"raw" default:"null"`
	Counter uint8             `json:"counter" default:"0"`
	Attrs   map[string]string `json:"attrs" default:"null"`
}

func configFor(cfg model.Config) Options {
	return Options{Config: func(reflect.Type) model.Config { return cfg }}
}

func TestValidate_DefaultsAndFieldsSet(t *testing.T) {
	var o order
	faults, err := Validate(&o, map[string]any{"id": 7}, Options{})
	require.NoError(t, err)
	require.Empty(t, faults)

	assert.Equal(t, int64(7), o.ID)
	assert.Equal(t, []item{}, o.Items)
	assert.Nil(t, o.Ship)
	assert.Equal(t, "n/a", o.Note)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), o.At)
	assert.Equal(t, []string{"id"}, o.FieldsSet())
}

func TestValidate_Nested(t *testing.T) {
	var o order
	faults, err := Validate(&o, map[string]any{
		"id":    float64(1),
		"items": []any{map[string]any{"sku": "a", "price": 1.5}},
		"ship":  map[string]any{"sku": "s", "price": "2"},
		"meta":  map[string]any{"k": 3},
		"raw":   map[string]any{"1": "one"},
	}, Options{})
	require.NoError(t, err)
	require.Empty(t, faults)

	require.Len(t, o.Items, 1)
	assert.Equal(t, "a", o.Items[0].SKU)
	assert.True(t, o.Items[0].IsSet("price"))
	require.NotNil(t, o.Ship)
	assert.Equal(t, 2.0, o.Ship.Price)
	assert.Equal(t, map[string]int{"k": 3}, o.Meta)
	assert.Equal(t, map[int]string{1: "one"}, o.Raw)
}

func TestValidate_CollectsFaultsWithPaths(t *testing.T) {
	var o order
	faults, err := Validate(&o, map[string]any{
		"items":   []any{map[string]any{"sku": "a", "price": "cheap"}},
		"paid":    nil,
		"counter": 300,
	}, Options{})
	require.NoError(t, err)

	got := map[string]FaultKind{}
	for _, f := range faults {
		got[joinPath(f.Path)] = f.Kind
	}
	assert.Equal(t, map[string]FaultKind{
		"id":            FaultMissing,
		"paid":          FaultNull,
		"items/0/price": FaultType,
		"counter":       FaultOverflow,
	}, got)
}

func TestValidate_NotObject(t *testing.T) {
	var p point
	faults, err := Validate(&p, []any{1}, Options{})
	require.NoError(t, err)
	require.Len(t, faults, 1)
	assert.Equal(t, FaultNotObject, faults[0].Kind)
	assert.Empty(t, faults[0].Path)
}

func TestValidate_BadDestination(t *testing.T) {
	var p *point
	_, err := Validate(p, map[string]any{}, Options{})
	assert.ErrorIs(t, err, ErrNotModel)
}

func TestValidate_ExtraPolicies(t *testing.T) {
	in := map[string]any{"x": 1, "z": true, "a": "b"}

	var p point
	faults, err := Validate(&p, in, configFor(model.Config{Extra: model.ExtraIgnore}))
	require.NoError(t, err)
	assert.Empty(t, faults)
	assert.Nil(t, p.Extra())

	faults, err = Validate(&p, in, configFor(model.Config{Extra: model.ExtraForbid}))
	require.NoError(t, err)
	require.Len(t, faults, 2)
	assert.Equal(t, []string{"a"}, faults[0].Path)
	assert.Equal(t, []string{"z"}, faults[1].Path)
	assert.Equal(t, FaultExtra, faults[1].Kind)

	faults, err = Validate(&p, in, configFor(model.Config{Extra: model.ExtraAllow}))
	require.NoError(t, err)
	assert.Empty(t, faults)
	assert.Equal(t, map[string]any{"a": "b", "z": true}, p.Extra())
}

func TestValidate_StrictMode(t *testing.T) {
	var p point
	faults, err := Validate(&p, map[string]any{"x": "5"}, configFor(model.Config{Strict: true}))
	require.NoError(t, err)
	require.Len(t, faults, 1)
	assert.Equal(t, FaultType, faults[0].Kind)
	assert.Equal(t, "int", faults[0].Expected)

	faults, err = Validate(&p, map[string]any{"x": float64(5)}, configFor(model.Config{Strict: true}))
	require.NoError(t, err)
	assert.Empty(t, faults)
	assert.Equal(t, 5, p.X)
}

func TestValidate_ModelValueIsCloned(t *testing.T) {
	src := item{SKU: "a"}
	src.MarkSet("sku")

	var o order
	faults, err := Validate(&o, map[string]any{"id": 1, "items": []any{src}}, Options{})
	require.NoError(t, err)
	require.Empty(t, faults)

	require.Len(t, o.Items, 1)
	assert.True(t, o.Items[0].IsSet("sku"))
	o.Items[0].MarkSet("price")
	assert.False(t, src.IsSet("price"))
}

func TestValidate_ResetsBookkeeping(t *testing.T) {
	var p point
	_, err := Validate(&p, map[string]any{"x": 1, "y": 2}, Options{})
	require.NoError(t, err)
	_, err = Validate(&p, map[string]any{"x": 1}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, p.FieldsSet())
	assert.Equal(t, 0, p.Y)
}

func joinPath(p []string) string {
	s := ""
	for i, seg := range p {
		if i > 0 {
			s += "/"
		}
		s += seg
	}
	return s
}
