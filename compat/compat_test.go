package compat_test

import (
	"reflect"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/modelshim/compat"
	"github.com/reoring/modelshim/model"
	v1 "github.com/reoring/modelshim/model/v1"
	v2 "github.com/reoring/modelshim/model/v2"
)

type Point struct {
	compat.BaseModel
	X int `json:"x"`
	Y int `json:"y" default:"0"`
}

type Account struct {
	compat.BaseModel
	ID      string     `json:"id"`
	Email   *string    `json:"email" default:"null"`
	Roles   []string   `json:"roles" default:"[\"member\"]"`
	Created time.Time  `json:"created"`
	Home    *Point     `json:"home" default:"null"`
	Closed  *time.Time `json:"closed" default:"null"`
}

func (Account) Config() v1.Config { return v1.Config{Title: "Account", Extra: v1.ExtraForbid} }

func (Account) ModelConfig() v2.ConfigDict { return v2.ConfigDict{Title: "Account", Extra: "forbid"} }

type Page[T any] struct {
	compat.GenericModel
	Object  string `json:"object" default:"list"`
	Data    []T    `json:"data" default:"[]"`
	HasMore bool   `json:"has_more" default:"false"`
}

var adapters = []struct {
	name    string
	adapter compat.Adapter
	gen     compat.Generation
	// isValidationError reports whether err is the generation's own error.
	isValidationError func(error) bool
}{
	{
		name:    "legacy",
		adapter: compat.Legacy(),
		gen:     compat.GenerationV1,
		isValidationError: func(err error) bool {
			_, ok := err.(*v1.ValidationError)
			return ok
		},
	},
	{
		name:    "current",
		adapter: compat.Current(),
		gen:     compat.GenerationV2,
		isValidationError: func(err error) bool {
			_, ok := v2.AsValidationError(err)
			return ok
		},
	},
}

func fieldNames(t *testing.T, a compat.Adapter, typ reflect.Type) []string {
	t.Helper()
	fields, err := a.ModelFields(typ)
	require.NoError(t, err)
	var out []string
	for p := fields.Oldest(); p != nil; p = p.Next() {
		assert.Equal(t, p.Key, p.Value.Name)
		out = append(out, p.Key)
	}
	return out
}

func TestAdapters_PointScenario(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.adapter
			assert.Equal(t, tc.gen, a.Generation())

			fields, err := a.ModelFields(reflect.TypeOf(Point{}))
			require.NoError(t, err)
			assert.Equal(t, []string{"x", "y"}, fieldNames(t, a, reflect.TypeOf(Point{})))

			x, _ := fields.Get("x")
			y, _ := fields.Get("y")
			assert.True(t, a.FieldIsRequired(x))
			assert.False(t, a.FieldIsRequired(y))

			def, ok := a.FieldDefault(x)
			assert.False(t, ok)
			assert.Nil(t, def)
			def, ok = a.FieldDefault(y)
			assert.True(t, ok)
			assert.Equal(t, 0, def)

			assert.Equal(t, reflect.TypeOf(0), a.FieldDeclaredType(x))

			var p Point
			require.NoError(t, a.Validate(&p, map[string]any{"x": 5}))
			assert.Equal(t, 5, p.X)
			assert.Equal(t, 0, p.Y)

			d, err := a.DumpDict(&p, compat.DumpOptions{ExcludeUnset: true})
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"x": 5}, d)
		})
	}
}

func TestAdapters_RequiredIffNoDefault(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.adapter
			fields, err := a.ModelFields(reflect.TypeOf(Account{}))
			require.NoError(t, err)
			assert.Equal(t, []string{"id", "email", "roles", "created", "home", "closed"},
				fieldNames(t, a, reflect.TypeOf(Account{})))

			for p := fields.Oldest(); p != nil; p = p.Next() {
				_, hasDefault := a.FieldDefault(p.Value)
				assert.Equal(t, !hasDefault, a.FieldIsRequired(p.Value), p.Key)
			}

			email, _ := fields.Get("email")
			def, ok := a.FieldDefault(email)
			assert.True(t, ok, "a nil default is still a default")
			assert.Nil(t, def)
			assert.NotEqual(t, v2.Undefined, def)

			roles, _ := fields.Get("roles")
			def, _ = a.FieldDefault(roles)
			assert.Equal(t, []string{"member"}, def)
			assert.Equal(t, reflect.TypeOf([]string{}), a.FieldDeclaredType(roles))
		})
	}
}

func TestAdapters_ModelConfig(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := tc.adapter.ModelConfig(reflect.TypeOf(Account{}))
			require.NoError(t, err)
			assert.Equal(t, model.Config{Title: "Account", Extra: model.ExtraForbid}, cfg)

			cfg, err = tc.adapter.ModelConfig(reflect.TypeOf(&Point{}))
			require.NoError(t, err)
			assert.Equal(t, model.Config{Title: "Point", Extra: model.ExtraIgnore}, cfg)

			_, err = tc.adapter.ModelConfig(reflect.TypeOf(struct{}{}))
			assert.Error(t, err)
		})
	}
}

func TestAdapters_ValidationErrorsPassThrough(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			var acc Account
			err := tc.adapter.Validate(&acc, map[string]any{"created": "2024-01-02T03:04:05Z", "unknown": 1})
			require.Error(t, err)
			assert.True(t, tc.isValidationError(err), "%T", err)
			assert.Contains(t, err.Error(), "2 validation errors for Account")

			_, err = tc.adapter.ModelFields(reflect.TypeOf(0))
			assert.Error(t, err)
		})
	}
}

func TestAdapters_CopyIsIndependent(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			var acc Account
			require.NoError(t, tc.adapter.Validate(&acc, map[string]any{
				"id":      "a1",
				"created": "2024-01-02T03:04:05Z",
				"home":    map[string]any{"x": 1},
			}))

			cp := tc.adapter.CopyModel(&acc).(*Account)
			assert.Equal(t, acc.ID, cp.ID)
			assert.Equal(t, acc.FieldsSet(), cp.FieldsSet())

			cp.ID = "b2"
			cp.Roles = append(cp.Roles, "admin")
			cp.MarkSet("roles")
			assert.Equal(t, "a1", acc.ID)
			assert.Equal(t, []string{"member"}, acc.Roles)
			assert.False(t, acc.IsSet("roles"))

			// shallow: nested pointers are shared
			assert.Same(t, acc.Home, cp.Home)
		})
	}
}

func TestAdapters_DumpJSONRoundTrip(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			var acc Account
			require.NoError(t, tc.adapter.Validate(&acc, map[string]any{
				"id":      "a1",
				"created": 1704164645,
				"home":    map[string]any{"x": 1, "y": 2},
			}))

			s, err := tc.adapter.DumpJSON(&acc, 0)
			require.NoError(t, err)
			assert.Equal(t,
				`{"id":"a1","email":null,"roles":["member"],"created":"2024-01-02T03:04:05Z","home":{"x":1,"y":2},"closed":null}`,
				s)

			var fromJSON map[string]any
			require.NoError(t, json.Unmarshal([]byte(s), &fromJSON))
			dict, err := tc.adapter.DumpDict(&acc, compat.DumpOptions{})
			require.NoError(t, err)
			assert.Equal(t, normalize(t, dict), fromJSON)

			indented, err := tc.adapter.DumpJSON(&acc, 4)
			require.NoError(t, err)
			assert.Contains(t, indented, "\n    \"id\": \"a1\"")
		})
	}
}

func TestAdapters_ExcludeDefaults(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			var p Point
			require.NoError(t, tc.adapter.Validate(&p, map[string]any{"x": 1, "y": 0}))

			d, err := tc.adapter.DumpDict(&p, compat.DumpOptions{ExcludeDefaults: true})
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"x": 1}, d)

			d, err = tc.adapter.DumpDict(&p, compat.DumpOptions{ExcludeUnset: true})
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"x": 1, "y": 0}, d)
		})
	}
}

func TestAdapters_Lax(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			var p Point
			require.NoError(t, tc.adapter.Validate(&p, map[string]any{"x": "7"}))
			assert.Equal(t, 7, p.X)
		})
	}
}

func TestAdapters_RejectNonFiniteTimestamps(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			for _, in := range []any{"NaN", "Inf", 1e300} {
				var acc Account
				err := tc.adapter.Validate(&acc, map[string]any{"id": "a", "created": in})
				require.Error(t, err, "%v", in)
				assert.True(t, tc.isValidationError(err), "%T", err)
				assert.Contains(t, err.Error(), "1 validation error for Account")
			}
		})
	}

	_, err := compat.ParseDateTime("NaN")
	assert.ErrorIs(t, err, compat.ErrInvalidDateTime)
}

func TestAdapters_GenericModel(t *testing.T) {
	for _, tc := range adapters {
		t.Run(tc.name, func(t *testing.T) {
			var page Page[Point]
			require.NoError(t, tc.adapter.Validate(&page, map[string]any{
				"data":     []any{map[string]any{"x": 1}, map[string]any{"x": 2, "y": 3}},
				"has_more": true,
			}))
			require.Len(t, page.Data, 2)
			assert.Equal(t, Point{}.Y, page.Data[0].Y)
			assert.Equal(t, 3, page.Data[1].Y)
			assert.Equal(t, "list", page.Object)

			d, err := tc.adapter.DumpDict(&page, compat.DumpOptions{ExcludeUnset: true})
			require.NoError(t, err)
			assert.Equal(t, map[string]any{
				"data":     []any{map[string]any{"x": 1}, map[string]any{"x": 2, "y": 3}},
				"has_more": true,
			}, d)
		})
	}
}

func TestAdapters_WrongGenerationDescriptorPanics(t *testing.T) {
	legacy, err := compat.Legacy().ModelFields(reflect.TypeOf(Point{}))
	require.NoError(t, err)
	current, err := compat.Current().ModelFields(reflect.TypeOf(Point{}))
	require.NoError(t, err)

	x1, _ := legacy.Get("x")
	x2, _ := current.Get("x")
	assert.IsType(t, &v1.ModelField{}, x1.Native())
	assert.IsType(t, &v2.FieldInfo{}, x2.Native())

	assert.Panics(t, func() { compat.Legacy().FieldIsRequired(x2) })
	assert.Panics(t, func() { compat.Current().FieldDefault(x1) })
	assert.Panics(t, func() { compat.Current().FieldDeclaredType(compat.Field{Name: "zero"}) })
}

func TestForVersion(t *testing.T) {
	cases := []struct {
		version string
		want    compat.Generation
	}{
		{"1.10.13", compat.GenerationV1},
		{"2.5.3", compat.GenerationV2},
		{"v2.0.0", compat.GenerationV2},
		{"2.0.0-beta.1", compat.GenerationV2},
		{"2.0b3", compat.GenerationV2},
		{"3.0.0", compat.GenerationV1},
		{"", compat.GenerationV1},
		{"unknown", compat.GenerationV1},
	}
	for _, tc := range cases {
		t.Run(tc.version, func(t *testing.T) {
			assert.Equal(t, tc.want, compat.ForVersion(tc.version).Generation())
			assert.Equal(t, tc.want == compat.GenerationV2, compat.IsV2Version(tc.version))
		})
	}
}

func TestDefaultMatchesLinkedVersion(t *testing.T) {
	assert.Equal(t, compat.LibraryVersion, compat.Default.Version())
	assert.Equal(t, compat.IsV2, compat.Default.Generation() == compat.GenerationV2)
	assert.Equal(t, "v1", compat.GenerationV1.String())
	assert.Equal(t, "v2", compat.GenerationV2.String())
}

func TestPackageFunctions(t *testing.T) {
	p, err := compat.ParseInto[Point](map[string]any{"x": 5})
	require.NoError(t, err)
	assert.Equal(t, 5, p.X)

	_, err = compat.Parse[Point](map[string]any{})
	assert.Error(t, err)

	fields, err := compat.ModelFields[Point]()
	require.NoError(t, err)
	y, _ := fields.Get("y")
	assert.False(t, compat.FieldIsRequired(y))
	def, ok := compat.FieldDefault(y)
	assert.True(t, ok)
	assert.Equal(t, 0, def)
	assert.Equal(t, reflect.TypeOf(0), compat.FieldDeclaredType(y))

	cfg, err := compat.ModelConfig[*Point]()
	require.NoError(t, err)
	assert.Equal(t, "Point", cfg.Title)

	cp := compat.CopyModel(p)
	cp.X = 6
	assert.Equal(t, 5, p.X)

	s, err := compat.DumpJSON(p, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"x":5,"y":0}`, s)

	d, err := compat.DumpDict(p, compat.DumpOptions{ExcludeUnset: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 5}, d)
}

func TestParseDate(t *testing.T) {
	d, err := compat.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = compat.ParseDate("not a date")
	assert.ErrorIs(t, err, compat.ErrInvalidDate)

	dt, err := compat.ParseDateTime(int64(1704164645000))
	require.NoError(t, err)
	assert.True(t, dt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

// normalize passes v through JSON so numbers compare as float64.
func normalize(t *testing.T, v map[string]any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}
