package jsondup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/modelshim/internal/jsondup"
)

func TestFind(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{name: "none", in: `{"a":1,"b":{"a":2}}`},
		{name: "top level", in: `{"a":1,"a":2}`, want: []string{"/a"}},
		{name: "nested object", in: `{"x":{"k":1,"k":[1,2]}}`, want: []string{"/x/k"}},
		{name: "inside array", in: `{"data":[{"id":1},{"id":2,"id":3}]}`, want: []string{"/data/1/id"}},
		{name: "after nested values", in: `{"a":{"b":[1,{"c":1}]},"d":1,"a":0}`, want: []string{"/a"}},
		{name: "escaped", in: `{"a/b":1,"a/b":2}`, want: []string{"/a~1b"}},
		{name: "top level array", in: `[{"k":1},{"k":1,"k":2}]`, want: []string{"/1/k"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dups, err := jsondup.Find([]byte(tc.in), 0)
			require.NoError(t, err)
			var got []string
			for _, d := range dups {
				got = append(got, d.String())
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFind_Limit(t *testing.T) {
	dups, err := jsondup.Find([]byte(`{"a":1,"a":2,"b":1,"b":2}`), 1)
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "a", dups[0].Key)
}

func TestFind_SyntaxError(t *testing.T) {
	dups, err := jsondup.Find([]byte(`{"a":1,"a":`), 0)
	assert.Error(t, err)
	assert.Len(t, dups, 1)
}
