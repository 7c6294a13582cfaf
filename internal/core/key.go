// Package core is the validation engine shared by both model generations:
// struct inspection, default decoding, coercion, dumping and copying. The
// generation packages wrap it with their own API names, configuration lookup
// and error types.
package core

import (
	"reflect"
	"strings"
)

// ResolveKey resolves a struct field's external key.
// Priority: model:"name=..." > json tag name > field name; "-" disables the field.
func ResolveKey(sf reflect.StructField) string {
	if mt := sf.Tag.Get("model"); mt != "" {
		for _, p := range strings.Split(mt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}
