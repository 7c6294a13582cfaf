// Package jsondup finds object keys that occur more than once in a JSON
// document. Decoding into a map keeps only the last value of such keys.
package jsondup

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// Duplicate is one repeated key. Path is the JSON Pointer of the repeated
// member.
type Duplicate struct {
	Path string
	Key  string
}

func (d Duplicate) String() string { return d.Path }

type frame struct {
	object       bool
	keys         map[string]struct{}
	expectingKey bool
	key          string // current member of an object
	index        int    // current element of an array
}

// Find returns the repeated keys of data in document order, stopping after
// limit results when limit > 0. Syntax errors are returned with the
// duplicates found before them.
func Find(data []byte, limit int) ([]Duplicate, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		out   []Duplicate
		stack []*frame
	)
	// valueDone advances the enclosing container past one value.
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.expectingKey = true
		} else {
			top.index++
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if len(stack) > 0 {
				return out, io.ErrUnexpectedEOF
			}
			return out, nil
		}
		if err != nil {
			return out, err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, &frame{object: true, keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, &frame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
				valueDone()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectingKey {
				top := stack[n-1]
				if _, dup := top.keys[v]; dup {
					out = append(out, Duplicate{Path: pointer(stack[:n-1], v), Key: v})
					if limit > 0 && len(out) >= limit {
						return out, nil
					}
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectingKey = false
				continue
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

var escaper = strings.NewReplacer("~", "~0", "/", "~1")

func pointer(ancestors []*frame, key string) string {
	var b strings.Builder
	for _, f := range ancestors {
		b.WriteByte('/')
		if f.object {
			b.WriteString(escaper.Replace(f.key))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	b.WriteByte('/')
	b.WriteString(escaper.Replace(key))
	return b.String()
}
