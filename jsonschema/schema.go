// Package jsonschema projects models onto JSON Schema documents for export.
package jsonschema

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Schema is a minimal JSON Schema representation used for export.
// Properties keep field declaration order when marshaled.
type Schema struct {
	// Core
	Schema  string `json:"$schema,omitempty"`
	Title   string `json:"title,omitempty"`
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Default any    `json:"default,omitempty"`

	// Object
	Properties           *orderedmap.OrderedMap[string, *Schema] `json:"properties,omitempty"`
	Required             []string                                `json:"required,omitempty"`
	AdditionalProperties any                                     `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Draft is the dialect written to the root $schema keyword.
const Draft = "https://json-schema.org/draft/2020-12/schema"
