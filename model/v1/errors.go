package v1

import (
	"fmt"
	"strings"

	"github.com/reoring/modelshim/internal/core"
)

// ErrorWrapper is one entry of a ValidationError.
type ErrorWrapper struct {
	Loc  []string
	Msg  string
	Type string // For example value_error.missing or type_error.integer.
}

// ValidationError lists every failure of one ParseObj call.
type ValidationError struct {
	Model  string
	Errors []ErrorWrapper
}

func (e *ValidationError) Error() string {
	n := len(e.Errors)
	b := &strings.Builder{}
	noun := "errors"
	if n == 1 {
		noun = "error"
	}
	fmt.Fprintf(b, "%d validation %s for %s", n, noun, e.Model)
	for i, w := range e.Errors {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		loc := "__root__"
		if len(w.Loc) > 0 {
			loc = strings.Join(w.Loc, " -> ")
		}
		fmt.Fprintf(b, "%s: %s (type=%s)", loc, w.Msg, w.Type)
	}
	return b.String()
}

func newValidationError(title string, faults []core.Fault) *ValidationError {
	e := &ValidationError{Model: title, Errors: make([]ErrorWrapper, 0, len(faults))}
	for _, f := range faults {
		w := ErrorWrapper{Loc: f.Path}
		switch f.Kind {
		case core.FaultMissing:
			w.Msg, w.Type = "field required", "value_error.missing"
		case core.FaultExtra:
			w.Msg, w.Type = "extra fields not permitted", "value_error.extra"
		case core.FaultNull:
			w.Msg, w.Type = "none is not an allowed value", "type_error.none.not_allowed"
		case core.FaultNotObject:
			w.Msg, w.Type = "value is not a valid dict", "type_error.dict"
		case core.FaultOverflow:
			w.Msg, w.Type = "value is out of range for "+f.Expected, "value_error.number.not_in_range"
		default:
			name := typeName(f.Expected)
			w.Msg, w.Type = "value is not a valid "+name, "type_error."+name
		}
		e.Errors = append(e.Errors, w)
	}
	return e
}

// typeName maps a Go type to the short name used in messages.
func typeName(goType string) string {
	switch goType {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "float32", "float64":
		return "float"
	case "bool":
		return "boolean"
	case "string":
		return "str"
	case "time.Time":
		return "datetime"
	}
	switch {
	case strings.HasPrefix(goType, "[]"):
		return "list"
	case strings.HasPrefix(goType, "map["):
		return "dict"
	case goType == "":
		return "value"
	}
	return strings.ToLower(goType[strings.LastIndexByte(goType, '.')+1:])
}
