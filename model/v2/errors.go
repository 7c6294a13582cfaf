package v2

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/modelshim/i18n"
	"github.com/reoring/modelshim/internal/core"
)

// Issue codes
const (
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeUnknownKey  = "unknown_key"
	CodeOverflow    = "overflow"
	CodeNull        = "null"
	CodeModelType   = "model_type"
)

// Issue represents a single validation entry.
type Issue struct {
	Path     string // JSON Pointer (for example: /items/2/price).
	Code     string // One of the codes listed above.
	Message  string
	Expected string // Expected Go type, when known.
	Cause    error  // Optional: underlying error.
}

// Issues is a collection of validation entries.
type Issues []Issue

// ValidationError reports every issue of one ModelValidate call.
type ValidationError struct {
	Title  string
	Issues Issues
}

// ErrorCount returns the number of issues.
func (e *ValidationError) ErrorCount() int { return len(e.Issues) }

// Error summarizes the first few issues on one line.
func (e *ValidationError) Error() string {
	const maxShown = 3
	n := len(e.Issues)
	b := &strings.Builder{}
	noun := "errors"
	if n == 1 {
		noun = "error"
	}
	fmt.Fprintf(b, "%d validation %s for %s", n, noun, e.Title)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		it := e.Issues[i]
		// e.g. /x: field required [required]
		fmt.Fprintf(b, "%s: %s [%s]", it.Path, it.Message, it.Code)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsValidationError extracts a *ValidationError from err using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func newValidationError(title string, faults []core.Fault) *ValidationError {
	e := &ValidationError{Title: title, Issues: make(Issues, 0, len(faults))}
	for _, f := range faults {
		code := CodeInvalidType
		switch f.Kind {
		case core.FaultMissing:
			code = CodeRequired
		case core.FaultExtra:
			code = CodeUnknownKey
		case core.FaultNull:
			code = CodeNull
		case core.FaultNotObject:
			code = CodeModelType
		case core.FaultOverflow:
			code = CodeOverflow
		}
		var data map[string]string
		if f.Expected != "" && code != CodeModelType {
			data = map[string]string{"expected": f.Expected}
		}
		e.Issues = append(e.Issues, Issue{
			Path:     pointer(f.Path),
			Code:     code,
			Message:  i18n.T(code, data),
			Expected: f.Expected,
			Cause:    f.Cause,
		})
	}
	return e
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// pointer renders a path as a JSON Pointer; the root is "/".
func pointer(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range path {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(seg))
	}
	return b.String()
}
