package modelshim

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/modelshim/compat"
	"github.com/reoring/modelshim/model"
)

// APIError is an error response returned by the API.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Param      string
	Message    string
	RequestID  string
	// Body is the decoded response body, when it was JSON.
	Body any
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("Error code: %d - %s", e.StatusCode, e.Message)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// errorObject is the "error" member of an API error body.
type errorObject struct {
	model.Base
	Message string  `json:"message" default:""`
	Type    string  `json:"type" default:""`
	Param   *string `json:"param" default:"null"`
	Code    any     `json:"code" default:"null"`
}

type errorEnvelope struct {
	model.Base
	Error *errorObject `json:"error" default:"null"`
}

// NewAPIError builds an APIError from an HTTP status and response body.
// Bodies that are not the usual {"error": {...}} envelope keep their raw
// text as the message.
func NewAPIError(status int, body []byte, requestID string) *APIError {
	e := &APIError{StatusCode: status, RequestID: requestID}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		e.Message = string(body)
		return e
	}
	e.Body = raw
	env, err := compat.ParseInto[errorEnvelope](raw)
	if err != nil || env.Error == nil {
		e.Message = string(body)
		return e
	}
	eo := env.Error
	e.Message = eo.Message
	e.Type = eo.Type
	if eo.Param != nil {
		e.Param = *eo.Param
	}
	if eo.Code != nil {
		e.Code = fmt.Sprint(eo.Code)
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// AsAPIError extracts an *APIError from err using errors.As.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
