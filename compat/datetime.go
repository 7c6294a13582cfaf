package compat

import (
	"time"

	"github.com/reoring/modelshim/internal/core"
)

var (
	ErrInvalidDate     = core.ErrInvalidDate
	ErrInvalidDateTime = core.ErrInvalidDateTime
)

// ParseDate parses a date (time.Time, YYYY-MM-DD or Unix time)
// and returns midnight UTC of that day.
func ParseDate(v any) (time.Time, error) { return core.ParseDate(v) }

// ParseDateTime parses an RFC 3339 timestamp or a Unix time in seconds or
// milliseconds.
func ParseDateTime(v any) (time.Time, error) { return core.ParseDateTime(v) }
