package core

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDateTime = errors.New("invalid datetime format")
	ErrInvalidDate     = errors.New("invalid date format")
)

const (
	// Unix timestamps above this magnitude are taken as milliseconds.
	msThreshold = 2e10
	// Larger magnitudes do not fit a time.Time even as milliseconds.
	maxTimestamp = 2e20
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

const dateLayout = "2006-01-02"

// ParseDateTime accepts a time.Time, an RFC3339-like string (a missing zone
// means UTC), a plain date, or a unix timestamp in seconds or milliseconds
// given as a number or numeric string.
func ParseDateTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case *time.Time:
		if t != nil {
			return *t, nil
		}
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateTimeLayouts {
			if tm, err := time.Parse(layout, s); err == nil {
				return tm, nil
			}
		}
		if tm, err := time.Parse(dateLayout, s); err == nil {
			return tm, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			if tm, ok := fromUnix(f); ok {
				return tm, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, t)
	}
	if f, ok := number(v); ok {
		if tm, ok := fromUnix(f); ok {
			return tm, nil
		}
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDateTime, v)
	}
	return time.Time{}, fmt.Errorf("%w: %T", ErrInvalidDateTime, v)
}

// ParseDate accepts a time.Time, a YYYY-MM-DD string or a unix timestamp, and
// returns midnight UTC of that date.
func ParseDate(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return midnight(t), nil
	case string:
		s := strings.TrimSpace(t)
		if tm, err := time.Parse(dateLayout, s); err == nil {
			return tm, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			if tm, ok := fromUnix(f); ok {
				return midnight(tm), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, t)
	}
	if f, ok := number(v); ok {
		if tm, ok := fromUnix(f); ok {
			return midnight(tm), nil
		}
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, v)
	}
	return time.Time{}, fmt.Errorf("%w: %T", ErrInvalidDate, v)
}

// parseDateTimeStrict accepts only time.Time and RFC3339 strings.
func parseDateTimeStrict(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if tm, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return tm, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, t)
	}
	return time.Time{}, fmt.Errorf("%w: %T", ErrInvalidDateTime, v)
}

// fromUnix reports false for non-finite values and magnitudes above
// maxTimestamp.
func fromUnix(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxTimestamp {
		return time.Time{}, false
	}
	if math.Abs(f) > msThreshold {
		f /= 1000
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case isInt(rv):
		return float64(rv.Int()), true
	case isUint(rv):
		return float64(rv.Uint()), true
	case isFloat(rv):
		return rv.Float(), true
	}
	return 0, false
}
