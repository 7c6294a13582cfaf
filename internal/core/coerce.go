package core

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	errFraction = errors.New("number has a fractional part")
	errNegative = errors.New("negative number for unsigned field")
)

// setScalar coerces rv into a bool, number or string dst. Strict mode only
// accepts values of the matching JSON kind; lax mode also parses strings.
// It returns 0 on success.
func setScalar(dst reflect.Value, rv reflect.Value, strict, numbersToStrings bool) (FaultKind, error) {
	switch dst.Kind() {
	case reflect.Bool:
		if rv.Kind() == reflect.Bool {
			dst.SetBool(rv.Bool())
			return 0, nil
		}
		if strict {
			return FaultType, nil
		}
		if b, ok := laxBool(rv); ok {
			dst.SetBool(b)
			return 0, nil
		}
		return FaultType, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, kind, err := intFrom(rv, strict)
		if kind != 0 {
			return kind, err
		}
		if dst.OverflowInt(i) {
			return FaultOverflow, nil
		}
		dst.SetInt(i)
		return 0, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, kind, err := uintFrom(rv, strict)
		if kind != 0 {
			return kind, err
		}
		if dst.OverflowUint(u) {
			return FaultOverflow, nil
		}
		dst.SetUint(u)
		return 0, nil

	case reflect.Float32, reflect.Float64:
		f, kind, err := floatFrom(rv, strict)
		if kind != 0 {
			return kind, err
		}
		if dst.OverflowFloat(f) {
			return FaultOverflow, nil
		}
		dst.SetFloat(f)
		return 0, nil

	case reflect.String:
		if rv.Kind() == reflect.String {
			dst.SetString(rv.String())
			return 0, nil
		}
		if strict || !numbersToStrings {
			return FaultType, nil
		}
		switch {
		case isInt(rv):
			dst.SetString(strconv.FormatInt(rv.Int(), 10))
		case isUint(rv):
			dst.SetString(strconv.FormatUint(rv.Uint(), 10))
		case isFloat(rv):
			dst.SetString(strconv.FormatFloat(rv.Float(), 'f', -1, 64))
		default:
			return FaultType, nil
		}
		return 0, nil
	}
	return FaultType, nil
}

func laxBool(rv reflect.Value) (bool, bool) {
	switch {
	case rv.Kind() == reflect.String:
		switch strings.ToLower(strings.TrimSpace(rv.String())) {
		case "1", "true", "t", "yes", "y", "on":
			return true, true
		case "0", "false", "f", "no", "n", "off":
			return false, true
		}
	case isInt(rv):
		if n := rv.Int(); n == 0 || n == 1 {
			return n == 1, true
		}
	case isUint(rv):
		if n := rv.Uint(); n == 0 || n == 1 {
			return n == 1, true
		}
	case isFloat(rv):
		if f := rv.Float(); f == 0 || f == 1 {
			return f == 1, true
		}
	}
	return false, false
}

func intFrom(rv reflect.Value, strict bool) (int64, FaultKind, error) {
	switch {
	case isInt(rv):
		return rv.Int(), 0, nil
	case isUint(rv):
		if rv.Uint() > math.MaxInt64 {
			return 0, FaultOverflow, nil
		}
		return int64(rv.Uint()), 0, nil
	case isFloat(rv):
		// JSON numbers decode as float64, so integral floats are accepted even in strict mode.
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, FaultType, errFraction
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, FaultOverflow, nil
		}
		return int64(f), 0, nil
	case rv.Kind() == reflect.String && !strict:
		i, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, FaultOverflow, err
			}
			return 0, FaultType, err
		}
		return i, 0, nil
	}
	return 0, FaultType, nil
}

func uintFrom(rv reflect.Value, strict bool) (uint64, FaultKind, error) {
	if isFloat(rv) {
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, FaultType, errFraction
		}
		if f < 0 {
			return 0, FaultOverflow, errNegative
		}
		// 2^64 is exactly representable; MaxUint64 rounds up to it.
		if f >= 1<<64 {
			return 0, FaultOverflow, nil
		}
		return uint64(f), 0, nil
	}
	i, kind, err := intFrom(rv, strict)
	if kind == FaultOverflow && isUint(rv) {
		return rv.Uint(), 0, nil
	}
	if kind != 0 {
		return 0, kind, err
	}
	if i < 0 {
		return 0, FaultOverflow, errNegative
	}
	return uint64(i), 0, nil
}

func floatFrom(rv reflect.Value, strict bool) (float64, FaultKind, error) {
	switch {
	case isFloat(rv):
		return rv.Float(), 0, nil
	case isInt(rv):
		return float64(rv.Int()), 0, nil
	case isUint(rv):
		return float64(rv.Uint()), 0, nil
	case rv.Kind() == reflect.String && !strict:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, FaultOverflow, err
			}
			return 0, FaultType, err
		}
		return f, 0, nil
	}
	return 0, FaultType, nil
}

func isInt(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(rv reflect.Value) bool {
	return rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64
}
