package primitive

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotScalar   = errors.New("type is not a scalar")
	ErrInvalidText = errors.New("invalid scalar text")
)

// Parse converts text into a value of type t. Surrounding whitespace is
// ignored for every kind except KindString.
func Parse(t reflect.Type, text string) (reflect.Value, error) {
	k := FromReflectType(t)
	if k == 0 {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotScalar, t)
	}

	out := reflect.New(t).Elem()
	trimmed := strings.TrimSpace(text)

	var err error
	switch {
	case k == KindString:
		out.SetString(text)

	case k == KindBool:
		var b bool
		if b, err = strconv.ParseBool(trimmed); err == nil {
			out.SetBool(b)
		}

	case k == KindDuration:
		var d time.Duration
		if d, err = time.ParseDuration(trimmed); err == nil {
			out.SetInt(int64(d))
		}

	case k == KindTime:
		var tm time.Time
		if tm, err = time.Parse(time.RFC3339Nano, trimmed); err == nil {
			out.Set(reflect.ValueOf(tm))
		}

	case k.IsSigned():
		var n int64
		if n, err = strconv.ParseInt(trimmed, 10, k.Bits()); err == nil {
			out.SetInt(n)
		}

	case k.IsUnsigned():
		var n uint64
		if n, err = strconv.ParseUint(trimmed, 10, k.Bits()); err == nil {
			out.SetUint(n)
		}

	case k.IsFloat():
		var f float64
		if f, err = strconv.ParseFloat(trimmed, k.Bits()); err == nil {
			out.SetFloat(f)
		}
	}

	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %q as %s: %w", ErrInvalidText, text, t, err)
	}

	return out, nil
}

// Format renders a scalar value as text accepted by Parse.
func Format(v reflect.Value) (string, error) {
	k := FromReflectType(v.Type())

	switch {
	case k == KindString:
		return v.String(), nil
	case k == KindBool:
		return strconv.FormatBool(v.Bool()), nil
	case k == KindDuration:
		return time.Duration(v.Int()).String(), nil
	case k == KindTime:
		tm, ok := v.Interface().(time.Time)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrNotScalar, v.Type())
		}
		return tm.Format(time.RFC3339Nano), nil
	case k.IsSigned():
		return strconv.FormatInt(v.Int(), 10), nil
	case k.IsUnsigned():
		return strconv.FormatUint(v.Uint(), 10), nil
	case k.IsFloat():
		return strconv.FormatFloat(v.Float(), 'g', -1, k.Bits()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrNotScalar, v.Type())
	}
}
