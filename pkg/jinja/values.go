package jinja

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a scalar bound to a name in a rendering context. It defines the
// textual form spliced in by substitution and the truthiness used by if tags.
type Value interface {
	String() string
	Truth() bool
}

// IntValue wraps an integer (64-bit).
type IntValue int64

func (i IntValue) String() string { return strconv.FormatInt(int64(i), 10) }
func (i IntValue) Truth() bool    { return int64(i) != 0 }

// FloatValue wraps a float (64-bit). Its textual form always carries a
// fractional part, so FloatValue(2).String() is "2.0", not "2".
type FloatValue float64

func (f FloatValue) String() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
func (f FloatValue) Truth() bool { return float64(f) != 0 }

// StringValue wraps a string.
type StringValue string

func (s StringValue) String() string { return string(s) }
func (s StringValue) Truth() bool    { return len(string(s)) > 0 }

// Context maps variable names to their bound values for one render.
type Context map[string]Value

// Clone returns a shallow copy. Values are immutable scalars, so a shallow
// copy is enough to give a render an independent binding set.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// FromGo converts a Go scalar to a Value. Booleans map onto IntValue 0/1.
// Anything that is not an integer, float, string or bool is rejected: the
// engine's value model is deliberately scalar-only.
func FromGo(v any) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case string:
		return StringValue(t), nil
	case bool:
		if t {
			return IntValue(1), nil
		}
		return IntValue(0), nil
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", t)
		}
		return IntValue(int64(t)), nil
	case uint8:
		return IntValue(int64(t)), nil
	case uint16:
		return IntValue(int64(t)), nil
	case uint32:
		return IntValue(int64(t)), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", t)
		}
		return IntValue(int64(t)), nil
	case float32:
		return FloatValue(float64(t)), nil
	case float64:
		return FloatValue(t), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T (want integer, float, string or bool)", v)
	}
}
