package starlark

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/nanojinja/nanojinja/pkg/jinja"
)

// ConvertToStarlark converts an engine value to its Starlark counterpart.
func ConvertToStarlark(v jinja.Value) starlark.Value {
	switch t := v.(type) {
	case jinja.IntValue:
		return starlark.MakeInt64(int64(t))
	case jinja.FloatValue:
		return starlark.Float(float64(t))
	case jinja.StringValue:
		return starlark.String(string(t))
	default:
		return starlark.String(v.String())
	}
}

// ConvertFromStarlark converts a Starlark value to an engine value. Only
// scalars convert, the engine has no list or dict values. Booleans map to
// integer 0 and 1.
func ConvertFromStarlark(v starlark.Value) (jinja.Value, error) {
	switch t := v.(type) {
	case starlark.Int:
		n, ok := t.Int64()
		if !ok {
			return nil, fmt.Errorf("integer %s does not fit in 64 bits", t.String())
		}
		return jinja.IntValue(n), nil
	case starlark.Float:
		return jinja.FloatValue(float64(t)), nil
	case starlark.String:
		return jinja.StringValue(string(t)), nil
	case starlark.Bool:
		if bool(t) {
			return jinja.IntValue(1), nil
		}
		return jinja.IntValue(0), nil
	default:
		return nil, fmt.Errorf("unsupported starlark value of type %s", v.Type())
	}
}
