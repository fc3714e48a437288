package field

import (
	"encoding/json"
	"fmt"
	"math"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for user input and the map[string]any
// query boundary.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("field: invalid number %q", x.String())
		}
		return Float(f), nil
	case float64:
		// JSON decoding without UseNumber lands here; keep integral floats
		// as ints so round-trips preserve the caller's type.
		if x == math.Trunc(x) && !math.IsInf(x, 0) && math.Abs(x) < 1<<53 {
			return Int(int64(x)), nil
		}
		return Float(x), nil
	case float32:
		return FromAny(float64(x))
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			// Avoid silently truncating large values.
			return Value{}, fmt.Errorf("field: uint64 out of range: %d", x)
		}
		return Int(int64(x)), nil
	case []Value:
		return Array(x), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr), nil
	case []string:
		return Strings(x), nil
	case []int:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Int(int64(x[i]))
		}
		return Array(arr), nil
	case []float64:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Float(x[i])
		}
		return Array(arr), nil
	case map[string]Value:
		return Object(x), nil
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k := range x {
			vv, err := FromAny(x[k])
			if err != nil {
				return Value{}, err
			}
			obj[k] = vv
		}
		return Object(obj), nil
	case map[string]string:
		obj := make(map[string]Value, len(x))
		for k := range x {
			obj[k] = String(x[k])
		}
		return Object(obj), nil
	default:
		return Value{}, fmt.Errorf("field: unsupported value type %T", v)
	}
}

// ToAny converts a typed Value back into plain Go data
// (nil, int64, float64, string, bool, []any, map[string]any).
func (v Value) ToAny() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindInt:
		return v.I64
	case KindFloat:
		return v.F64
	case KindString:
		return v.S
	case KindBool:
		return v.B
	case KindArray:
		arr := make([]any, len(v.A))
		for i := range v.A {
			arr[i] = v.A[i].ToAny()
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(v.O))
		for k := range v.O {
			obj[k] = v.O[k].ToAny()
		}
		return obj
	default:
		return nil
	}
}

// FieldsFromAny converts a legacy map[string]any document to typed Fields.
func FieldsFromAny(m map[string]any) (Fields, error) {
	if m == nil {
		return nil, nil
	}
	f := make(Fields, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, err
		}
		f[k] = vv
	}
	return f, nil
}

// FieldsToAny converts typed Fields back into a plain map[string]any.
func FieldsToAny(f Fields) map[string]any {
	if f == nil {
		return nil
	}
	m := make(map[string]any, len(f))
	for k, v := range f {
		m[k] = v.ToAny()
	}
	return m
}
