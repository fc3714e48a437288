package field

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
	// KindObject represents a structured object value.
	KindObject
)

// Value is a small typed value used for cell contents and filter operands.
//
// The representation is designed to make filtering fast and predictable:
// no reflection and no fmt-based stringification.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	S    string
	B    bool
	A    []Value
	O    map[string]Value
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, S: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Object returns a structured object Value.
func Object(v map[string]Value) Value { return Value{Kind: KindObject, O: v} }

// Strings returns an array Value built from a string slice.
func Strings(v []string) Value {
	arr := make([]Value, len(v))
	for i := range v {
		arr[i] = String(v[i])
	}
	return Array(arr)
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.S, true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsObject returns the object value if Kind is KindObject.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.O, true
}

// IsNumber reports whether the value is an int or a float.
func (v Value) IsNumber() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// Clone creates a deep copy of the value, including nested arrays and objects.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindArray:
		if len(v.A) == 0 {
			return v
		}
		arr := make([]Value, len(v.A))
		for i := range v.A {
			arr[i] = v.A[i].Clone()
		}
		return Value{Kind: KindArray, A: arr}
	case KindObject:
		if len(v.O) == 0 {
			return v
		}
		obj := make(map[string]Value, len(v.O))
		for k, vv := range v.O {
			obj[k] = vv.Clone()
		}
		return Value{Kind: KindObject, O: obj}
	default:
		// Scalar values are copied by value semantics.
		return v
	}
}

// MarshalJSON encodes the value in its natural JSON form: numbers as numbers,
// strings as strings, arrays and objects recursively. The kind tag is not
// persisted; UnmarshalJSON recovers it from the JSON shape.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// UnmarshalJSON decodes natural-form JSON into a typed value. Numbers decode
// to KindInt when they are integral, KindFloat otherwise.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	vv, err := FromAny(raw)
	if err != nil {
		return fmt.Errorf("field: decode value: %w", err)
	}
	*v = vv
	return nil
}

// Fields is a named collection of values attached to a blob for search.
type Fields map[string]Value

// Clone creates a deep copy of the fields map.
//
// This is the safe default to prevent external mutation after a store or
// update call.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	clone := make(Fields, len(f))
	for k, v := range f {
		clone[k] = v.Clone()
	}
	return clone
}

// Merge returns a copy of f with the entries of other laid shallowly on top:
// new keys are added, matching keys are overwritten, untouched keys are
// preserved. Neither input is mutated.
func (f Fields) Merge(other Fields) Fields {
	merged := make(Fields, len(f)+len(other))
	for k, v := range f {
		merged[k] = v.Clone()
	}
	for k, v := range other {
		merged[k] = v.Clone()
	}
	return merged
}
