package field

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// EncodeText renders a value in its natural textual form: raw strings,
// decimal numbers, true/false, and JSON for arrays and objects.
//
// This is the column representation older deployments used for index fields;
// DecodeText is its inverse.
func (v Value) EncodeText() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return v.S
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindArray, KindObject:
		b, err := json.Marshal(v.ToAny())
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// DecodeText turns stored text back into a typed value. Text that looks
// structurally like a serialized object or array (matching brace or bracket
// delimiters) is parsed as JSON; parse failure silently degrades to the raw
// string. All other text stays a string.
func DecodeText(s string) Value {
	if looksStructured(s) {
		dec := json.NewDecoder(bytes.NewReader([]byte(s)))
		dec.UseNumber()

		var raw any
		if err := dec.Decode(&raw); err == nil {
			if v, err := FromAny(raw); err == nil {
				return v
			}
		}
	}
	return String(s)
}

func looksStructured(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 2 {
		return false
	}
	return (t[0] == '{' && t[len(t)-1] == '}') || (t[0] == '[' && t[len(t)-1] == ']')
}
