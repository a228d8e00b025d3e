package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a loosely typed JSON field. Browser clients send options as
// whatever their form controls produce ("2" or 2, "true" or true), so
// values are coerced when read instead of being rejected at decode time.
// The zero Value is an absent field; an explicit null is present.
type Value struct {
	set bool
	v   interface{}
}

// NewValue wraps a decoded JSON value (nil for null)
func NewValue(v interface{}) Value {
	return Value{set: true, v: v}
}

// UnmarshalJSON records the field as present, including a null literal
func (v *Value) UnmarshalJSON(data []byte) error {
	v.set = true
	return json.Unmarshal(data, &v.v)
}

// MarshalJSON encodes the wrapped value
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

// IsSet reports whether the field appeared in the body
func (v Value) IsSet() bool {
	return v.set
}

// Truthy reports whether the value counts as true when used as a flag.
// false, 0, NaN, "", null and absent are false; everything else,
// including "false" and empty arrays or objects, is true.
func (v Value) Truthy() bool {
	if !v.set {
		return false
	}
	switch x := v.v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}

// String renders the value the way it is sent in a form field
func (v Value) String() string {
	if !v.set {
		return ""
	}
	return stringify(v.v)
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case []interface{}:
		parts := make([]string, len(x))
		for i, e := range x {
			// null elements join as empty strings
			if e != nil {
				parts[i] = stringify(e)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// formatNumber prints a float in shortest round-trip form, switching to
// exponent notation outside [1e-6, 1e21) like browser number formatting.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}
