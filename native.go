package skillet

import (
	"fmt"

	"github.com/skillet-run/skillet/values"
)

// FromNative converts a native Go value (as decoded from a JSON
// request body) into a Skillet Value. Numbers arrive as float64 per
// encoding/json's default decoding.
func FromNative(x interface{}) (*values.Value, error) {
	switch v := x.(type) {
	case nil:
		return values.NewNull(), nil
	case bool:
		return values.NewBoolean(v), nil
	case float64:
		return values.NewNumber(v), nil
	case int:
		return values.NewNumber(float64(v)), nil
	case string:
		return values.NewString(v), nil
	case []interface{}:
		items := make([]*values.Value, len(v))
		for i, elem := range v {
			val, err := FromNative(elem)
			if err != nil {
				return nil, err
			}
			items[i] = val
		}
		return values.NewArray(items), nil
	default:
		return nil, fmt.Errorf("skillet: unsupported argument type %T", x)
	}
}

// ToNative converts a Value back into a plain Go value suitable for
// JSON encoding.
func ToNative(v *values.Value) interface{} {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case values.KindNull:
		return nil
	case values.KindBoolean:
		return v.BoolValue()
	case values.KindNumber, values.KindCurrency:
		return v.NumberValue()
	case values.KindDateTime:
		return v.EpochSeconds()
	case values.KindString, values.KindJson:
		return v.StringValue()
	case values.KindArray:
		out := make([]interface{}, len(v.ArrayValue()))
		for i, elem := range v.ArrayValue() {
			out[i] = ToNative(elem)
		}
		return out
	default:
		return v.ToString()
	}
}
