package methods

import (
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
	"github.com/tidwall/gjson"
)

func registerJsonMethods() {
	register(values.KindJson, "dig", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		path, err := a.Val(0)
		if err != nil {
			return nil, err
		}
		r := gjson.Get(recv.StringValue(), path.ToString())
		if !r.Exists() {
			return values.NewNull(), nil
		}
		return jsonResultToValue(r), nil
	})
	register(values.KindJson, "valid", true, func(recv *values.Value, a *Args) (*values.Value, error) {
		return values.NewBoolean(gjson.Valid(recv.StringValue())), nil
	})
	register(values.KindJson, "keys", false, func(recv *values.Value, a *Args) (*values.Value, error) {
		r := gjson.Parse(recv.StringValue())
		if !r.IsObject() {
			return nil, errors.New(errors.TypeError, "keys(): receiver is not a Json object")
		}
		var out []*values.Value
		r.ForEach(func(key, _ gjson.Result) bool {
			out = append(out, values.NewString(key.String()))
			return true
		})
		return values.NewArray(out), nil
	})
}

func jsonResultToValue(r gjson.Result) *values.Value {
	switch r.Type {
	case gjson.Null:
		return values.NewNull()
	case gjson.False:
		return values.NewBoolean(false)
	case gjson.True:
		return values.NewBoolean(true)
	case gjson.Number:
		return values.NewNumber(r.Num)
	case gjson.String:
		return values.NewString(r.Str)
	default:
		if r.IsArray() {
			arr := r.Array()
			out := make([]*values.Value, len(arr))
			for i, e := range arr {
				out[i] = jsonResultToValue(e)
			}
			return values.NewArray(out)
		}
		return values.NewJson(r.Raw)
	}
}
