package stdlib

import (
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
	"github.com/tidwall/gjson"
)

// registerJSON wires the DIG/JQ-style path-traversal builtins to
// tidwall/gjson rather than a hand-rolled JSON-path walker.
func registerJSON(c *Catalog) {
	c.register(&Builtin{Name: "DIG", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		doc, err := jsonArg(a, 0)
		if err != nil {
			return nil, err
		}
		path, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		r := gjson.Get(doc, path)
		if !r.Exists() {
			return values.NewNull(), nil
		}
		return gjsonToValue(r), nil
	}})
	c.register(&Builtin{Name: "JQ", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		doc, err := jsonArg(a, 0)
		if err != nil {
			return nil, err
		}
		path, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		results := gjson.Get(doc, path)
		if !results.IsArray() {
			if !results.Exists() {
				return values.NewArray(nil), nil
			}
			return values.NewArray([]*values.Value{gjsonToValue(results)}), nil
		}
		var out []*values.Value
		for _, r := range results.Array() {
			out = append(out, gjsonToValue(r))
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "JSONVALID", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		doc, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(gjson.Valid(doc)), nil
	}})
}

func jsonArg(a *Args, i int) (string, error) {
	v, err := a.Val(i)
	if err != nil {
		return "", err
	}
	if v.IsJson() {
		return v.StringValue(), nil
	}
	if v.IsString() {
		return v.StringValue(), nil
	}
	return "", errors.Newf(errors.TypeError, "expected Json or String argument, got %s", v.Kind())
}

func gjsonToValue(r gjson.Result) *values.Value {
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
				out[i] = gjsonToValue(e)
			}
			return values.NewArray(out)
		}
		return values.NewJson(r.Raw)
	}
}
