package stdlib

import (
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
)

func registerArray(c *Catalog) {
	c.register(&Builtin{Name: "FILTER", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		var out []*values.Value
		for _, item := range arr {
			keep, err := a.Lambda(1, []string{"item", "x"}, []*values.Value{item, item})
			if err != nil {
				return nil, err
			}
			if keep.Truthy() {
				out = append(out, item)
			}
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "MAP", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		out := make([]*values.Value, len(arr))
		for i, item := range arr {
			v, err := a.Lambda(1, []string{"item", "x"}, []*values.Value{item, item})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "REDUCE", MinArgs: 3, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		acc, err := a.Val(2)
		if err != nil {
			return nil, err
		}
		for _, item := range arr {
			acc, err = a.Lambda(1, []string{"acc", "item"}, []*values.Value{acc, item})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}})
	c.register(&Builtin{Name: "FIND", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		for _, item := range arr {
			match, err := a.Lambda(1, []string{"item", "x"}, []*values.Value{item, item})
			if err != nil {
				return nil, err
			}
			if match.Truthy() {
				return item, nil
			}
		}
		return values.NewNull(), nil
	}})
	c.register(&Builtin{Name: "ANY", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		for _, item := range arr {
			match, err := a.Lambda(1, []string{"item", "x"}, []*values.Value{item, item})
			if err != nil {
				return nil, err
			}
			if match.Truthy() {
				return values.NewBoolean(true), nil
			}
		}
		return values.NewBoolean(false), nil
	}})
	c.register(&Builtin{Name: "ALL", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		for _, item := range arr {
			match, err := a.Lambda(1, []string{"item", "x"}, []*values.Value{item, item})
			if err != nil {
				return nil, err
			}
			if !match.Truthy() {
				return values.NewBoolean(false), nil
			}
		}
		return values.NewBoolean(true), nil
	}})
	c.register(&Builtin{Name: "SORT", MinArgs: 1, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		desc := false
		if a.Len() == 2 {
			d, err := a.Val(1)
			if err != nil {
				return nil, err
			}
			desc = d.Truthy()
		}
		return values.NewArray(values.SortValues(arr, desc)), nil
	}})
	c.register(&Builtin{Name: "REVERSE", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		out := make([]*values.Value, len(arr))
		for i, v := range arr {
			out[len(arr)-1-i] = v
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "FIRST", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		if len(arr) == 0 {
			return values.NewNull(), nil
		}
		return arr[0], nil
	}})
	c.register(&Builtin{Name: "LAST", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		if len(arr) == 0 {
			return values.NewNull(), nil
		}
		return arr[len(arr)-1], nil
	}})
	c.register(&Builtin{Name: "UNIQUE", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		var out []*values.Value
		for _, v := range arr {
			dup := false
			for _, o := range out {
				if v.Equal(o) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, v)
			}
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "FLATTEN", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		var out []*values.Value
		for _, v := range arr {
			if v.IsArray() {
				out = append(out, v.ArrayValue()...)
			} else {
				out = append(out, v)
			}
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "APPEND", MinArgs: 2, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		out := append([]*values.Value{}, arr...)
		for i := 1; i < a.Len(); i++ {
			v, err := a.Val(i)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "SLICE", MinArgs: 2, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		start, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		si := clampIndex(int(start), len(arr))
		ei := len(arr)
		if a.Len() == 3 {
			end, err := numArg(a, 2)
			if err != nil {
				return nil, err
			}
			ei = clampIndex(int(end), len(arr))
		}
		if ei < si {
			ei = si
		}
		return values.NewArray(arr[si:ei]), nil
	}})
	c.register(&Builtin{Name: "RANGE", MinArgs: 1, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		start, end := 0.0, 0.0
		var err error
		if a.Len() == 1 {
			end, err = numArg(a, 0)
		} else {
			start, err = numArg(a, 0)
			if err == nil {
				end, err = numArg(a, 1)
			}
		}
		if err != nil {
			return nil, err
		}
		if end < start {
			return nil, errors.Newf(errors.TypeError, "RANGE: end %v must not be less than start %v", end, start)
		}
		out := make([]*values.Value, 0, int(end-start))
		for n := start; n < end; n++ {
			out = append(out, values.NewNumber(n))
		}
		return values.NewArray(out), nil
	}})
}
