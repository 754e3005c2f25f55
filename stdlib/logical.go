package stdlib

import "github.com/skillet-run/skillet/values"

func registerLogical(c *Catalog) {
	c.register(&Builtin{Name: "IF", MinArgs: 3, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		cond, err := a.Val(0)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return a.Val(1)
		}
		return a.Val(2)
	}})
	c.register(&Builtin{Name: "AND", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		for i := 0; i < a.Len(); i++ {
			v, err := a.Val(i)
			if err != nil {
				return nil, err
			}
			if !v.Truthy() {
				return values.NewBoolean(false), nil
			}
		}
		return values.NewBoolean(true), nil
	}})
	c.register(&Builtin{Name: "OR", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		for i := 0; i < a.Len(); i++ {
			v, err := a.Val(i)
			if err != nil {
				return nil, err
			}
			if v.Truthy() {
				return values.NewBoolean(true), nil
			}
		}
		return values.NewBoolean(false), nil
	}})
	c.register(&Builtin{Name: "NOT", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		v, err := a.Val(0)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(!v.Truthy()), nil
	}})
	c.register(&Builtin{Name: "ISNULL", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		v, err := a.Val(0)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(v.IsNull()), nil
	}})
	c.register(&Builtin{Name: "COALESCE", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		for i := 0; i < a.Len(); i++ {
			v, err := a.Val(i)
			if err != nil {
				return nil, err
			}
			if !v.IsNull() {
				return v, nil
			}
		}
		return values.NewNull(), nil
	}})
}
