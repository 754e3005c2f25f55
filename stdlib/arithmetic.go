package stdlib

import (
	"math"

	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
)

func registerArithmetic(c *Catalog) {
	c.register(&Builtin{Name: "ABS", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewNumber(math.Abs(n)), nil
	}})
	c.register(&Builtin{Name: "ROUND", MinArgs: 1, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		digits := 0.0
		if a.Len() == 2 {
			digits, err = numArg(a, 1)
			if err != nil {
				return nil, err
			}
		}
		mult := math.Pow(10, digits)
		return values.NewNumber(math.Round(n*mult) / mult), nil
	}})
	c.register(&Builtin{Name: "CEILING", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewNumber(math.Ceil(n)), nil
	}})
	c.register(&Builtin{Name: "FLOOR", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewNumber(math.Floor(n)), nil
	}})
	c.register(&Builtin{Name: "TRUNC", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewNumber(math.Trunc(n)), nil
	}})
	c.register(&Builtin{Name: "SQRT", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.Newf(errors.TypeError, "SQRT: argument must be non-negative, got %v", n)
		}
		return values.NewNumber(math.Sqrt(n)), nil
	}})
	c.register(&Builtin{Name: "POWER", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		base, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		exp, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		return values.NewNumber(math.Pow(base, exp)), nil
	}})
	c.register(&Builtin{Name: "MOD", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		x, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		y, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		if y == 0 {
			return nil, errors.New(errors.DivisionByZero, "MOD: divisor is zero")
		}
		return values.NewNumber(math.Mod(x, y)), nil
	}})
	c.register(&Builtin{Name: "SIGN", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		switch {
		case n > 0:
			return values.NewNumber(1), nil
		case n < 0:
			return values.NewNumber(-1), nil
		default:
			return values.NewNumber(0), nil
		}
	}})
	c.register(&Builtin{Name: "LOG", MinArgs: 1, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, errors.Newf(errors.TypeError, "LOG: argument must be positive, got %v", n)
		}
		if a.Len() == 2 {
			base, err := numArg(a, 1)
			if err != nil {
				return nil, err
			}
			return values.NewNumber(math.Log(n) / math.Log(base)), nil
		}
		return values.NewNumber(math.Log10(n)), nil
	}})
	c.register(&Builtin{Name: "LN", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, errors.Newf(errors.TypeError, "LN: argument must be positive, got %v", n)
		}
		return values.NewNumber(math.Log(n)), nil
	}})
	c.register(&Builtin{Name: "EXP", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewNumber(math.Exp(n)), nil
	}})
	c.register(&Builtin{Name: "PI", MinArgs: 0, MaxArgs: 0, Fn: func(a *Args) (*values.Value, error) {
		return values.NewNumber(math.Pi), nil
	}})
}
