package stdlib

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
)

func registerText(c *Catalog) {
	c.register(&Builtin{Name: "CONCAT", MinArgs: 1, MaxArgs: -1, Fn: func(a *Args) (*values.Value, error) {
		var b strings.Builder
		for i := 0; i < a.Len(); i++ {
			s, err := strArg(a, i)
			if err != nil {
				return nil, err
			}
			b.WriteString(s)
		}
		return values.NewString(b.String()), nil
	}})
	c.register(&Builtin{Name: "UPPER", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewString(strings.ToUpper(s)), nil
	}})
	c.register(&Builtin{Name: "LOWER", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewString(strings.ToLower(s)), nil
	}})
	c.register(&Builtin{Name: "TRIM", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewString(strings.TrimSpace(s)), nil
	}})
	c.register(&Builtin{Name: "LEN", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		v, err := a.Val(0)
		if err != nil {
			return nil, err
		}
		if v.IsArray() {
			return values.NewNumber(float64(len(v.ArrayValue()))), nil
		}
		return values.NewNumber(float64(len([]rune(v.ToString())))), nil
	}})
	c.register(&Builtin{Name: "SUBSTR", MinArgs: 2, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		start, err := numArg(a, 1)
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		si := clampIndex(int(start), len(runes))
		ei := len(runes)
		if a.Len() == 3 {
			length, err := numArg(a, 2)
			if err != nil {
				return nil, err
			}
			ei = clampIndex(si+int(length), len(runes))
		}
		if ei < si {
			ei = si
		}
		return values.NewString(string(runes[si:ei])), nil
	}})
	c.register(&Builtin{Name: "REPLACE", MinArgs: 3, MaxArgs: 3, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		old, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		nw, err := strArg(a, 2)
		if err != nil {
			return nil, err
		}
		return values.NewString(strings.ReplaceAll(s, old, nw)), nil
	}})
	c.register(&Builtin{Name: "SPLIT", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		sep, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		out := make([]*values.Value, len(parts))
		for i, p := range parts {
			out[i] = values.NewString(p)
		}
		return values.NewArray(out), nil
	}})
	c.register(&Builtin{Name: "JOIN", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		arr, err := arrArg(a, 0)
		if err != nil {
			return nil, err
		}
		sep, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(arr))
		for i, v := range arr {
			parts[i] = v.ToString()
		}
		return values.NewString(strings.Join(parts, sep)), nil
	}})
	c.register(&Builtin{Name: "CONTAINS", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		sub, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(strings.Contains(s, sub)), nil
	}})
	c.register(&Builtin{Name: "STARTSWITH", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		sub, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(strings.HasPrefix(s, sub)), nil
	}})
	c.register(&Builtin{Name: "ENDSWITH", MinArgs: 2, MaxArgs: 2, Fn: func(a *Args) (*values.Value, error) {
		s, err := strArg(a, 0)
		if err != nil {
			return nil, err
		}
		sub, err := strArg(a, 1)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(strings.HasSuffix(s, sub)), nil
	}})
	// HUMANBYTES and ORDINAL exercise dustin/go-humanize for the
	// display-formatting concern spec.md's text category leaves open.
	c.register(&Builtin{Name: "HUMANBYTES", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.New(errors.TypeError, "HUMANBYTES: argument must be non-negative")
		}
		return values.NewString(humanize.Bytes(uint64(n))), nil
	}})
	c.register(&Builtin{Name: "ORDINAL", MinArgs: 1, MaxArgs: 1, Fn: func(a *Args) (*values.Value, error) {
		n, err := numArg(a, 0)
		if err != nil {
			return nil, err
		}
		return values.NewString(humanize.Ordinal(int(n))), nil
	}})
}

func clampIndex(i, n int) int {
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}
