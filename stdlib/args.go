// Package stdlib implements Skillet's built-in function catalog
// (spec.md §4.6): arithmetic, statistical, logical, text, date/time,
// array, JSON, and financial functions. Functions are registered in a
// name-keyed Catalog and looked up by the evaluator after the plugin
// registry has had first refusal.
package stdlib

import (
	"strings"

	"github.com/skillet-run/skillet/ast"
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
)

// Args gives a Builtin access to its call-site argument expressions
// without this package importing the evaluator (which imports this
// package back to look up builtins). The evaluator supplies closures
// bound to the current Environment; a Builtin never sees an
// Environment value directly.
type Args struct {
	Raw        []ast.Expression
	eval       func(ast.Expression) (*values.Value, error)
	evalLambda func(body ast.Expression, params []string, binds []*values.Value) (*values.Value, error)
	cache      []*values.Value
}

// NewArgs is called by the evaluator to build the Args a Builtin sees.
func NewArgs(raw []ast.Expression, eval func(ast.Expression) (*values.Value, error), evalLambda func(ast.Expression, []string, []*values.Value) (*values.Value, error)) *Args {
	return &Args{Raw: raw, eval: eval, evalLambda: evalLambda, cache: make([]*values.Value, len(raw))}
}

// Len returns the number of call-site arguments.
func (a *Args) Len() int { return len(a.Raw) }

// Val evaluates (and caches) the i'th argument as an ordinary value.
func (a *Args) Val(i int) (*values.Value, error) {
	if i < 0 || i >= len(a.Raw) {
		return nil, errors.Newf(errors.ArityError, "argument index %d out of range", i)
	}
	if a.cache[i] != nil {
		return a.cache[i], nil
	}
	v, err := a.eval(a.Raw[i])
	if err != nil {
		return nil, err
	}
	a.cache[i] = v
	return v, nil
}

// Lambda evaluates the i'th argument expression in a fresh child scope
// binding params to binds, for FILTER/MAP/REDUCE-style functional
// builtins (spec.md §4.5). The raw expression is re-evaluated once per
// element; it is never pre-evaluated via Val.
func (a *Args) Lambda(i int, params []string, binds []*values.Value) (*values.Value, error) {
	if i < 0 || i >= len(a.Raw) {
		return nil, errors.Newf(errors.ArityError, "argument index %d out of range", i)
	}
	return a.evalLambda(a.Raw[i], params, binds)
}

// Fn is a builtin's implementation.
type Fn func(a *Args) (*values.Value, error)

// Builtin describes one registered function: its arity bounds (MaxArgs
// -1 means variadic) and implementation.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      Fn
}

// Catalog is the name-keyed registry of every builtin, keyed by a
// canonicalized name so "SUM_IF", "sumif", and "SUM.IF" all resolve to
// the same entry (spec.md §4.6's alias rule).
type Catalog struct {
	entries map[string]*Builtin
}

func newCatalog() *Catalog { return &Catalog{entries: map[string]*Builtin{}} }

// canonicalName upper-cases name and strips '.'  and '_' separators so
// aliasing is purely cosmetic at the call site.
func canonicalName(name string) string {
	name = strings.ToUpper(name)
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, ".", "")
	return name
}

func (c *Catalog) register(b *Builtin) {
	c.entries[canonicalName(b.Name)] = b
}

// Lookup finds a Builtin by call-site name, applying the same
// canonicalization used at registration.
func (c *Catalog) Lookup(name string) (*Builtin, bool) {
	b, ok := c.entries[canonicalName(name)]
	return b, ok
}

// CheckArity validates argc against b's bounds, returning a
// *errors.Error with Kind ArityError on mismatch.
func CheckArity(b *Builtin, argc int, offset int) error {
	if argc < b.MinArgs || (b.MaxArgs >= 0 && argc > b.MaxArgs) {
		if b.MaxArgs < 0 {
			return errors.Atf(errors.ArityError, offset, "%s expects at least %d argument(s), got %d", b.Name, b.MinArgs, argc)
		}
		if b.MinArgs == b.MaxArgs {
			return errors.Atf(errors.ArityError, offset, "%s expects %d argument(s), got %d", b.Name, b.MinArgs, argc)
		}
		return errors.Atf(errors.ArityError, offset, "%s expects %d-%d argument(s), got %d", b.Name, b.MinArgs, b.MaxArgs, argc)
	}
	return nil
}

// Default is the catalog of every builtin spec.md §4.6 names.
var Default = buildDefaultCatalog()

func buildDefaultCatalog() *Catalog {
	c := newCatalog()
	registerArithmetic(c)
	registerStatistical(c)
	registerLogical(c)
	registerText(c)
	registerDateTime(c)
	registerArray(c)
	registerJSON(c)
	registerFinancial(c)
	return c
}

// numArg is a small helper most builtins use: evaluate arg i and
// coerce it through ToFloat whatever its kind (the Catalog follows
// spec.md §4.3's permissive numeric coercion, not a hard type error,
// for scalar math functions).
func numArg(a *Args, i int) (float64, error) {
	v, err := a.Val(i)
	if err != nil {
		return 0, err
	}
	return v.ToFloat(), nil
}

func strArg(a *Args, i int) (string, error) {
	v, err := a.Val(i)
	if err != nil {
		return "", err
	}
	return v.ToString(), nil
}

func arrArg(a *Args, i int) ([]*values.Value, error) {
	v, err := a.Val(i)
	if err != nil {
		return nil, err
	}
	return v.ToArray(), nil
}
