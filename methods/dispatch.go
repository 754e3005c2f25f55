// Package methods implements Skillet's per-Kind method tables
// (spec.md §4.7): `receiver.name(args)` and predicate `receiver.name?()`
// calls dispatched first by the receiver's Kind, then by name.
package methods

import (
	"strings"

	"github.com/skillet-run/skillet/ast"
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
)

// Args mirrors stdlib.Args: the evaluator supplies closures so this
// package never needs to import the evaluator's Environment type.
type Args struct {
	Raw   []ast.Expression
	eval  func(ast.Expression) (*values.Value, error)
	cache []*values.Value
}

func NewArgs(raw []ast.Expression, eval func(ast.Expression) (*values.Value, error)) *Args {
	return &Args{Raw: raw, eval: eval, cache: make([]*values.Value, len(raw))}
}

func (a *Args) Len() int { return len(a.Raw) }

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

// Method is one receiver method's implementation.
type Method func(recv *values.Value, a *Args) (*values.Value, error)

type entry struct {
	fn          Method
	isPredicate bool
}

var tables = map[values.Kind]map[string]entry{
	values.KindNumber:   {},
	values.KindCurrency: {},
	values.KindString:   {},
	values.KindArray:    {},
	values.KindJson:     {},
	values.KindDateTime: {},
}

// all holds methods available on every Kind (e.g. `.to_s()`).
var all = map[string]entry{}

func register(kind values.Kind, name string, isPredicate bool, fn Method) {
	tables[kind][strings.ToLower(name)] = entry{fn: fn, isPredicate: isPredicate}
}

func registerAll(name string, isPredicate bool, fn Method) {
	all[strings.ToLower(name)] = entry{fn: fn, isPredicate: isPredicate}
}

// Lookup finds the method named name for a value of kind, falling back
// to the universal table. isPredicate reports whether the method was
// registered as a predicate (spec.md §4.7's naming convention: predicate
// methods are registered under their bare name, without a trailing '?').
func Lookup(kind values.Kind, name string) (Method, bool, bool) {
	key := strings.ToLower(name)
	if table, ok := tables[kind]; ok {
		if e, ok := table[key]; ok {
			return e.fn, e.isPredicate, true
		}
	}
	if e, ok := all[key]; ok {
		return e.fn, e.isPredicate, true
	}
	return nil, false, false
}

func init() {
	registerNumberMethods()
	registerStringMethods()
	registerArrayMethods()
	registerJsonMethods()
	registerUniversalMethods()
}
