package eval

import (
	"strings"
	"time"

	"github.com/skillet-run/skillet/ast"
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/methods"
	"github.com/skillet-run/skillet/runtime"
	"github.com/skillet-run/skillet/stdlib"
	"github.com/skillet-run/skillet/values"
)

// Evaluator tree-walks an ast.Expression against an Environment,
// producing a values.Value. It is the direct-AST-evaluation
// counterpart to the teacher's bytecode VM: Skillet expressions are
// short-lived and don't benefit from compiling to opcodes first.
type Evaluator struct {
	// Plugins is consulted before the builtin catalog for every Call
	// (spec.md §5: "plugin lookup precedes builtins").
	Plugins *runtime.Registry
}

// New creates an Evaluator. plugins may be nil, meaning no plugin
// registry is consulted (every Call resolves against stdlib only).
func New(plugins *runtime.Registry) *Evaluator {
	return &Evaluator{Plugins: plugins}
}

// Evaluate runs expr against env.
func (ev *Evaluator) Evaluate(expr ast.Expression, env *Environment) (*values.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.VariableRef:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, errors.At(errors.MissingVariable, n.Pos(), "undefined variable :"+n.Name)
		}
		return v, nil
	case *ast.Assign:
		v, err := ev.Evaluate(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Set(n.Name, v)
		return v, nil
	case *ast.Sequence:
		var last *values.Value
		for _, e := range n.Exprs {
			v, err := ev.Evaluate(e, env)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	case *ast.Binary:
		return ev.evalBinary(n, env)
	case *ast.Unary:
		return ev.evalUnary(n, env)
	case *ast.Ternary:
		cond, err := ev.Evaluate(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return ev.Evaluate(n.Then, env)
		}
		return ev.Evaluate(n.Else, env)
	case *ast.Spread:
		return ev.Evaluate(n.Value, env)
	case *ast.ArrayLit:
		items, err := ev.evalSplicedList(n.Items, env)
		if err != nil {
			return nil, err
		}
		return values.NewArray(items), nil
	case *ast.ObjectLit:
		return ev.evalObjectLit(n, env)
	case *ast.Call:
		return ev.evalCall(n, env)
	case *ast.MethodCall:
		recv, err := ev.Evaluate(n.Receiver, env)
		if err != nil {
			return nil, err
		}
		return ev.dispatchMethod(recv, n, env)
	case *ast.SafeAccess:
		recv, err := ev.Evaluate(n.Receiver, env)
		if err != nil {
			return nil, err
		}
		if recv.IsNull() {
			return values.NewNull(), nil
		}
		mc := n.Rhs.(*ast.MethodCall)
		return ev.dispatchMethod(recv, mc, env)
	case *ast.Index:
		return ev.evalIndex(n, env)
	case *ast.Slice:
		return ev.evalSlice(n, env)
	case *ast.Cast:
		recv, err := ev.Evaluate(n.Receiver, env)
		if err != nil {
			return nil, err
		}
		return ev.evalCast(recv, n.Target, n.Pos())
	}
	return nil, errors.Newf(errors.ParseError, "unhandled expression node %T", expr)
}

func (ev *Evaluator) evalSplicedList(items []ast.Expression, env *Environment) ([]*values.Value, error) {
	var out []*values.Value
	for _, item := range items {
		if sp, ok := item.(*ast.Spread); ok {
			v, err := ev.Evaluate(sp.Value, env)
			if err != nil {
				return nil, err
			}
			out = append(out, v.ToArray()...)
			continue
		}
		v, err := ev.Evaluate(item, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) evalObjectLit(n *ast.ObjectLit, env *Environment) (*values.Value, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range n.Entries {
		if i > 0 {
			b.WriteByte(',')
		}
		v, err := ev.Evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(e.Key, `"`, `\"`))
		b.WriteString(`":`)
		b.WriteString(v.ToJSON())
	}
	b.WriteByte('}')
	return values.NewJson(b.String()), nil
}

func (ev *Evaluator) evalBinary(n *ast.Binary, env *Environment) (*values.Value, error) {
	// AND/OR short-circuit: the right operand is never evaluated once
	// the result is already determined (spec.md §4.4).
	if n.Op == ast.OpAnd {
		lhs, err := ev.Evaluate(n.Lhs, env)
		if err != nil {
			return nil, err
		}
		if !lhs.Truthy() {
			return values.NewBoolean(false), nil
		}
		rhs, err := ev.Evaluate(n.Rhs, env)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(rhs.Truthy()), nil
	}
	if n.Op == ast.OpOr {
		lhs, err := ev.Evaluate(n.Lhs, env)
		if err != nil {
			return nil, err
		}
		if lhs.Truthy() {
			return values.NewBoolean(true), nil
		}
		rhs, err := ev.Evaluate(n.Rhs, env)
		if err != nil {
			return nil, err
		}
		return values.NewBoolean(rhs.Truthy()), nil
	}

	lhs, err := ev.Evaluate(n.Lhs, env)
	if err != nil {
		return nil, err
	}
	rhs, err := ev.Evaluate(n.Rhs, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd:
		v, err := values.Add(lhs, rhs)
		return v, wrapTypeErr(err, n.Pos())
	case ast.OpSub:
		v, err := values.Sub(lhs, rhs)
		return v, wrapArithErr(err, n.Pos())
	case ast.OpMul:
		v, err := values.Mul(lhs, rhs)
		return v, wrapArithErr(err, n.Pos())
	case ast.OpDiv:
		v, err := values.Div(lhs, rhs)
		return v, wrapArithErr(err, n.Pos())
	case ast.OpMod:
		v, err := values.Mod(lhs, rhs)
		return v, wrapArithErr(err, n.Pos())
	case ast.OpPow:
		v, err := values.Pow(lhs, rhs)
		return v, wrapArithErr(err, n.Pos())
	case ast.OpEq:
		return values.NewBoolean(lhs.Equal(rhs)), nil
	case ast.OpNeq:
		return values.NewBoolean(!lhs.Equal(rhs)), nil
	case ast.OpGt, ast.OpLt, ast.OpGte, ast.OpLte:
		c, err := lhs.Compare(rhs)
		if err != nil {
			return nil, errors.At(errors.TypeError, n.Pos(), err.Error())
		}
		switch n.Op {
		case ast.OpGt:
			return values.NewBoolean(c > 0), nil
		case ast.OpLt:
			return values.NewBoolean(c < 0), nil
		case ast.OpGte:
			return values.NewBoolean(c >= 0), nil
		default:
			return values.NewBoolean(c <= 0), nil
		}
	}
	return nil, errors.At(errors.ParseError, n.Pos(), "unknown binary operator")
}

func wrapTypeErr(err error, offset int) error {
	if err == nil {
		return nil
	}
	return errors.At(errors.TypeError, offset, err.Error())
}

func wrapArithErr(err error, offset int) error {
	if err == nil {
		return nil
	}
	if values.IsDivByZero(err) {
		return errors.At(errors.DivisionByZero, offset, err.Error())
	}
	return errors.At(errors.TypeError, offset, err.Error())
}

func (ev *Evaluator) evalUnary(n *ast.Unary, env *Environment) (*values.Value, error) {
	v, err := ev.Evaluate(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNot:
		return values.NewBoolean(!v.Truthy()), nil
	case ast.OpPos:
		if !v.IsNumericKind() {
			return nil, errors.At(errors.TypeError, n.Pos(), "unary + requires a numeric-kind operand")
		}
		return v, nil
	case ast.OpNeg:
		if !v.IsNumericKind() {
			return nil, errors.At(errors.TypeError, n.Pos(), "unary - requires a numeric-kind operand")
		}
		if v.IsCurrency() {
			return values.NewCurrency(-v.NumericValue()), nil
		}
		return values.NewNumber(-v.NumericValue()), nil
	}
	return nil, errors.At(errors.ParseError, n.Pos(), "unknown unary operator")
}

func (ev *Evaluator) evalCall(n *ast.Call, env *Environment) (*values.Value, error) {
	if ev.Plugins != nil {
		if _, ok := ev.Plugins.Lookup(n.Name); ok {
			argVals, err := ev.evalSplicedList(n.Args, env)
			if err != nil {
				return nil, err
			}
			v, err := ev.Plugins.Invoke(n.Name, argVals)
			if err != nil {
				return nil, errors.At(errors.PluginError, n.Pos(), err.Error())
			}
			return v, nil
		}
	}

	builtin, ok := stdlib.Default.Lookup(n.Name)
	if !ok {
		return nil, errors.At(errors.MissingVariable, n.Pos(), "unknown function "+n.Name)
	}
	if err := stdlib.CheckArity(builtin, len(n.Args), n.Pos()); err != nil {
		return nil, err
	}
	args := stdlib.NewArgs(n.Args,
		func(e ast.Expression) (*values.Value, error) { return ev.Evaluate(e, env) },
		func(body ast.Expression, params []string, binds []*values.Value) (*values.Value, error) {
			return ev.evalLambda(body, params, binds, env)
		},
	)
	v, err := builtin.Fn(args)
	if err != nil {
		return nil, withOffsetIfMissing(err, n.Pos())
	}
	return v, nil
}

// evalLambda evaluates body in a fresh child scope binding params to
// binds positionally (spec.md §4.5): FILTER/MAP/REDUCE/FIND bind
// "item"/"x" (or "acc"/"item" for REDUCE) so either name works.
func (ev *Evaluator) evalLambda(body ast.Expression, params []string, binds []*values.Value, parent *Environment) (*values.Value, error) {
	child := parent.Child()
	for i, p := range params {
		if i < len(binds) {
			child.Set(p, binds[i])
		}
	}
	return ev.Evaluate(body, child)
}

func (ev *Evaluator) dispatchMethod(recv *values.Value, mc *ast.MethodCall, env *Environment) (*values.Value, error) {
	fn, _, ok := methods.Lookup(recv.Kind(), mc.Name)
	if !ok {
		return nil, errors.At(errors.NullMethod, mc.Pos(), "no method "+mc.Name+" on "+recv.Kind().String())
	}
	args := methods.NewArgs(mc.Args, func(e ast.Expression) (*values.Value, error) {
		return ev.Evaluate(e, env)
	})
	v, err := fn(recv, args)
	if err != nil {
		return nil, withOffsetIfMissing(err, mc.Pos())
	}
	return v, nil
}

func (ev *Evaluator) evalIndex(n *ast.Index, env *Environment) (*values.Value, error) {
	recv, err := ev.Evaluate(n.Receiver, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := ev.Evaluate(n.IndexExp, env)
	if err != nil {
		return nil, err
	}
	idx := int(idxVal.ToFloat())
	switch {
	case recv.IsArray():
		arr := recv.ArrayValue()
		if idx < 0 {
			idx += len(arr)
		}
		if idx < 0 || idx >= len(arr) {
			return nil, errors.At(errors.IndexError, n.Pos(), "array index out of range")
		}
		return arr[idx], nil
	case recv.IsString():
		runes := []rune(recv.StringValue())
		if idx < 0 {
			idx += len(runes)
		}
		if idx < 0 || idx >= len(runes) {
			return nil, errors.At(errors.IndexError, n.Pos(), "string index out of range")
		}
		return values.NewString(string(runes[idx])), nil
	default:
		return nil, errors.At(errors.TypeError, n.Pos(), "cannot index into "+recv.Kind().String())
	}
}

func (ev *Evaluator) evalSlice(n *ast.Slice, env *Environment) (*values.Value, error) {
	recv, err := ev.Evaluate(n.Receiver, env)
	if err != nil {
		return nil, err
	}
	length := 0
	switch {
	case recv.IsArray():
		length = len(recv.ArrayValue())
	case recv.IsString():
		length = len([]rune(recv.StringValue()))
	default:
		return nil, errors.At(errors.TypeError, n.Pos(), "cannot slice "+recv.Kind().String())
	}

	start, end := 0, length
	if n.Start != nil {
		v, err := ev.Evaluate(n.Start, env)
		if err != nil {
			return nil, err
		}
		start = clampSliceIndex(int(v.ToFloat()), length)
	}
	if n.End != nil {
		v, err := ev.Evaluate(n.End, env)
		if err != nil {
			return nil, err
		}
		end = clampSliceIndex(int(v.ToFloat()), length)
	}
	if end < start {
		end = start
	}

	if recv.IsArray() {
		return values.NewArray(recv.ArrayValue()[start:end]), nil
	}
	runes := []rune(recv.StringValue())
	return values.NewString(string(runes[start:end])), nil
}

func clampSliceIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		i = 0
	}
	if i > length {
		i = length
	}
	return i
}

func (ev *Evaluator) evalCast(v *values.Value, target ast.TargetType, offset int) (*values.Value, error) {
	switch target {
	case ast.CastInteger:
		return values.NewNumber(float64(v.ToInt())), nil
	case ast.CastFloat:
		return values.NewNumber(v.ToFloat()), nil
	case ast.CastString:
		return values.NewString(v.ToString()), nil
	case ast.CastBoolean:
		return values.NewBoolean(v.ToBool()), nil
	case ast.CastArray:
		return values.NewArray(v.ToArray()), nil
	case ast.CastCurrency:
		return values.NewCurrency(v.ToFloat()), nil
	case ast.CastDateTime:
		return castDateTime(v, offset)
	case ast.CastJson:
		return values.NewJson(v.ToJSON()), nil
	}
	return nil, errors.At(errors.TypeError, offset, "unknown cast target")
}

func castDateTime(v *values.Value, offset int) (*values.Value, error) {
	switch {
	case v.IsDateTime():
		return v, nil
	case v.IsNumericKind():
		return values.NewDateTime(int64(v.NumericValue())), nil
	case v.IsString():
		t, err := time.Parse(time.RFC3339, v.StringValue())
		if err != nil {
			t, err = time.Parse("2006-01-02", v.StringValue())
		}
		if err != nil {
			return nil, errors.Atf(errors.TypeError, offset, "cannot parse %q as DateTime: %s", v.StringValue(), err.Error())
		}
		return values.NewDateTime(t.Unix()), nil
	default:
		return nil, errors.At(errors.TypeError, offset, "cannot cast "+v.Kind().String()+" to DateTime")
	}
}

// withOffsetIfMissing attaches offset to err if err is a *errors.Error
// with no byte position of its own (most stdlib/methods errors are
// raised without call-site context since they only see their Args).
func withOffsetIfMissing(err error, offset int) error {
	se, ok := err.(*errors.Error)
	if !ok {
		return err
	}
	if se.Offset >= 0 {
		return se
	}
	return se.WithOffset(offset)
}
