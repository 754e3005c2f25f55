// Package ast defines Skillet's expression AST: one variant per
// spec.md §3 Expression node, each a small struct implementing the
// Expression marker interface. Nodes are built once by the parser and
// never mutated afterward; functional builtins (FILTER/MAP/REDUCE/...)
// reuse a single argument subexpression by pointer once per element.
package ast

import "github.com/skillet-run/skillet/values"

// Expression is the marker interface every AST node implements.
type Expression interface {
	// Pos returns the byte offset of the token that introduced this
	// node, for error reporting.
	Pos() int
	exprNode()
}

type base struct{ Offset int }

func (b base) Pos() int  { return b.Offset }
func (b base) exprNode() {}

// Literal wraps a constant Value, e.g. a number, string, or boolean.
type Literal struct {
	base
	Value *values.Value
}

// VariableRef looks up Name in the current environment.
type VariableRef struct {
	base
	Name string
}

// Assign binds Value's evaluation result to Name in the current scope
// and evaluates to that value.
type Assign struct {
	base
	Name  string
	Value Expression
}

// Sequence evaluates each of Exprs left to right and yields the last
// one's value; used for `;`-separated assignment chains.
type Sequence struct {
	base
	Exprs []Expression
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpGt
	OpLt
	OpGte
	OpLte
	OpEq
	OpNeq
	OpAnd
	OpOr
)

// Binary is a two-operand operator expression, covering both
// arithmetic/comparison operators and the short-circuiting AND/OR.
type Binary struct {
	base
	Op       BinaryOp
	Lhs, Rhs Expression
}

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
	OpNot
)

// Unary is a single-operand prefix expression.
type Unary struct {
	base
	Op      UnaryOp
	Operand Expression
}

// Ternary evaluates only the selected branch, per spec.md §4.4.
type Ternary struct {
	base
	Cond, Then, Else Expression
}

// Spread marks an argument/array-literal element as `...expr`: the
// evaluator unpacks the Array value it produces in place.
type Spread struct {
	base
	Value Expression
}

// Call is a named function invocation, resolved first against the
// plugin registry, then the builtin catalog (spec.md §4.4).
type Call struct {
	base
	Name string
	Args []Expression
}

// MethodCall is `receiver.name(args)` or, when IsPredicate is true,
// `receiver.name?(args)`.
type MethodCall struct {
	base
	Receiver    Expression
	Name        string
	Args        []Expression
	IsPredicate bool
}

// Index is `receiver[index]`.
type Index struct {
	base
	Receiver Expression
	IndexExp Expression
}

// Slice is `receiver[start:end]`; Start/End may be nil for an open bound.
type Slice struct {
	base
	Receiver   Expression
	Start, End Expression
}

// ArrayLit builds an Array value from Items, splicing any Spread items
// in place.
type ArrayLit struct {
	base
	Items []Expression
}

// ObjectEntry is one `key: value` pair of an ObjectLit.
type ObjectEntry struct {
	Key   string
	Value Expression
}

// ObjectLit builds a Json value by evaluating Entries and serializing
// them canonically, per spec.md §4.2.
type ObjectLit struct {
	base
	Entries []ObjectEntry
}

// TargetType enumerates the cast targets spec.md §4.3 names.
type TargetType int

const (
	CastInteger TargetType = iota
	CastFloat
	CastString
	CastBoolean
	CastArray
	CastCurrency
	CastDateTime
	CastJson
)

// Cast is `receiver :: T`.
type Cast struct {
	base
	Receiver Expression
	Target   TargetType
}

// SafeAccess is `receiver &. rhs`, where rhs is a MethodCall or a bare
// field-style identifier; it short-circuits to Null without evaluating
// Receiver's continuation when Receiver is Null.
type SafeAccess struct {
	base
	Receiver Expression
	Rhs      Expression
}

// Constructors — each sets Offset from the introducing token so error
// messages can report a byte position.

func NewLiteral(offset int, v *values.Value) *Literal { return &Literal{base{offset}, v} }
func NewVariableRef(offset int, name string) *VariableRef {
	return &VariableRef{base{offset}, name}
}
func NewAssign(offset int, name string, v Expression) *Assign {
	return &Assign{base{offset}, name, v}
}
func NewSequence(offset int, exprs []Expression) *Sequence {
	return &Sequence{base{offset}, exprs}
}
func NewBinary(offset int, op BinaryOp, lhs, rhs Expression) *Binary {
	return &Binary{base{offset}, op, lhs, rhs}
}
func NewUnary(offset int, op UnaryOp, operand Expression) *Unary {
	return &Unary{base{offset}, op, operand}
}
func NewTernary(offset int, cond, then, els Expression) *Ternary {
	return &Ternary{base{offset}, cond, then, els}
}
func NewSpread(offset int, v Expression) *Spread { return &Spread{base{offset}, v} }
func NewCall(offset int, name string, args []Expression) *Call {
	return &Call{base{offset}, name, args}
}
func NewMethodCall(offset int, recv Expression, name string, args []Expression, isPredicate bool) *MethodCall {
	return &MethodCall{base{offset}, recv, name, args, isPredicate}
}
func NewIndex(offset int, recv, idx Expression) *Index { return &Index{base{offset}, recv, idx} }
func NewSlice(offset int, recv, start, end Expression) *Slice {
	return &Slice{base{offset}, recv, start, end}
}
func NewArrayLit(offset int, items []Expression) *ArrayLit { return &ArrayLit{base{offset}, items} }
func NewObjectLit(offset int, entries []ObjectEntry) *ObjectLit {
	return &ObjectLit{base{offset}, entries}
}
func NewCast(offset int, recv Expression, target TargetType) *Cast {
	return &Cast{base{offset}, recv, target}
}
func NewSafeAccess(offset int, recv, rhs Expression) *SafeAccess {
	return &SafeAccess{base{offset}, recv, rhs}
}
