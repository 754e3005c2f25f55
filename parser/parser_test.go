package parser

import (
	"testing"

	"github.com/skillet-run/skillet/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticPrecedence(t *testing.T) {
	expr, err := Parse("1 + 2 * 3")
	require.NoError(t, err)
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	rhs, ok := bin.Rhs.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestExponentRightAssociative(t *testing.T) {
	expr, err := Parse("2 ^ 3 ^ 2")
	require.NoError(t, err)
	bin := expr.(*ast.Binary)
	assert.Equal(t, ast.OpPow, bin.Op)
	_, lhsIsLit := bin.Lhs.(*ast.Literal)
	assert.True(t, lhsIsLit)
	_, rhsIsBin := bin.Rhs.(*ast.Binary)
	assert.True(t, rhsIsBin)
}

func TestTernaryRightAssociative(t *testing.T) {
	expr, err := Parse(":a > 0 ? 1 : :b > 0 ? 2 : 3")
	require.NoError(t, err)
	tern, ok := expr.(*ast.Ternary)
	require.True(t, ok)
	_, elseIsTernary := tern.Else.(*ast.Ternary)
	assert.True(t, elseIsTernary)
}

func TestAssignmentSequence(t *testing.T) {
	expr, err := Parse(":x := 1 + 1; :x * 2")
	require.NoError(t, err)
	seq, ok := expr.(*ast.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Exprs, 2)
	assign, ok := seq.Exprs[0].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
}

func TestCallWithArgs(t *testing.T) {
	expr, err := Parse(`SUM(1, 2, :arr)`)
	require.NoError(t, err)
	call, ok := expr.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "SUM", call.Name)
	require.Len(t, call.Args, 3)
}

func TestMethodCallAndPredicate(t *testing.T) {
	expr, err := Parse(`:arr.FILTER(:x > 5).length()`)
	require.NoError(t, err)
	outer, ok := expr.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "length", outer.Name)
	inner, ok := outer.Receiver.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "FILTER", inner.Name)

	pred, err := Parse(`:n.positive?()`)
	require.NoError(t, err)
	mc, ok := pred.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "positive", mc.Name)
	assert.True(t, mc.IsPredicate)
}

func TestSafeNavFieldForm(t *testing.T) {
	expr, err := Parse(`:obj&.name`)
	require.NoError(t, err)
	sa, ok := expr.(*ast.SafeAccess)
	require.True(t, ok)
	rhs, ok := sa.Rhs.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "name", rhs.Name)
	assert.Nil(t, rhs.Args)
}

func TestIndexAndSlice(t *testing.T) {
	expr, err := Parse(`:arr[1:3]`)
	require.NoError(t, err)
	sl, ok := expr.(*ast.Slice)
	require.True(t, ok)
	assert.NotNil(t, sl.Start)
	assert.NotNil(t, sl.End)

	expr2, err := Parse(`:arr[0]`)
	require.NoError(t, err)
	_, ok = expr2.(*ast.Index)
	assert.True(t, ok)
}

func TestCastExpression(t *testing.T) {
	expr, err := Parse(`:x::Integer`)
	require.NoError(t, err)
	c, ok := expr.(*ast.Cast)
	require.True(t, ok)
	assert.Equal(t, ast.CastInteger, c.Target)
}

func TestArrayAndSpreadLiteral(t *testing.T) {
	expr, err := Parse(`[1, 2, ...:rest]`)
	require.NoError(t, err)
	arr, ok := expr.(*ast.ArrayLit)
	require.True(t, ok)
	require.Len(t, arr.Items, 3)
	_, ok = arr.Items[2].(*ast.Spread)
	assert.True(t, ok)
}

func TestObjectLiteral(t *testing.T) {
	expr, err := Parse(`{name: "a", count: 1}`)
	require.NoError(t, err)
	obj, ok := expr.(*ast.ObjectLit)
	require.True(t, ok)
	require.Len(t, obj.Entries, 2)
	assert.Equal(t, "name", obj.Entries[0].Key)
}

func TestLeadingEqualsIgnored(t *testing.T) {
	expr, err := Parse(`= 1 + 1`)
	require.NoError(t, err)
	_, ok := expr.(*ast.Binary)
	assert.True(t, ok)
}

func TestUnaryAndLogical(t *testing.T) {
	expr, err := Parse(`NOT :a AND :b OR !:c`)
	require.NoError(t, err)
	bin, ok := expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpOr, bin.Op)
}

func TestParseCriteria(t *testing.T) {
	cmp, n, err := ParseCriteria(">25")
	require.NoError(t, err)
	assert.Equal(t, ">", cmp)
	assert.Equal(t, 25.0, n)

	cmp, n, err = ParseCriteria("<>10")
	require.NoError(t, err)
	assert.Equal(t, "!=", cmp)
	assert.Equal(t, 10.0, n)

	cmp, n, err = ParseCriteria("20")
	require.NoError(t, err)
	assert.Equal(t, "==", cmp)
	assert.Equal(t, 20.0, n)
}

func TestTrailingInputError(t *testing.T) {
	_, err := Parse(`1 + 1 )`)
	require.Error(t, err)
}
