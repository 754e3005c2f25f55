package stdlib

import (
	"testing"

	"github.com/skillet-run/skillet/ast"
	"github.com/skillet-run/skillet/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callBuiltin evaluates lit-only argument expressions against b, with
// no lambda support — enough for the non-functional builtins under
// test here.
func callBuiltin(t *testing.T, b *Builtin, vals ...*values.Value) (*values.Value, error) {
	t.Helper()
	raw := make([]ast.Expression, len(vals))
	for i, v := range vals {
		raw[i] = ast.NewLiteral(0, v)
	}
	args := NewArgs(raw, func(e ast.Expression) (*values.Value, error) {
		return e.(*ast.Literal).Value, nil
	}, nil)
	return b.Fn(args)
}

func TestSumAndAverage(t *testing.T) {
	sum, _ := Default.Lookup("SUM")
	v, err := callBuiltin(t, sum, values.NewNumber(1), values.NewNumber(2), values.NewNumber(3))
	require.NoError(t, err)
	assert.Equal(t, 6.0, v.NumberValue())

	avg, _ := Default.Lookup("AVERAGE")
	v, err = callBuiltin(t, avg, values.NewNumber(2), values.NewNumber(4))
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.NumberValue())
}

func TestAliasesCanonicalize(t *testing.T) {
	_, ok := Default.Lookup("sum_if")
	assert.True(t, ok)
	_, ok = Default.Lookup("SUM.IF")
	assert.True(t, ok)
	b, ok := Default.Lookup("sumif")
	assert.True(t, ok)
	assert.Equal(t, "SUMIF", b.Name)
}

func TestRoundAndAbs(t *testing.T) {
	round, _ := Default.Lookup("ROUND")
	v, err := callBuiltin(t, round, values.NewNumber(3.14159), values.NewNumber(2))
	require.NoError(t, err)
	assert.Equal(t, 3.14, v.NumberValue())

	abs, _ := Default.Lookup("ABS")
	v, err = callBuiltin(t, abs, values.NewNumber(-5))
	require.NoError(t, err)
	assert.Equal(t, 5.0, v.NumberValue())
}

func TestConcatAndUpper(t *testing.T) {
	concat, _ := Default.Lookup("CONCAT")
	v, err := callBuiltin(t, concat, values.NewString("a"), values.NewString("b"))
	require.NoError(t, err)
	assert.Equal(t, "ab", v.StringValue())

	upper, _ := Default.Lookup("UPPER")
	v, err = callBuiltin(t, upper, values.NewString("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ABC", v.StringValue())
}

func TestCountOnlyCountsNumericKind(t *testing.T) {
	count, _ := Default.Lookup("COUNT")
	arr := values.NewArray([]*values.Value{
		values.NewNumber(1), values.NewString("x"), values.NewBoolean(true), values.NewNull(),
	})
	v, err := callBuiltin(t, count, arr)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.NumberValue())
}

func TestPMTSignConvention(t *testing.T) {
	pmt, _ := Default.Lookup("PMT")
	v, err := callBuiltin(t, pmt, values.NewNumber(0.05), values.NewNumber(10), values.NewNumber(1000))
	require.NoError(t, err)
	assert.Less(t, v.NumberValue(), 0.0)
}

func TestDigJQAgainstJsonValue(t *testing.T) {
	dig, _ := Default.Lookup("DIG")
	doc := values.NewJson(`{"user":{"name":"ada"}}`)
	v, err := callBuiltin(t, dig, doc, values.NewString("user.name"))
	require.NoError(t, err)
	assert.Equal(t, "ada", v.StringValue())

	jq, _ := Default.Lookup("JQ")
	doc2 := values.NewJson(`{"items":[1,2,3]}`)
	v, err = callBuiltin(t, jq, doc2, values.NewString("items"))
	require.NoError(t, err)
	assert.True(t, v.IsArray())
	assert.Len(t, v.ArrayValue(), 3)
}

func TestSortAndUnique(t *testing.T) {
	sort, _ := Default.Lookup("SORT")
	arr := values.NewArray([]*values.Value{values.NewNumber(3), values.NewNumber(1), values.NewNumber(2)})
	v, err := callBuiltin(t, sort, arr)
	require.NoError(t, err)
	got := v.ArrayValue()
	assert.Equal(t, 1.0, got[0].NumberValue())
	assert.Equal(t, 3.0, got[2].NumberValue())

	unique, _ := Default.Lookup("UNIQUE")
	arr2 := values.NewArray([]*values.Value{values.NewNumber(1), values.NewNumber(1), values.NewNumber(2)})
	v, err = callBuiltin(t, unique, arr2)
	require.NoError(t, err)
	assert.Len(t, v.ArrayValue(), 2)
}

func TestArityErrorOnTooFewArgs(t *testing.T) {
	ifB, _ := Default.Lookup("IF")
	err := CheckArity(ifB, 2, 0)
	assert.Error(t, err)
}
