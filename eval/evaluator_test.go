package eval

import (
	"testing"

	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/parser"
	"github.com/skillet-run/skillet/runtime"
	"github.com/skillet-run/skillet/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string, vars map[string]*values.Value) (*values.Value, error) {
	t.Helper()
	expr, err := parser.Parse(src)
	require.NoError(t, err)
	ev := New(runtime.NewRegistry())
	env := NewEnvironment(vars)
	return ev.Evaluate(expr, env)
}

func TestArithmeticAndPrecedence(t *testing.T) {
	v, err := run(t, "1 + 2 * 3", nil)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v.NumberValue())
}

func TestDivisionByZeroIsTyped(t *testing.T) {
	_, err := run(t, "1 / 0", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.DivisionByZero))
}

func TestTernaryShortCircuits(t *testing.T) {
	v, err := run(t, ":x > 0 ? 1 : 1/0", map[string]*values.Value{"x": values.NewNumber(5)})
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.NumberValue())
}

func TestAndOrShortCircuit(t *testing.T) {
	v, err := run(t, "FALSE AND 1/0 > 0", nil)
	require.NoError(t, err)
	assert.False(t, v.Truthy())

	v, err = run(t, "TRUE OR 1/0 > 0", nil)
	require.NoError(t, err)
	assert.True(t, v.Truthy())
}

func TestAssignmentSequenceAndVariableRef(t *testing.T) {
	v, err := run(t, ":x := 10; :x * 2", nil)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v.NumberValue())
}

func TestMissingVariableError(t *testing.T) {
	_, err := run(t, ":undefined + 1", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.MissingVariable))
}

func TestFilterMapReduceBuiltins(t *testing.T) {
	arr := values.NewArray([]*values.Value{
		values.NewNumber(1), values.NewNumber(2), values.NewNumber(3), values.NewNumber(4),
	})
	v, err := run(t, "FILTER(:arr, :x > 2)", map[string]*values.Value{"arr": arr})
	require.NoError(t, err)
	assert.Len(t, v.ArrayValue(), 2)

	v, err = run(t, "MAP(:arr, :x * 10)", map[string]*values.Value{"arr": arr})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v.ArrayValue()[0].NumberValue())

	v, err = run(t, "REDUCE(:arr, :acc + :item, 0)", map[string]*values.Value{"arr": arr})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v.NumberValue())
}

func TestMethodCallAndPredicate(t *testing.T) {
	v, err := run(t, ":x.positive?()", map[string]*values.Value{"x": values.NewNumber(5)})
	require.NoError(t, err)
	assert.True(t, v.Truthy())
}

func TestSafeNavShortCircuitsOnNull(t *testing.T) {
	v, err := run(t, ":obj&.length()", map[string]*values.Value{"obj": values.NewNull()})
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestIndexAndSlice(t *testing.T) {
	arr := values.NewArray([]*values.Value{values.NewNumber(1), values.NewNumber(2), values.NewNumber(3)})
	v, err := run(t, ":arr[1]", map[string]*values.Value{"arr": arr})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.NumberValue())

	v, err = run(t, ":arr[1:]", map[string]*values.Value{"arr": arr})
	require.NoError(t, err)
	assert.Len(t, v.ArrayValue(), 2)
}

func TestIndexOutOfRange(t *testing.T) {
	arr := values.NewArray([]*values.Value{values.NewNumber(1)})
	_, err := run(t, ":arr[5]", map[string]*values.Value{"arr": arr})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.IndexError))
}

func TestCastChain(t *testing.T) {
	v, err := run(t, `"42"::Integer`, nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.NumberValue())
}

func TestSpreadInArrayLiteral(t *testing.T) {
	v, err := run(t, "[1, ...:rest, 4]", map[string]*values.Value{
		"rest": values.NewArray([]*values.Value{values.NewNumber(2), values.NewNumber(3)}),
	})
	require.NoError(t, err)
	got := v.ArrayValue()
	require.Len(t, got, 4)
	assert.Equal(t, 4.0, got[3].NumberValue())
}

func TestUnknownFunctionError(t *testing.T) {
	_, err := run(t, "NOPE(1)", nil)
	require.Error(t, err)
}

func TestPluginResolvesBeforeBuiltin(t *testing.T) {
	reg := runtime.NewRegistry()
	err := reg.Register(&runtime.Descriptor{
		Name: "SUM", MinArgs: 0, MaxArgs: -1,
		Call: func(args []*values.Value) (*values.Value, error) { return values.NewNumber(999), nil },
	})
	require.NoError(t, err)
	expr, err := parser.Parse("SUM(1, 2)")
	require.NoError(t, err)
	ev := New(reg)
	v, err := ev.Evaluate(expr, NewEnvironment(nil))
	require.NoError(t, err)
	assert.Equal(t, 999.0, v.NumberValue())
}
