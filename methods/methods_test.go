package methods

import (
	"testing"

	"github.com/skillet-run/skillet/ast"
	"github.com/skillet-run/skillet/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberPredicateMethods(t *testing.T) {
	fn, isPredicate, ok := Lookup(values.KindNumber, "positive")
	require.True(t, ok)
	assert.True(t, isPredicate)
	v, err := fn(values.NewNumber(5), NewArgs(nil, nil))
	require.NoError(t, err)
	assert.True(t, v.Truthy())
}

func TestStringLength(t *testing.T) {
	fn, isPredicate, ok := Lookup(values.KindString, "length")
	require.True(t, ok)
	assert.False(t, isPredicate)
	v, err := fn(values.NewString("hello"), NewArgs(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, 5.0, v.NumberValue())
}

func TestArrayContains(t *testing.T) {
	fn, _, ok := Lookup(values.KindArray, "contains")
	require.True(t, ok)
	arr := values.NewArray([]*values.Value{values.NewNumber(1), values.NewNumber(2)})
	args := NewArgs([]ast.Expression{ast.NewLiteral(0, values.NewNumber(2))}, func(e ast.Expression) (*values.Value, error) {
		return e.(*ast.Literal).Value, nil
	})
	v, err := fn(arr, args)
	require.NoError(t, err)
	assert.True(t, v.Truthy())
}

func TestUniversalToS(t *testing.T) {
	fn, _, ok := Lookup(values.KindNumber, "to_s")
	require.True(t, ok)
	v, err := fn(values.NewNumber(42), NewArgs(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "42", v.StringValue())
}

func TestUnknownMethodNotFound(t *testing.T) {
	_, _, ok := Lookup(values.KindString, "frobnicate")
	assert.False(t, ok)
}
