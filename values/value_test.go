package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	assert.False(t, NewNull().Truthy())
	assert.False(t, NewBoolean(false).Truthy())
	assert.False(t, NewNumber(0).Truthy())
	assert.False(t, NewString("").Truthy())
	assert.False(t, NewArray(nil).Truthy())
	assert.True(t, NewNumber(1).Truthy())
	assert.True(t, NewString("0x").Truthy())
}

func TestToStringConversions(t *testing.T) {
	assert.Equal(t, "", NewNull().ToString())
	assert.Equal(t, "42", NewNumber(42).ToString())
	assert.Equal(t, "3.5", NewNumber(3.5).ToString())
	assert.Equal(t, "true", NewBoolean(true).ToString())
}

func TestToIntFromString(t *testing.T) {
	assert.Equal(t, int64(42), NewString("42px").ToInt())
	assert.Equal(t, int64(0), NewString("abc").ToInt())
	assert.Equal(t, int64(-7), NewString("-7.9").ToInt())
}

func TestCompareNumericKinds(t *testing.T) {
	c, err := NewNumber(1).Compare(NewBoolean(true))
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	_, err = NewNumber(1).Compare(NewString("x"))
	assert.Error(t, err)
}

func TestAddCoercion(t *testing.T) {
	v, err := Add(NewNumber(1), NewCurrency(2))
	require.NoError(t, err)
	assert.True(t, v.IsCurrency())
	assert.Equal(t, 3.0, v.NumberValue())

	v, err = Add(NewString("a"), NewNumber(1))
	require.NoError(t, err)
	assert.Equal(t, "a1", v.ToString())
}

func TestDivByZero(t *testing.T) {
	_, err := Div(NewNumber(1), NewNumber(0))
	require.Error(t, err)
	assert.True(t, IsDivByZero(err))
}

func TestSortValues(t *testing.T) {
	vs := []*Value{NewNumber(3), NewNumber(1), NewNumber(2)}
	sorted := SortValues(vs, false)
	assert.Equal(t, []float64{1, 2, 3}, []float64{sorted[0].NumberValue(), sorted[1].NumberValue(), sorted[2].NumberValue()})

	desc := SortValues(vs, true)
	assert.Equal(t, []float64{3, 2, 1}, []float64{desc[0].NumberValue(), desc[1].NumberValue(), desc[2].NumberValue()})
}
