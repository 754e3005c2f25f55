package jsplugin

import (
	"testing"

	"github.com/skillet-run/skillet/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doubleScript = `
// @name DOUBLE
// @min_args 1
// @max_args 1
function execute(args) {
  return args[0] * 2;
}
`

func TestParseMetadata(t *testing.T) {
	m, err := ParseMetadata(doubleScript)
	require.NoError(t, err)
	assert.Equal(t, "DOUBLE", m.Name)
	assert.Equal(t, 1, m.MinArgs)
	assert.Equal(t, 1, m.MaxArgs)
}

func TestCompileAndInvoke(t *testing.T) {
	d, err := Compile(doubleScript)
	require.NoError(t, err)
	assert.Equal(t, "DOUBLE", d.Name)
	result, err := d.Call([]*values.Value{values.NewNumber(21)})
	require.NoError(t, err)
	assert.Equal(t, 42.0, result.NumberValue())
}

func TestMissingNameHeaderFails(t *testing.T) {
	_, err := ParseMetadata("// @min_args 1\nfunction execute(args) { return 0; }")
	assert.Error(t, err)
}

func TestArrayRoundTrip(t *testing.T) {
	const script = `
// @name SUMJS
function execute(args) {
  var total = 0;
  for (var i = 0; i < args[0].length; i++) total += args[0][i];
  return total;
}
`
	d, err := Compile(script)
	require.NoError(t, err)
	arr := values.NewArray([]*values.Value{values.NewNumber(1), values.NewNumber(2), values.NewNumber(3)})
	result, err := d.Call([]*values.Value{arr})
	require.NoError(t, err)
	assert.Equal(t, 6.0, result.NumberValue())
}
