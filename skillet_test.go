package skillet

import (
	"context"
	"testing"

	"github.com/skillet-run/skillet/config"
	"github.com/skillet-run/skillet/runtime"
	"github.com/skillet-run/skillet/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineEvaluateBasic(t *testing.T) {
	e, err := New(config.Default())
	require.NoError(t, err)

	v, err := e.Evaluate("1 + 2 * 3", nil)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v.NumberValue())
}

func TestEngineEvaluateTextCachesResult(t *testing.T) {
	e, err := New(config.Default())
	require.NoError(t, err)

	result, hit, err := e.EvaluateText(context.Background(), ":x * 2", map[string]interface{}{"x": 21.0})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42.0, result)

	result2, hit2, err := e.EvaluateText(context.Background(), ":x * 2", map[string]interface{}{"x": 21.0})
	require.NoError(t, err)
	assert.True(t, hit2)
	assert.Equal(t, 42.0, result2)
}

func TestEnginePluginLifecycle(t *testing.T) {
	e, err := New(config.Default())
	require.NoError(t, err)

	err = e.RegisterPlugin(&runtime.Descriptor{
		Name: "DOUBLEIT", MinArgs: 1, MaxArgs: 1,
		Call: func(args []*values.Value) (*values.Value, error) {
			return values.NewNumber(args[0].NumberValue() * 2), nil
		},
	})
	require.NoError(t, err)
	assert.Contains(t, e.ListPlugins(), "DOUBLEIT")

	v, err := e.Evaluate("DOUBLEIT(21)", nil)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.NumberValue())

	e.UnregisterPlugin("DOUBLEIT")
	assert.NotContains(t, e.ListPlugins(), "DOUBLEIT")
}

func TestFromNativeAndToNativeRoundTripArray(t *testing.T) {
	v, err := FromNative([]interface{}{1.0, "two", true, nil})
	require.NoError(t, err)
	require.True(t, v.IsArray())

	native := ToNative(v)
	assert.Equal(t, []interface{}{1.0, "two", true, nil}, native)
}
