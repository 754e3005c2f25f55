package cache

import (
	"testing"
	"time"

	"github.com/skillet-run/skillet/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsOrderIndependentOverArgs(t *testing.T) {
	a1 := map[string]*values.Value{"b": values.NewNumber(2), "a": values.NewNumber(1)}
	a2 := map[string]*values.Value{"a": values.NewNumber(1), "b": values.NewNumber(2)}
	assert.Equal(t, Key("SUM(:a,:b)", a1), Key("SUM(:a,:b)", a2))
}

func TestGetPutHitMiss(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	key := Key("1+1", nil)
	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Put(key, values.NewNumber(2), 10*time.Millisecond)
	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, 2.0, v.NumberValue())

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Greater(t, stats.TimeSavedNs, int64(0))
}

func TestEvictionTracked(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)
	c.Put(Key("a", nil), values.NewNumber(1), time.Millisecond)
	c.Put(Key("b", nil), values.NewNumber(2), time.Millisecond)
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestClear(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)
	c.Put(Key("a", nil), values.NewNumber(1), time.Millisecond)
	c.Clear()
	assert.Equal(t, 0, c.Len())
}
