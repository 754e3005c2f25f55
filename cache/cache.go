// Package cache implements Skillet's bounded result cache (spec.md
// §5.3): a fixed-capacity LRU keyed by the SHA-256 digest of the
// canonical-JSON serialization of (expression text, arguments), backed
// by hashicorp/golang-lru.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/skillet-run/skillet/values"
)

// Stats reports cumulative cache activity.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TimeSavedNs int64
}

type entry struct {
	value       *values.Value
	evalCostNs  int64
}

// Cache wraps a size-bounded LRU of expression results.
type Cache struct {
	lru *lru.Cache[string, entry]

	hits, misses, evictions int64
	timeSavedNs              int64
}

// New creates a Cache holding up to capacity entries.
func New(capacity int) (*Cache, error) {
	c := &Cache{}
	inner, err := lru.NewWithEvict[string, entry](capacity, func(string, entry) {
		atomic.AddInt64(&c.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = inner
	return c, nil
}

// Key canonically serializes an expression's text plus its bound
// arguments and returns the hex SHA-256 digest of that serialization as
// the cache key. Map keys are sorted before marshaling so the same
// argument set always yields the same key regardless of the
// caller-supplied map iteration order.
func Key(exprText string, args map[string]*values.Value) string {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)

	ordered := make([]keyedArg, len(names))
	for i, name := range names {
		ordered[i] = keyedArg{Name: name, Value: args[name].ToJSON()}
	}
	payload := struct {
		Expr string     `json:"expr"`
		Args []keyedArg `json:"args"`
	}{Expr: exprText, Args: ordered}

	b, err := json.Marshal(payload)
	if err != nil {
		// json.Marshal only fails on unsupported types, which this
		// payload never contains; fall back to the raw expression text
		// so a cache key always exists rather than panicking.
		return exprText
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

type keyedArg struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Get looks up key, recording a hit or miss. A hit accrues the
// original evaluation's cost to the time-saved counter, since that
// cost was avoided.
func (c *Cache) Get(key string) (*values.Value, bool) {
	e, ok := c.lru.Get(key)
	if ok {
		atomic.AddInt64(&c.hits, 1)
		atomic.AddInt64(&c.timeSavedNs, e.evalCostNs)
		return e.value, true
	}
	atomic.AddInt64(&c.misses, 1)
	return nil, false
}

// Put inserts key/value, recording how long this evaluation took so a
// later hit can credit the time it saved.
func (c *Cache) Put(key string, v *values.Value, elapsed time.Duration) {
	c.lru.Add(key, entry{value: v, evalCostNs: elapsed.Nanoseconds()})
}

// Clear empties the cache without resetting its cumulative stats.
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Stats returns a snapshot of cumulative cache activity.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:        atomic.LoadInt64(&c.hits),
		Misses:      atomic.LoadInt64(&c.misses),
		Evictions:   atomic.LoadInt64(&c.evictions),
		TimeSavedNs: atomic.LoadInt64(&c.timeSavedNs),
	}
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int { return c.lru.Len() }
