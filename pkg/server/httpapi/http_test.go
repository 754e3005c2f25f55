package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillet-run/skillet/cache"
	"github.com/skillet-run/skillet/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	plugins []string
}

func (f *fakeEngine) EvaluateText(ctx context.Context, expression string, args map[string]interface{}) (interface{}, bool, error) {
	if expression == "" {
		return nil, false, assert.AnError
	}
	return 42.0, false, nil
}

func (f *fakeEngine) RegisterPlugin(d *runtime.Descriptor) error { return nil }
func (f *fakeEngine) RegisterJSPlugin(src string) error {
	f.plugins = append(f.plugins, src)
	return nil
}
func (f *fakeEngine) UnregisterPlugin(name string) {}
func (f *fakeEngine) ListPlugins() []string         { return f.plugins }
func (f *fakeEngine) CacheStats() cache.Stats        { return cache.Stats{Hits: 3, Misses: 1} }

func TestHealthEndpoint(t *testing.T) {
	h := New(&fakeEngine{}, "")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(3), resp.CacheHits)
}

func TestEvalEndpointGet(t *testing.T) {
	h := New(&fakeEngine{}, "")
	req := httptest.NewRequest(http.MethodGet, "/eval?expression=1+1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp evalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 42.0, resp.Result)
}

func TestPluginsEndpointRequiresAuth(t *testing.T) {
	h := New(&fakeEngine{}, "secret")
	req := httptest.NewRequest(http.MethodGet, "/plugins", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/plugins", nil)
	req2.Header.Set("Authorization", "Bearer secret")
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusOK, rec2.Code)
}

func TestRegisterPluginEndpoint(t *testing.T) {
	eng := &fakeEngine{}
	h := New(eng, "")
	body := strings.NewReader(`{"name":"DOUBLE","source":"// @name DOUBLE\n"}`)
	req := httptest.NewRequest(http.MethodPost, "/plugins", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, eng.plugins, 1)
}
