// Package httpapi exposes Skillet's engine over HTTP: health/status,
// expression evaluation, and plugin administration endpoints,
// grounded on the teacher's StatusHandler (pkg/fpm/status/status.go)
// for the shape of a JSON status payload built from pool/cache stats.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/skillet-run/skillet/cache"
	"github.com/skillet-run/skillet/runtime"
)

// Engine is the subset of skillet.Engine the HTTP API depends on.
type Engine interface {
	EvaluateText(ctx context.Context, expression string, args map[string]interface{}) (interface{}, bool, error)
	RegisterPlugin(d *runtime.Descriptor) error
	RegisterJSPlugin(src string) error
	UnregisterPlugin(name string)
	ListPlugins() []string
	CacheStats() cache.Stats
}

// Handler wires an Engine into an http.Handler implementing Skillet's
// HTTP surface.
type Handler struct {
	engine     Engine
	authToken  string
	startTime  time.Time
	mux        *http.ServeMux
}

// New builds a Handler. authToken, if non-empty, is required as a
// bearer token on the admin plugin endpoints.
func New(engine Engine, authToken string) *Handler {
	h := &Handler{engine: engine, authToken: authToken, startTime: time.Now(), mux: http.NewServeMux()}
	h.mux.HandleFunc("/health", h.handleHealth)
	h.mux.HandleFunc("/eval", h.handleEval)
	h.mux.HandleFunc("/plugins", h.handlePlugins)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type statusResponse struct {
	Status       string `json:"status"`
	UptimeSec    int64  `json:"uptime_seconds"`
	CacheHits    int64  `json:"cache_hits"`
	CacheMisses  int64  `json:"cache_misses"`
	CacheEntries string `json:"cache_time_saved"`
	Plugins      int    `json:"plugins_registered"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.CacheStats()
	resp := statusResponse{
		Status:       "ok",
		UptimeSec:    int64(time.Since(h.startTime).Seconds()),
		CacheHits:    stats.Hits,
		CacheMisses:  stats.Misses,
		CacheEntries: humanize.Comma(stats.TimeSavedNs / int64(time.Millisecond)) + "ms saved",
		Plugins:      len(h.engine.ListPlugins()),
	}
	writeJSON(w, http.StatusOK, resp)
}

type evalRequest struct {
	Expression string                 `json:"expression"`
	Args       map[string]interface{} `json:"args"`
}

type evalResponse struct {
	Result   interface{} `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`
	CacheHit bool        `json:"cache_hit"`
}

func (h *Handler) handleEval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest

	switch r.Method {
	case http.MethodGet:
		req.Expression = r.URL.Query().Get("expression")
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, evalResponse{Error: "malformed request body: " + err.Error()})
			return
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, hit, err := h.engine.EvaluateText(r.Context(), req.Expression, req.Args)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, evalResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, evalResponse{Result: result, CacheHit: hit})
}

type pluginRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (h *Handler) handlePlugins(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"plugins": h.engine.ListPlugins()})
	case http.MethodPost:
		var req pluginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err := h.engine.RegisterJSPlugin(req.Source); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusCreated)
	case http.MethodDelete:
		name := r.URL.Query().Get("name")
		h.engine.UnregisterPlugin(name)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.authToken == "" {
		return true
	}
	got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return got == h.authToken
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
