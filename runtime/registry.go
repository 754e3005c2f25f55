// Package runtime implements Skillet's plugin registry: a
// RWMutex-guarded descriptor map supporting atomic register/deregister
// of native or JS-backed functions (spec.md §5), grounded on the
// teacher's RuntimeRegistry descriptor-map shape.
package runtime

import (
	"sync"

	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/values"
)

// Backend is the kind of handler a Descriptor wraps.
type Backend int

const (
	BackendNative Backend = iota
	BackendJS
)

// NativeFunc is a plugin implemented directly in Go.
type NativeFunc func(args []*values.Value) (*values.Value, error)

// Descriptor describes one registered plugin. Plugins operate only on
// already-evaluated values — unlike stdlib builtins, they never see
// lambda subexpressions.
type Descriptor struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 = variadic
	Backend Backend
	Native  NativeFunc
	// JSSource holds the plugin's script body when Backend is
	// BackendJS; runtime/jsplugin owns compiling and invoking it.
	JSSource string
	Call     NativeFunc // resolved invocation, set regardless of backend
}

// Registry is the unified plugin registration table. Zero value is not
// usable; use NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]*Descriptor)}
}

// Register adds or replaces a plugin descriptor, atomically.
func (r *Registry) Register(d *Descriptor) error {
	if d.Name == "" {
		return errors.New(errors.PluginError, "plugin descriptor missing name")
	}
	if d.Call == nil {
		return errors.Newf(errors.PluginError, "plugin %q has no resolved Call handler", d.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[d.Name] = d
	return nil
}

// Deregister removes a plugin by name. It is not an error to
// deregister a name that was never registered.
func (r *Registry) Deregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plugins, name)
}

// Lookup finds a plugin by exact name (plugin names are not aliased
// the way builtin names are).
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.plugins[name]
	return d, ok
}

// List returns every registered plugin name, for admin endpoints.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	return names
}

// Invoke validates arity and calls d.Call.
func (r *Registry) Invoke(name string, args []*values.Value) (*values.Value, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.PluginError, "plugin %q is not registered", name)
	}
	if len(args) < d.MinArgs || (d.MaxArgs >= 0 && len(args) > d.MaxArgs) {
		return nil, errors.Newf(errors.ArityError, "plugin %q expects %d-%d arguments, got %d", name, d.MinArgs, d.MaxArgs, len(args))
	}
	return d.Call(args)
}
