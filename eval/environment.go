// Package eval implements the tree-walking evaluator that turns an
// ast.Expression plus a variable Environment into a values.Value,
// per spec.md §4.4.
package eval

import "github.com/skillet-run/skillet/values"

// Environment binds variable names to Values for one evaluation. It is
// copy-on-write: child scopes created for lambda bodies (spec.md §4.5)
// share the parent's bindings until they write one of their own, so a
// lambda never leaks assignments back into its enclosing scope.
type Environment struct {
	vars   map[string]*values.Value
	parent *Environment
}

// NewEnvironment creates a root Environment seeded with vars. The map
// is not retained: callers may keep mutating their own copy afterward.
func NewEnvironment(vars map[string]*values.Value) *Environment {
	cp := make(map[string]*values.Value, len(vars))
	for k, v := range vars {
		cp[k] = v
	}
	return &Environment{vars: cp}
}

// Child creates a nested scope used for lambda-body evaluation. Writes
// via Set land in the child's own map, never the parent's.
func (e *Environment) Child() *Environment {
	return &Environment{vars: map[string]*values.Value{}, parent: e}
}

// Get looks up name, walking outward through parent scopes.
func (e *Environment) Get(name string) (*values.Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name to v in this scope (not a parent's), implementing
// spec.md §4.4's assignment semantics: `:x := expr` introduces or
// overwrites `x` in the scope the assignment executes in.
func (e *Environment) Set(name string, v *values.Value) {
	e.vars[name] = v
}
