// Package skillet is the public facade wiring the lexer/parser,
// evaluator, builtin catalog, plugin registry, and result cache into a
// single embeddable engine, grounded on the teacher's top-level
// `compiler` package, which plays the same wiring role for its own
// lexer/parser/codegen pipeline.
package skillet

import (
	"context"
	"time"

	"github.com/skillet-run/skillet/ast"
	"github.com/skillet-run/skillet/cache"
	"github.com/skillet-run/skillet/config"
	"github.com/skillet-run/skillet/eval"
	"github.com/skillet-run/skillet/parser"
	"github.com/skillet-run/skillet/runtime"
	"github.com/skillet-run/skillet/runtime/jsplugin"
	"github.com/skillet-run/skillet/values"
)

// Parse parses src into an expression AST without evaluating it.
func Parse(src string) (ast.Expression, error) {
	return parser.Parse(src)
}

// Engine bundles everything needed to evaluate Skillet expressions:
// the plugin registry, result cache, and evaluator.
type Engine struct {
	cfg      *config.Config
	plugins  *runtime.Registry
	cache    *cache.Cache
	evalr    *eval.Evaluator
}

// New builds an Engine from cfg. A nil cfg uses config.Default().
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	plugins := runtime.NewRegistry()

	var c *cache.Cache
	if cfg.CacheEnabled {
		var err error
		c, err = cache.New(cfg.CacheCapacity)
		if err != nil {
			return nil, err
		}
	}

	return &Engine{
		cfg:     cfg,
		plugins: plugins,
		cache:   c,
		evalr:   eval.New(plugins),
	}, nil
}

// Evaluate parses and evaluates src against vars.
func (e *Engine) Evaluate(expression string, vars map[string]*values.Value) (*values.Value, error) {
	expr, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	return e.EvaluateAST(expr, vars)
}

// EvaluateAST evaluates an already-parsed expression against vars.
func (e *Engine) EvaluateAST(expr ast.Expression, vars map[string]*values.Value) (*values.Value, error) {
	env := eval.NewEnvironment(vars)
	return e.evalr.Evaluate(expr, env)
}

// EvaluateText evaluates expression against a map of native Go
// argument values, consulting and populating the result cache, and
// returns a JSON-marshalable native result. It implements
// pkg/server.Evaluator so the TCP and HTTP front ends share one code
// path.
func (e *Engine) EvaluateText(ctx context.Context, expression string, rawArgs map[string]interface{}) (interface{}, bool, error) {
	vars := make(map[string]*values.Value, len(rawArgs))
	for k, v := range rawArgs {
		val, err := FromNative(v)
		if err != nil {
			return nil, false, err
		}
		vars[k] = val
	}

	var key string
	if e.cache != nil {
		key = cache.Key(expression, vars)
		if cached, ok := e.cache.Get(key); ok {
			return ToNative(cached), true, nil
		}
	}

	start := time.Now()
	result, err := e.Evaluate(expression, vars)
	if err != nil {
		return nil, false, err
	}
	elapsed := time.Since(start)

	if e.cache != nil {
		e.cache.Put(key, result, elapsed)
	}
	return ToNative(result), false, nil
}

// RegisterPlugin adds or replaces a plugin descriptor.
func (e *Engine) RegisterPlugin(d *runtime.Descriptor) error {
	return e.plugins.Register(d)
}

// RegisterJSPlugin compiles a goja-backed plugin script and registers it.
func (e *Engine) RegisterJSPlugin(src string) error {
	d, err := jsplugin.Compile(src)
	if err != nil {
		return err
	}
	return e.plugins.Register(d)
}

// UnregisterPlugin removes a plugin by name, if present.
func (e *Engine) UnregisterPlugin(name string) {
	e.plugins.Deregister(name)
}

// ListPlugins returns the names of all registered plugins.
func (e *Engine) ListPlugins() []string {
	return e.plugins.List()
}

// CacheStats reports cumulative cache activity. Zero-valued if the
// cache is disabled.
func (e *Engine) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// ClearCache empties the result cache without resetting its stats.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}
