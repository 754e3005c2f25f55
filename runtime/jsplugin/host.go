// Package jsplugin compiles and runs Skillet plugin scripts in a
// sandboxed goja VM (spec.md §5.2). A plugin script is a JavaScript
// source file whose leading comment block carries `@name`, `@min_args`,
// and `@max_args` metadata, and which defines a top-level `execute`
// function taking already-evaluated arguments.
package jsplugin

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/dop251/goja"
	"github.com/skillet-run/skillet/errors"
	"github.com/skillet-run/skillet/runtime"
	"github.com/skillet-run/skillet/values"
)

// Metadata is the parsed `@name`/`@min_args`/`@max_args` header block.
type Metadata struct {
	Name    string
	MinArgs int
	MaxArgs int
}

// ParseMetadata reads the leading `//`-comment block of src and
// extracts its `@name`, `@min_args`, and `@max_args` annotations.
func ParseMetadata(src string) (Metadata, error) {
	var m Metadata
	m.MaxArgs = -1
	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "//") {
			break
		}
		body := strings.TrimSpace(strings.TrimPrefix(line, "//"))
		switch {
		case strings.HasPrefix(body, "@name"):
			m.Name = strings.TrimSpace(strings.TrimPrefix(body, "@name"))
		case strings.HasPrefix(body, "@min_args"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(body, "@min_args")))
			if err != nil {
				return m, errors.Newf(errors.PluginError, "invalid @min_args: %s", err)
			}
			m.MinArgs = n
		case strings.HasPrefix(body, "@max_args"):
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(body, "@max_args")))
			if err != nil {
				return m, errors.Newf(errors.PluginError, "invalid @max_args: %s", err)
			}
			m.MaxArgs = n
		}
	}
	if m.Name == "" {
		return m, errors.New(errors.PluginError, "plugin script missing @name header")
	}
	return m, nil
}

// Compile builds a runtime.Descriptor from a JS plugin source. The
// returned descriptor's Call re-creates a fresh goja.Runtime per
// invocation, trading a little throughput for isolation between calls
// (one script's global mutations never leak into the next call).
func Compile(src string) (*runtime.Descriptor, error) {
	meta, err := ParseMetadata(src)
	if err != nil {
		return nil, err
	}
	d := &runtime.Descriptor{
		Name:     meta.Name,
		MinArgs:  meta.MinArgs,
		MaxArgs:  meta.MaxArgs,
		Backend:  runtime.BackendJS,
		JSSource: src,
	}
	d.Call = func(args []*values.Value) (*values.Value, error) {
		return run(src, args)
	}
	return d, nil
}

func run(src string, args []*values.Value) (*values.Value, error) {
	vm := goja.New()
	installHost(vm)

	jsArgs := make([]interface{}, len(args))
	for i, v := range args {
		jsArgs[i] = valueToJS(v)
	}

	if _, err := vm.RunString(src); err != nil {
		return nil, errors.Atf(errors.PluginError, 0, "plugin script error: %s", err.Error())
	}
	executeFn, ok := goja.AssertFunction(vm.Get("execute"))
	if !ok {
		return nil, errors.New(errors.PluginError, "plugin script does not define execute(args)")
	}
	jsArgVals := make([]goja.Value, len(jsArgs))
	for i, a := range jsArgs {
		jsArgVals[i] = vm.ToValue(a)
	}
	result, err := executeFn(goja.Undefined(), jsArgVals...)
	if err != nil {
		return nil, errors.Atf(errors.PluginError, 0, "plugin execution failed: %s", err.Error())
	}
	return jsToValue(result)
}

// installHost exposes httpGet/sqliteQuery/sqliteExec host helpers to
// the plugin sandbox (spec.md §5.2).
func installHost(vm *goja.Runtime) {
	vm.Set("httpGet", hostHTTPGet)
	vm.Set("sqliteQuery", hostSqliteQuery)
	vm.Set("sqliteExec", hostSqliteExec)
}

func valueToJS(v *values.Value) interface{} {
	switch v.Kind() {
	case values.KindNull:
		return nil
	case values.KindBoolean:
		return v.BoolValue()
	case values.KindNumber, values.KindCurrency, values.KindDateTime:
		return v.NumericValue()
	case values.KindString, values.KindJson:
		return v.StringValue()
	case values.KindArray:
		arr := v.ArrayValue()
		out := make([]interface{}, len(arr))
		for i, e := range arr {
			out[i] = valueToJS(e)
		}
		return out
	default:
		return nil
	}
}

func jsToValue(v goja.Value) (*values.Value, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return values.NewNull(), nil
	}
	exported := v.Export()
	return exportedToValue(exported)
}

func exportedToValue(x interface{}) (*values.Value, error) {
	switch t := x.(type) {
	case nil:
		return values.NewNull(), nil
	case bool:
		return values.NewBoolean(t), nil
	case int64:
		return values.NewNumber(float64(t)), nil
	case float64:
		return values.NewNumber(t), nil
	case string:
		return values.NewString(t), nil
	case []interface{}:
		out := make([]*values.Value, len(t))
		for i, e := range t {
			v, err := exportedToValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return values.NewArray(out), nil
	default:
		return nil, errors.Newf(errors.PluginError, "plugin returned unsupported JS type %T", x)
	}
}
