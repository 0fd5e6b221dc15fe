// Package starlark runs binding scripts. A script computes template
// variables in Starlark, its exported globals become the render context.
package starlark

import (
	"fmt"
	"os"
	"strings"

	"go.starlark.net/starlark"

	"github.com/nanojinja/nanojinja/pkg/jinja"
)

// Evaluator holds a Starlark thread together with the builtins and globals
// visible to binding scripts.
type Evaluator struct {
	thread   *starlark.Thread
	builtins starlark.StringDict
	globals  starlark.StringDict
}

// NewEvaluator creates an evaluator with the standard builtins.
func NewEvaluator() *Evaluator {
	thread := &starlark.Thread{Name: "nanojinja"}

	return &Evaluator{
		thread:   thread,
		builtins: createBuiltins(),
		globals:  make(starlark.StringDict),
	}
}

func createBuiltins() starlark.StringDict {
	return starlark.StringDict{
		"print": starlark.NewBuiltin("print", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var buf []string
			for i := 0; i < len(args); i++ {
				buf = append(buf, args[i].String())
			}
			fmt.Fprintln(os.Stderr, strings.Join(buf, " "))
			return starlark.None, nil
		}),

		"env": starlark.NewBuiltin("env", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var name string
			var fallback string
			if err := starlark.UnpackArgs("env", args, kwargs, "name", &name, "default?", &fallback); err != nil {
				return starlark.None, err
			}
			if v, ok := os.LookupEnv(name); ok {
				return starlark.String(v), nil
			}
			return starlark.String(fallback), nil
		}),
	}
}

// SetGlobal seeds a global variable visible to the script.
func (e *Evaluator) SetGlobal(name string, value jinja.Value) {
	e.globals[name] = ConvertToStarlark(value)
}

// LoadContext seeds all bindings from ctx as script globals.
func (e *Evaluator) LoadContext(ctx jinja.Context) {
	for name, value := range ctx {
		e.SetGlobal(name, value)
	}
}

// ExecFile executes a Starlark script. src may be nil to read from the
// named file, or a string or byte slice holding the source. Globals the
// script defines are retained for export.
func (e *Evaluator) ExecFile(filename string, src interface{}) error {
	predeclared := make(starlark.StringDict)
	for k, v := range e.builtins {
		predeclared[k] = v
	}
	for k, v := range e.globals {
		predeclared[k] = v
	}

	globals, err := starlark.ExecFile(e.thread, filename, src, predeclared)
	if err != nil {
		return fmt.Errorf("starlark execution error: %w", err)
	}

	for k, v := range globals {
		e.globals[k] = v
	}
	return nil
}

// ExecSource executes a Starlark script held in a string.
func (e *Evaluator) ExecSource(script string) error {
	return e.ExecFile("<script>", script)
}

// Bindings exports the script's globals as a render context. Names starting
// with an underscore are private to the script and skipped, as are
// functions, except that a function named context is called with no
// arguments and must return a dict of scalars that is merged last.
func (e *Evaluator) Bindings() (jinja.Context, error) {
	ctx := jinja.Context{}
	for name, value := range e.globals {
		if !isExportableName(name) {
			continue
		}
		if _, ok := value.(starlark.Callable); ok {
			continue
		}
		v, err := ConvertFromStarlark(value)
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", name, err)
		}
		ctx[name] = v
	}

	fn, ok := e.globals["context"].(starlark.Callable)
	if !ok {
		return ctx, nil
	}
	result, err := starlark.Call(e.thread, fn, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("calling context(): %w", err)
	}
	dict, ok := result.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("context() must return a dict, got %s", result.Type())
	}
	for _, item := range dict.Items() {
		key, ok := item[0].(starlark.String)
		if !ok {
			return nil, fmt.Errorf("context() key %s is not a string", item[0].String())
		}
		if !jinja.IsIdentifier(string(key)) {
			return nil, fmt.Errorf("context() key %q is not a valid identifier", string(key))
		}
		v, err := ConvertFromStarlark(item[1])
		if err != nil {
			return nil, fmt.Errorf("context() value for %q: %w", string(key), err)
		}
		ctx[string(key)] = v
	}
	return ctx, nil
}

func isExportableName(name string) bool {
	return name != "" && name[0] != '_'
}
