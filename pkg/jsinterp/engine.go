// Package jsinterp is the embeddable public surface over
// internal/jsinterp: a functional-options Engine built once per program,
// exposing only the Value tagged union and the build/call/extract
// operations a host needs.
package jsinterp

import (
	"encoding/json"
	"time"

	"github.com/connormason/youtube-dl/internal/jsinterp"
)

// Value is the tagged union interpreted programs exchange with the host.
// It is a type alias so callers never need to import internal/jsinterp
// directly.
type Value = jsinterp.Value

// Error is the structured runtime error the engine can return.
type Error = jsinterp.Error

var (
	Undefined = jsinterp.Undefined
	Null      = jsinterp.Null
)

func NaN() Value             { return jsinterp.NaN() }
func Bool(b bool) Value      { return jsinterp.Bool(b) }
func Number(n float64) Value { return jsinterp.Number(n) }
func String(s string) Value  { return jsinterp.String(s) }

// FromJSON converts a decoded encoding/json value into a Value, for
// building call arguments from a CLI --args blob or any host JSON source.
func FromJSON(v any) Value { return jsinterp.FromJSON(v) }

// Option configures an Engine at Build time.
type Option func(*[]jsinterp.Option)

func apply(o Option, opts *[]jsinterp.Option) { o(opts) }

// WithMaxRecursionDepth bounds the call-stack depth budget (default 100).
func WithMaxRecursionDepth(n int) Option {
	return func(opts *[]jsinterp.Option) {
		*opts = append(*opts, jsinterp.WithMaxRecursionDepth(n))
	}
}

// WithDeadline bounds total wall-clock evaluation time.
func WithDeadline(d time.Time) Option {
	return func(opts *[]jsinterp.Option) {
		*opts = append(*opts, jsinterp.WithDeadline(d))
	}
}

// WithTrace installs a debug-trace callback invoked at every statement
// entry.
func WithTrace(fn func(depth int, message string)) Option {
	return func(opts *[]jsinterp.Option) {
		*opts = append(*opts, jsinterp.WithTrace(jsinterp.TraceFunc(fn)))
	}
}

// WithGlobal pre-binds name to v in the program's outermost scope.
func WithGlobal(name string, v Value) Option {
	return func(opts *[]jsinterp.Option) {
		*opts = append(*opts, jsinterp.WithGlobal(name, v))
	}
}

// Engine wraps a single built program and the limits it was constructed
// with.
type Engine struct {
	ip *jsinterp.Interpreter
}

// Build parses nothing eagerly: it records program text for lazy
// function/object discovery, the same laziness internal/jsinterp.Build
// uses.
func Build(program string, opts ...Option) (*Engine, error) {
	var native []jsinterp.Option
	for _, o := range opts {
		apply(o, &native)
	}
	ip, err := jsinterp.Build(program, native...)
	if err != nil {
		return nil, err
	}
	return &Engine{ip: ip}, nil
}

// Call resolves functionName and invokes it with args, merging globals
// into the program's outermost scope first.
func (e *Engine) Call(functionName string, args []Value, globals map[string]Value) (Value, error) {
	v, err := e.ip.Call(functionName, args, globals)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

// CallJSON is a convenience wrapper for host callers that already have
// JSON-encoded arguments (e.g. the CLI's --args flag): it decodes argsJSON
// as a JSON array, converts each element to a Value, and calls through.
func (e *Engine) CallJSON(functionName string, argsJSON []byte, globals map[string]Value) (Value, error) {
	var decoded []any
	if len(argsJSON) > 0 {
		if err := json.Unmarshal(argsJSON, &decoded); err != nil {
			return Value{}, err
		}
	}
	args := make([]Value, len(decoded))
	for i, d := range decoded {
		args[i] = FromJSON(d)
	}
	return e.Call(functionName, args, globals)
}

// Callable is a reusable handle to a named function, returned by
// ExtractFunction.
type Callable struct {
	engine *Engine
	name   string
}

// ExtractFunction resolves name once (erroring if it cannot be found) and
// returns a Callable that can be invoked repeatedly without re-resolving.
func (e *Engine) ExtractFunction(name string) (*Callable, error) {
	if _, err := e.ip.ExtractFunction(name); err != nil {
		return nil, err
	}
	return &Callable{engine: e, name: name}, nil
}

// Call invokes the closure this Callable was extracted for.
func (c *Callable) Call(args []Value, globals map[string]Value) (Value, error) {
	return c.engine.Call(c.name, args, globals)
}
