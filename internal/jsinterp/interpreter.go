package jsinterp

import "time"

// Interpreter holds a single parsed program and the caches/limits that
// persist across calls into it. It has no AST: Build only
// records the program text; functions and objects are located lazily, by
// regex discovery over ip.code, the first time they're referenced.
type Interpreter struct {
	code    string
	globals *Scope

	functions map[string]*FunctionValue
	objects   map[string]Value

	namedObjCounter int

	onTrace TraceFunc

	maxRecursionDepth int
	deadline          time.Time
}

// Option configures an Interpreter at Build time.
type Option func(*Interpreter)

// WithMaxRecursionDepth bounds the call-stack depth budget.
func WithMaxRecursionDepth(n int) Option {
	return func(ip *Interpreter) { ip.maxRecursionDepth = n }
}

// WithDeadline bounds total wall-clock evaluation time.
func WithDeadline(d time.Time) Option {
	return func(ip *Interpreter) { ip.deadline = d }
}

// WithTrace installs a debug-trace callback, invoked at every statement
// entry.
func WithTrace(fn TraceFunc) Option {
	return func(ip *Interpreter) { ip.onTrace = fn }
}

// WithGlobal pre-binds name in the program's outermost scope, for host
// callbacks and constants a caller wants visible to every function.
func WithGlobal(name string, v Value) Option {
	return func(ip *Interpreter) { ip.globals.Declare(name, v) }
}

// Build parses nothing and records program for lazy function/object
// discovery.
func Build(program string, opts ...Option) (*Interpreter, error) {
	ip := &Interpreter{
		code:              program,
		globals:           NewScope(),
		functions:         map[string]*FunctionValue{},
		objects:           map[string]Value{},
		maxRecursionDepth: 100,
	}
	for _, opt := range opts {
		opt(ip)
	}
	return ip, nil
}

// Call resolves funcname and invokes it with args, extending globals into
// the program's outermost scope first. The recursion/deadline budget is
// created once here and threaded through every nested statement and call
// for the life of this top-level invocation.
func (ip *Interpreter) Call(name string, args []Value, globals map[string]Value) (Value, error) {
	for k, v := range globals {
		ip.globals.Declare(k, v)
	}
	fv, err := ip.ExtractFunction(name)
	if err != nil {
		return Value{}, err
	}
	b := newBudget(ip.maxRecursionDepth, ip.deadline)
	return ip.invoke(fv, Undefined, args, b)
}

// invoke binds fv's parameters in a fresh call frame layered over its
// captured scope and evaluates its body.
// Missing arguments bind to Undefined; extra arguments are ignored; there
// is no `arguments` object.
func (ip *Interpreter) invoke(fv *FunctionValue, this Value, args []Value, b *budget) (Value, error) {
	if fv.native != nil {
		return fv.native(ip, this, args)
	}
	scope := fv.capturedScope.Child()
	for i, p := range fv.params {
		if i < len(args) {
			scope.Declare(p, args[i])
		} else {
			scope.Declare(p, Undefined)
		}
	}
	scope.Declare("this", this)

	v, err := ip.interpretStatement(fv.body, scope, b)
	if err != nil {
		if rs, ok := err.(returnSignal); ok {
			return rs.value, nil
		}
		return Value{}, err
	}
	return v, nil
}
