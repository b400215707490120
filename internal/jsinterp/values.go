// Package jsinterp implements a sandboxed, tree-walking evaluator for the
// subset of JavaScript used by streaming-site player scripts (signature and
// "n-parameter" transforms). It parses nothing into an AST: every construct
// is recognised by splitting a substring on a delimiter at bracket/quote
// depth zero and recursing on the pieces.
package jsinterp

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Kind tags the dynamic type of a runtime Value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
	KindRegExp
	KindDate
	KindFunction
	// KindStaticNamespace tags the handful of built-in class receivers
	// (Math, String, Date, ...) so host-object dispatch can resolve
	// `Math.pow` the same way it resolves `arr.push`. It never escapes to
	// interpreted code as a stored value; it exists only transiently
	// while walking a property chain.
	KindStaticNamespace
)

// String returns a human-readable name for the kind, used by error messages
// and test failure output.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindRegExp:
		return "regexp"
	case KindDate:
		return "date"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the tagged union described by It intentionally avoids
// interface{} payloads so that every conversion site is an exhaustive switch
// on kind rather than a type assertion.
type Value struct {
	kind Kind

	b bool
	n float64
	s string

	arr *arrayData
	obj *objectData
	re  *RegExpValue
	dt  *DateValue
	fn  *FunctionValue
}

type arrayData struct {
	elems []Value // sparse: any Value of KindUndefined is a hole
}

type objectData struct {
	entries map[string]Value
	keys    []string // insertion order
}

// Singletons. Undefined and Null have no payload so they are cheap to
// compare by kind alone; NaN is a distinguished float64 bit pattern.
var (
	Undefined = Value{kind: KindUndefined}
	Null      = Value{kind: KindNull}
)

var nan = math.NaN()

// NaN returns the JavaScript NaN value. Every NaN produced by this package
// carries the same bit pattern, which is enough since NaN is never compared
// by identity, only via IsNaN.
func NaN() Value { return Value{kind: KindNumber, n: nan} }

// Infinity returns +Infinity or -Infinity.
func Infinity(negative bool) Value {
	if negative {
		return Value{kind: KindNumber, n: math.Inf(-1)}
	}
	return Value{kind: KindNumber, n: math.Inf(1)}
}

func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

func String(s string) Value { return Value{kind: KindString, s: s} }

// NewArray returns an array value containing elems (copied).
func NewArray(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, arr: &arrayData{elems: cp}}
}

// NewObject returns an empty, insertion-ordered object value.
func NewObject() Value {
	return Value{kind: KindObject, obj: &objectData{entries: map[string]Value{}}}
}

func RegExp(re *RegExpValue) Value { return Value{kind: KindRegExp, re: re} }

func Date(d *DateValue) Value { return Value{kind: KindDate, dt: d} }

func Func(f *FunctionValue) Value { return Value{kind: KindFunction, fn: f} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsNullish() bool   { return v.kind == KindUndefined || v.kind == KindNull }

// IsNaN reports whether v is the numeric NaN value.
func (v Value) IsNaN() bool { return v.kind == KindNumber && math.IsNaN(v.n) }

func (v Value) Bool() bool { return v.kind == KindBoolean && v.b }

// NumberValue returns the raw float64 payload. Callers must already know v
// is KindNumber; use ToNumber for coercion.
func (v Value) NumberValue() float64 { return v.n }

// StringValue returns the raw string payload. Callers must already know v
// is KindString; use ToString for coercion.
func (v Value) StringValue() string { return v.s }

func (v Value) Array() *arrayData { return v.arr }

func (v Value) Object() *objectData { return v.obj }

func (v Value) RegExpValue() *RegExpValue { return v.re }

func (v Value) DateValue() *DateValue { return v.dt }

func (v Value) FunctionValue() *FunctionValue { return v.fn }

// --- Array ---

// Len returns the array's length, derived from its backing slice per the
// invariant that length is never stored separately.
func (a *arrayData) Len() int { return len(a.elems) }

// Get returns the element at i, or Undefined if i is out of range.
func (a *arrayData) Get(i int) Value {
	if i < 0 || i >= len(a.elems) {
		return Undefined
	}
	return a.elems[i]
}

// Set writes index i, extending (and filling with Undefined) as needed.
// maxElems bounds sparse growth per resource model; it returns
// false if the write would exceed it.
func (a *arrayData) Set(i int, v Value, maxElems int) bool {
	if i < 0 {
		return false
	}
	if i >= maxElems {
		return false
	}
	for len(a.elems) <= i {
		a.elems = append(a.elems, Undefined)
	}
	a.elems[i] = v
	return true
}

func (a *arrayData) Append(v Value) { a.elems = append(a.elems, v) }

func (a *arrayData) Elements() []Value {
	cp := make([]Value, len(a.elems))
	copy(cp, a.elems)
	return cp
}

// --- Object ---

func (o *objectData) Get(key string) Value {
	if v, ok := o.entries[key]; ok {
		return v
	}
	return Undefined
}

func (o *objectData) Set(key string, v Value) {
	if o.entries == nil {
		o.entries = map[string]Value{}
	}
	if _, exists := o.entries[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.entries[key] = v
}

func (o *objectData) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *objectData) Has(key string) bool {
	_, ok := o.entries[key]
	return ok
}

// Dump renders v the way interpreter's JS_Object.dump() does:
// enough to round-trip through a JS literal for regex/date, and through
// JSON for everything else.
func (v Value) Dump() string {
	switch v.kind {
	case KindRegExp:
		return v.re.Dump()
	case KindDate:
		return v.dt.Dump()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v.s)
		}
		return string(b)
	}
}

// MarshalJSON lets host code (the CLI, tests) serialise a Value directly.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindUndefined, KindNull:
		return []byte("null"), nil
	case KindBoolean:
		return json.Marshal(v.b)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.n)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		return json.Marshal(v.arr.elems)
	case KindObject:
		keys := v.obj.Keys()
		sort.Strings(keys) // encoding/json doesn't preserve map order; document it plainly
		m := make(map[string]Value, len(keys))
		for _, k := range keys {
			m[k] = v.obj.entries[k]
		}
		return json.Marshal(m)
	case KindRegExp:
		return json.Marshal(v.re.Dump())
	case KindDate:
		return json.Marshal(v.dt.valueOf())
	case KindFunction:
		return []byte("null"), nil
	default:
		return []byte("null"), nil
	}
}

// FromJSON converts a decoded encoding/json value (the result of
// json.Unmarshal into an any) into a Value, for host-supplied call
// arguments.
func FromJSON(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case string:
		return String(x)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = FromJSON(e)
		}
		return NewArray(elems...)
	case map[string]any:
		o := NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			o.obj.Set(k, FromJSON(x[k]))
		}
		return o
	default:
		return Undefined
	}
}
