package jsinterp

import (
	"testing"
	"time"
)

// TestEndToEndScenarios runs every literal program/expected-value pair from
// "End-to-end scenarios" directly through Build+Call, the same
// path a player-script extractor would use.
func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name     string
		program  string
		fn       string
		args     []Value
		wantKind Kind
		wantNum  float64
		wantStr  string
	}{
		{
			name:     "square plus one",
			program:  `function f(a){return a*a+1;}`,
			fn:       "f",
			args:     []Value{Number(5)},
			wantKind: KindNumber,
			wantNum:  26,
		},
		{
			name:     "reverse via split/join",
			program:  `function g(s){var r=s.split("").reverse().join("");return r;}`,
			fn:       "g",
			args:     []Value{String("abc")},
			wantKind: KindString,
			wantStr:  "cba",
		},
		{
			name:     "positive modulo",
			program:  `function h(x){return (x%10+10)%10;}`,
			fn:       "h",
			args:     []Value{Number(-3)},
			wantKind: KindNumber,
			wantNum:  7,
		},
		{
			name:     "object literal method with ternary",
			program:  `var o={k:function(a,b){return a<b?b-a:a-b;}};`,
			fn:       "o.k",
			args:     []Value{Number(2), Number(9)},
			wantKind: KindNumber,
			wantNum:  7,
		},
		{
			name:     "throw caught and turned into a return",
			program:  `function z(){try{throw 42}catch(e){return e+1}}`,
			fn:       "z",
			args:     nil,
			wantKind: KindNumber,
			wantNum:  43,
		},
		{
			name:     "for loop accumulation",
			program:  `function p(a){for(var i=0,s=0;i<a.length;i++)s+=a[i];return s;}`,
			fn:       "p",
			args:     []Value{NewArray(Number(1), Number(2), Number(3), Number(4))},
			wantKind: KindNumber,
			wantNum:  10,
		},
		{
			name:     "regexp group replace",
			program:  `function q(){var r=/a(b+)/; return "xabbbc".replace(r,"Z$1")}`,
			fn:       "q",
			args:     nil,
			wantKind: KindString,
			wantStr:  "xZbbbc",
		},
		{
			name:     "n-param style modular index",
			program:  `function n(d,e){return (d%e.length+e.length)%e.length;}`,
			fn:       "n",
			args:     []Value{Number(-1), NewArray(Number(10), Number(20), Number(30), Number(40))},
			wantKind: KindNumber,
			wantNum:  3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ip, err := Build(tc.program)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			got, err := ip.Call(tc.fn, tc.args, nil)
			if err != nil {
				t.Fatalf("Call(%s): %v", tc.fn, err)
			}
			if got.Kind() != tc.wantKind {
				t.Fatalf("kind = %v, want %v", got.Kind(), tc.wantKind)
			}
			switch tc.wantKind {
			case KindNumber:
				if got.NumberValue() != tc.wantNum {
					t.Fatalf("value = %v, want %v", got.NumberValue(), tc.wantNum)
				}
			case KindString:
				if got.StringValue() != tc.wantStr {
					t.Fatalf("value = %q, want %q", got.StringValue(), tc.wantStr)
				}
			}
		})
	}
}

// TestExtractFunctionReuse exercises the reusable-closure operation named
// in ("extract_function(name) -> Callable"): the same resolved
// FunctionValue is invoked twice with different arguments.
func TestExtractFunctionReuse(t *testing.T) {
	ip, err := Build(`function sq(x){return x*x;}`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fv, err := ip.ExtractFunction("sq")
	if err != nil {
		t.Fatalf("ExtractFunction: %v", err)
	}

	b := newBudget(100, time.Time{})
	got1, err := ip.invoke(fv, Undefined, []Value{Number(3)}, b)
	if err != nil {
		t.Fatalf("invoke(3): %v", err)
	}
	if got1.NumberValue() != 9 {
		t.Fatalf("sq(3) = %v, want 9", got1.NumberValue())
	}

	got2, err := ip.invoke(fv, Undefined, []Value{Number(4)}, b)
	if err != nil {
		t.Fatalf("invoke(4): %v", err)
	}
	if got2.NumberValue() != 16 {
		t.Fatalf("sq(4) = %v, want 16", got2.NumberValue())
	}
}

// TestSharedGlobalWriteThrough checks that two top-level
// functions that both close over the same pre-declared global observe
// each other's writes, because Scope.Set rewrites the scope that already
// defines a name rather than shadowing it
// in the caller's own frame.
func TestSharedGlobalWriteThrough(t *testing.T) {
	ip, err := Build(`
		function setN(v){ n = v; }
		function bump(){ n = n + 1; return n; }
	`, WithGlobal("n", Number(0)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := ip.Call("setN", []Value{Number(10)}, nil); err != nil {
		t.Fatalf("Call(setN): %v", err)
	}
	got, err := ip.Call("bump", nil, nil)
	if err != nil {
		t.Fatalf("Call(bump): %v", err)
	}
	if got.NumberValue() != 11 {
		t.Fatalf("bump() = %v, want 11 (setN's write should be visible)", got.NumberValue())
	}
}
