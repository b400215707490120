package jsinterp

import (
	"testing"
	"time"
)

func runCall(t *testing.T, program, fn string, args ...Value) Value {
	t.Helper()
	ip, err := Build(program)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	v, err := ip.Call(fn, args, nil)
	if err != nil {
		t.Fatalf("Call(%s): %v", fn, err)
	}
	return v
}

func TestIfElseIfChain(t *testing.T) {
	program := `function f(x){
		if (x < 0) { return "neg"; }
		else if (x === 0) { return "zero"; }
		else { return "pos"; }
	}`
	cases := []struct {
		x    float64
		want string
	}{
		{-1, "neg"},
		{0, "zero"},
		{5, "pos"},
	}
	for _, c := range cases {
		got := runCall(t, program, "f", Number(c.x))
		if got.StringValue() != c.want {
			t.Errorf("f(%v) = %q, want %q", c.x, got.StringValue(), c.want)
		}
	}
}

func TestTryCatchFinally(t *testing.T) {
	program := `function f(){
		var log = "";
		try {
			log = log + "T";
			throw "boom";
		} catch (e) {
			log = log + "C" + e;
		} finally {
			log = log + "F";
		}
		return log;
	}`
	got := runCall(t, program, "f")
	if got.StringValue() != "TCboomF" {
		t.Errorf("f() = %q, want %q", got.StringValue(), "TCboomF")
	}
}

func TestFinallyRunsWithoutException(t *testing.T) {
	program := `function f(){
		var log = "";
		try { log = log + "T"; } finally { log = log + "F"; }
		return log;
	}`
	got := runCall(t, program, "f")
	if got.StringValue() != "TF" {
		t.Errorf("f() = %q, want %q", got.StringValue(), "TF")
	}
}

func TestUncaughtThrowPropagatesAsError(t *testing.T) {
	ip, err := Build(`function f(){ throw "boom"; }`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = ip.Call("f", nil, nil)
	if err == nil {
		t.Fatalf("expected an error")
	}
	jerr, ok := err.(*Error)
	if !ok || jerr.Kind != KindUserThrown {
		t.Fatalf("got %v, want a UserThrown error", err)
	}
}

func TestForLoopBreakAndContinue(t *testing.T) {
	program := `function f(){
		var sum = 0;
		for (var i = 0; i < 10; i++) {
			if (i === 5) { break; }
			if (i % 2 === 0) { continue; }
			sum += i;
		}
		return sum;
	}`
	// i runs 0..4, odd ones are 1,3 -> sum = 4
	got := runCall(t, program, "f")
	if got.NumberValue() != 4 {
		t.Errorf("f() = %v, want 4", got.NumberValue())
	}
}

func TestWhileLoop(t *testing.T) {
	program := `function f(n){
		var i = 0, total = 0;
		while (i < n) { total = total + i; i++; }
		return total;
	}`
	got := runCall(t, program, "f", Number(5))
	if got.NumberValue() != 10 {
		t.Errorf("f(5) = %v, want 10", got.NumberValue())
	}
}

func TestSwitchFallThroughAndBreak(t *testing.T) {
	program := `function f(x){
		var out = "";
		switch (x) {
			case 1:
				out += "a";
			case 2:
				out += "b";
				break;
			case 3:
				out += "c";
				break;
			default:
				out += "d";
		}
		return out;
	}`
	cases := []struct {
		x    float64
		want string
	}{
		{1, "ab"}, // falls through 1 -> 2, then breaks
		{2, "b"},
		{3, "c"},
		{9, "d"},
	}
	for _, c := range cases {
		got := runCall(t, program, "f", Number(c.x))
		if got.StringValue() != c.want {
			t.Errorf("f(%v) = %q, want %q", c.x, got.StringValue(), c.want)
		}
	}
}

func TestNestedFunctionClosureOverLoopVariable(t *testing.T) {
	// A returned inner function sees updates its creator made to a
	// shared variable before the call site.
	program := `
		var counter = 0;
		function make(){
			return function(){ counter = counter + 1; return counter; };
		}
	`
	ip, err := Build(program)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	inner, err := ip.Call("make", nil, nil)
	if err != nil {
		t.Fatalf("Call(make): %v", err)
	}
	if inner.Kind() != KindFunction {
		t.Fatalf("make() returned kind %v, want function", inner.Kind())
	}
	b := newBudget(100, time.Time{})
	got1, err := ip.invoke(inner.FunctionValue(), Undefined, nil, b)
	if err != nil {
		t.Fatalf("invoke 1: %v", err)
	}
	if got1.NumberValue() != 1 {
		t.Fatalf("first call = %v, want 1", got1.NumberValue())
	}
	got2, err := ip.invoke(inner.FunctionValue(), Undefined, nil, b)
	if err != nil {
		t.Fatalf("invoke 2: %v", err)
	}
	if got2.NumberValue() != 2 {
		t.Fatalf("second call = %v, want 2 (shared counter should persist)", got2.NumberValue())
	}
}
