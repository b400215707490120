package jsinterp

import "testing"

func TestMathPowExponentLaw(t *testing.T) {
	// x ** 0 === 1 for every x, including 0, NaN, Infinity.
	ip, err := Build(`function f(x){ return Math.pow(x, 0); }`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, x := range []Value{Number(0), NaN(), Infinity(false), Number(7)} {
		got, err := ip.Call("f", []Value{x}, nil)
		if err != nil {
			t.Fatalf("Call: %v", err)
		}
		if got.NumberValue() != 1 {
			t.Errorf("Math.pow(%v, 0) = %v, want 1", x.Dump(), got.NumberValue())
		}
	}
}

func TestStringFromCharCode(t *testing.T) {
	ip, err := Build(`function f(){ return String.fromCharCode(72, 105); }`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := ip.Call("f", nil, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.StringValue() != "Hi" {
		t.Errorf("String.fromCharCode(72,105) = %q, want \"Hi\"", got.StringValue())
	}
}

func TestDateConstructAndValueOf(t *testing.T) {
	ip, err := Build(`function f(ms){ var d = new Date(ms); return d.valueOf(); }`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := ip.Call("f", []Value{Number(1700000000000)}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.NumberValue() != 1700000000000 {
		t.Errorf("new Date(ms).valueOf() = %v, want 1700000000000", got.NumberValue())
	}
}

func TestRegExpTestAndExec(t *testing.T) {
	ip, err := Build(`function f(s){ var r=/a(b+)c/; return r.test(s); }`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := ip.Call("f", []Value{String("xabbcz")}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !got.Bool() {
		t.Errorf("r.test(\"xabbcz\") = %v, want true", got.Bool())
	}

	ip2, err := Build(`function g(s){ var r=/a(b+)c/; return r.exec(s); }`)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got2, err := ip2.Call("g", []Value{String("xabbcz")}, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got2.Kind() != KindArray || got2.Array().Get(0).StringValue() != "abbc" || got2.Array().Get(1).StringValue() != "bb" {
		t.Errorf("r.exec result = %v, want [\"abbc\",\"bb\"]", got2.Dump())
	}
}

func TestFunctionCallAndApply(t *testing.T) {
	program := `function greet(greeting){ return greeting + " " + this.name; }
	function f(){
		var o = {name: "World"};
		return greet.call(o, "Hello") + "|" + greet.apply(o, ["Hi"]);
	}`
	ip, err := Build(program)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := ip.Call("f", nil, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.StringValue() != "Hello World|Hi World" {
		t.Errorf("f() = %q, want \"Hello World|Hi World\"", got.StringValue())
	}
}
