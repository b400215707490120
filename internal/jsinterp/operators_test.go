package jsinterp

import (
	"math"
	"testing"
	"time"
)

// TestNaNPropagation guarantees every arithmetic op
// propagates NaN regardless of which side it appears on.
func TestNaNPropagation(t *testing.T) {
	ops := map[string]func(a, b Value) Value{
		"+": func(a, b Value) Value { v, _ := jsAdd(a, b); return v },
		"-": jsSub,
		"*": jsMul,
		"/": jsDiv,
		"%": jsMod,
	}
	n := NaN()
	other := Number(5)
	for name, op := range ops {
		if !op(n, other).IsNaN() {
			t.Errorf("NaN %s v is not NaN", name)
		}
		if !op(other, n).IsNaN() {
			t.Errorf("v %s NaN is not NaN", name)
		}
	}
}

// TestBitMasking .
func TestBitMasking(t *testing.T) {
	if got := ToInt32(Number(4294967296)); got != 0 { // 2^32 | 0 === 0
		t.Errorf("ToInt32(2^32) = %d, want 0", got)
	}
	if got := ToInt32(Number(-1)); got != -1 {
		t.Errorf("ToInt32(-1) = %d, want -1", got)
	}
	shl := jsShl(Number(1), Number(32))
	if shl.NumberValue() != 1 {
		t.Errorf("1 << 32 = %v, want 1 (shift amount masked to 5 bits)", shl.NumberValue())
	}
	orZero := jsOr(Number(3.7), Number(0))
	if orZero.NumberValue() != 3 {
		t.Errorf("3.7 | 0 = %v, want 3", orZero.NumberValue())
	}
}

// TestExponentLaw guarantees x ** 0 === 1 for every x.
func TestExponentLaw(t *testing.T) {
	bases := []Value{Number(0), NaN(), Infinity(false), Number(-7), Null}
	for _, base := range bases {
		got := jsExp(base, Number(0))
		if got.NumberValue() != 1 {
			t.Errorf("%v ** 0 = %v, want 1", base, got.NumberValue())
		}
	}
}

// TestShortCircuitReturnsOperand guarantees logical
// operators return one of their operands verbatim, never a coerced bool.
func TestShortCircuitReturnsOperand(t *testing.T) {
	ip, err := Build("")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	eval := func(op, left, right string) Value {
		t.Helper()
		v, err := ip.evalOperatorSplit(op, left, right, NewScope(), newBudget(100, time.Time{}))
		if err != nil {
			t.Fatalf("%s %s %s: %v", left, op, right, err)
		}
		return v
	}
	// 0 || "x" === "x"
	if ToBoolean(Number(0)) {
		t.Fatalf("0 should be falsy")
	}
	got := eval("||", "0", `"x"`)
	if got.Kind() != KindString || got.StringValue() != "x" {
		t.Fatalf("0 || \"x\" should select \"x\"")
	}
	// 1 && null === null (logical AND picks the second operand when the
	// first is truthy, verbatim)
	if !ToBoolean(Number(1)) {
		t.Fatalf("1 should be truthy")
	}
	if got := eval("&&", "1", "null"); got.Kind() != KindNull {
		t.Fatalf("1 && null = %v, want null", got)
	}
	// null ?? 7 === 7
	if !Null.IsNullish() {
		t.Fatalf("Null should be nullish")
	}
	if got := eval("??", "null", "7"); got.Kind() != KindNumber || got.NumberValue() != 7 {
		t.Fatalf("null ?? 7 = %v, want 7", got)
	}
	// 0 ?? 7 === 0 (0 is falsy but NOT nullish)
	if Number(0).IsNullish() {
		t.Fatalf("0 should not be nullish")
	}
	if got := eval("??", "0", "7"); got.Kind() != KindNumber || got.NumberValue() != 0 {
		t.Fatalf("0 ?? 7 = %v, want 0", got)
	}
}

// TestEquality checks equality: strict vs loose, and NaN's
// exception to strict equality's "same kind and value" rule.
func TestEquality(t *testing.T) {
	if jsStrictEq(NaN(), NaN()) {
		t.Fatalf("NaN === NaN must be false")
	}
	if !jsLooseEq(Undefined, Null) {
		t.Fatalf("undefined == null must be true")
	}
	if jsStrictEq(Undefined, Null) {
		t.Fatalf("undefined === null must be false")
	}
	if !jsLooseEq(Number(1), String("1")) {
		t.Fatalf(`1 == "1" must be true`)
	}
	if jsStrictEq(Number(1), String("1")) {
		t.Fatalf(`1 === "1" must be false`)
	}
}

// TestComparisonWithUndefined Comparison: any ordering
// comparison involving Undefined is false.
func TestComparisonWithUndefined(t *testing.T) {
	if jsLt(Undefined, Number(1)) || jsGt(Undefined, Number(1)) {
		t.Fatalf("comparisons with Undefined must be false")
	}
	if jsLe(Number(1), Undefined) || jsGe(Number(1), Undefined) {
		t.Fatalf("comparisons with Undefined must be false")
	}
}

// TestArithCoercion Arithmetic: empty string and null
// coerce to 0; Undefined anywhere yields NaN; division by zero yields
// signed Infinity or NaN for 0/0.
func TestArithCoercion(t *testing.T) {
	if v, _ := jsAdd(String(""), Number(5)); v.Kind() != KindString {
		// "" + 5 is string concatenation per ToPrimitive rules: either
		// side being a string forces concat, so this yields "5".
		t.Fatalf(`"" + 5 should concatenate to a string`)
	}
	if got := jsSub(String(""), Number(5)); got.NumberValue() != -5 {
		t.Fatalf(`"" - 5 = %v, want -5`, got.NumberValue())
	}
	if got := jsSub(Null, Number(5)); got.NumberValue() != -5 {
		t.Fatalf("null - 5 = %v, want -5", got.NumberValue())
	}
	if v, _ := jsAdd(Undefined, Number(1)); !v.IsNaN() {
		t.Fatalf("undefined + 1 should be NaN")
	}
	posInf := jsDiv(Number(1), Number(0))
	if !math.IsInf(posInf.NumberValue(), 1) {
		t.Fatalf("1 / 0 = %v, want +Infinity", posInf.NumberValue())
	}
	negInf := jsDiv(Number(-1), Number(0))
	if !math.IsInf(negInf.NumberValue(), -1) {
		t.Fatalf("-1 / 0 = %v, want -Infinity", negInf.NumberValue())
	}
	zeroByZero := jsDiv(Number(0), Number(0))
	if !zeroByZero.IsNaN() {
		t.Fatalf("0 / 0 should be NaN")
	}
}

// TestTypeofTable typeof, including the null/object quirk.
func TestTypeofTable(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Undefined, "undefined"},
		{Null, "object"},
		{Bool(true), "boolean"},
		{Number(1), "number"},
		{String("x"), "string"},
		{NewObject(), "object"},
		{NewArray(), "object"},
	}
	for _, c := range cases {
		if got := jsTypeof(c.v); got != c.want {
			t.Errorf("typeof %v = %q, want %q", c.v.Kind(), got, c.want)
		}
	}
}
