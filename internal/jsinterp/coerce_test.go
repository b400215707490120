package jsinterp

import (
	"math"
	"testing"
)

func TestToBoolean(t *testing.T) {
	falsy := []Value{Bool(false), Null, Undefined, Number(0), String(""), NaN()}
	for _, v := range falsy {
		if ToBoolean(v) {
			t.Errorf("%v should be falsy", v.Kind())
		}
	}
	truthy := []Value{Bool(true), Number(1), Number(-1), String("0"), NewArray(), NewObject()}
	for _, v := range truthy {
		if !ToBoolean(v) {
			t.Errorf("%v should be truthy", v.Kind())
		}
	}
}

func TestToNumber(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{Null, 0},
		{String(""), 0},
		{Bool(true), 1},
		{Bool(false), 0},
		{String("42"), 42},
		{String("  3.5  "), 3.5},
	}
	for _, c := range cases {
		if got := ToNumber(c.v); got != c.want {
			t.Errorf("ToNumber(%v) = %v, want %v", c.v.Kind(), got, c.want)
		}
	}
	if !math.IsNaN(ToNumber(Undefined)) {
		t.Errorf("ToNumber(undefined) should be NaN")
	}
	if !math.IsNaN(ToNumber(String("not a number"))) {
		t.Errorf("ToNumber(non-numeric string) should be NaN")
	}
}

func TestToStringNumberFormatting(t *testing.T) {
	cases := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, c := range cases {
		got, err := ToString(Number(c.n))
		if err != nil {
			t.Fatalf("ToString: %v", err)
		}
		if got != c.want {
			t.Errorf("ToString(%v) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestToPrimitiveArrayJoin(t *testing.T) {
	a := NewArray(Number(1), Number(2), Number(3))
	got := ToPrimitive(a)
	if got.Kind() != KindString || got.StringValue() != "1,2,3" {
		t.Fatalf("ToPrimitive(array) = %q, want \"1,2,3\"", got.StringValue())
	}
}

func TestToPrimitiveObjectStringTag(t *testing.T) {
	got := ToPrimitive(NewObject())
	if got.StringValue() != "[object Object]" {
		t.Fatalf("ToPrimitive(object) = %q, want \"[object Object]\"", got.StringValue())
	}
}

// TestInt32RoundTrip /  ToInt32.
func TestInt32RoundTrip(t *testing.T) {
	cases := []struct {
		n    float64
		want int32
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{4294967296, 0},  // 2^32
		{4294967297, 1},  // 2^32 + 1
		{2147483648, -2147483648}, // 2^31 wraps to min int32
	}
	for _, c := range cases {
		if got := ToInt32(Number(c.n)); got != c.want {
			t.Errorf("ToInt32(%v) = %d, want %d", c.n, got, c.want)
		}
	}
	if got := ToInt32(NaN()); got != 0 {
		t.Errorf("ToInt32(NaN) = %d, want 0", got)
	}
	if got := ToInt32(Infinity(false)); got != 0 {
		t.Errorf("ToInt32(Infinity) = %d, want 0", got)
	}
}
