package jsinterp

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestSparseArrayGrowth guarantees writing past the end of
// an array extends length, filling the gap with Undefined, and an
// in-bounds read of an untouched slot also yields Undefined.
func TestSparseArrayGrowth(t *testing.T) {
	a := NewArray()
	ok := a.Array().Set(3, Number(1), defaultMaxArrayElems)
	if !ok {
		t.Fatalf("Set(3, ...) rejected")
	}
	if got := a.Array().Len(); got != 4 {
		t.Fatalf("length = %d, want 4", got)
	}
	if got := a.Array().Get(0); !got.IsUndefined() {
		t.Fatalf("a[0] = %v, want Undefined", got)
	}
	if got := a.Array().Get(3); got.NumberValue() != 1 {
		t.Fatalf("a[3] = %v, want 1", got.NumberValue())
	}
}

// TestArrayGrowthCapped guarantees sparse growth is capped to avoid
// unbounded allocation; exceeding the cap must be rejected rather than
// silently allocating.
func TestArrayGrowthCapped(t *testing.T) {
	a := NewArray()
	if a.Array().Set(10, Number(1), 5) {
		t.Fatalf("Set(10, ..., maxElems=5) should have been rejected")
	}
}

// TestPushPopRoundTrip guarantees push then pop returns the
// pushed value and leaves length unchanged.
func TestPushPopRoundTrip(t *testing.T) {
	a := NewArray(Number(1), Number(2))
	a.Array().Append(Number(3))
	if got := a.Array().Len(); got != 3 {
		t.Fatalf("length after push = %d, want 3", got)
	}
	last := a.Array().Get(a.Array().Len() - 1)
	if last.NumberValue() != 3 {
		t.Fatalf("last element = %v, want 3", last.NumberValue())
	}
	popped, err := callArrayMethod(nil, a, "pop", nil, nil, nil, "")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if popped.NumberValue() != 3 {
		t.Fatalf("pop() = %v, want 3", popped.NumberValue())
	}
	if got := a.Array().Len(); got != 2 {
		t.Fatalf("length after push+pop = %d, want 2", got)
	}
}

// TestNaNIdentity for the value model itself:
// every NaN value reports IsNaN, and is unequal to itself under ===.
func TestNaNIdentity(t *testing.T) {
	n := NaN()
	if !n.IsNaN() {
		t.Fatalf("NaN().IsNaN() = false")
	}
	if jsStrictEq(n, n) {
		t.Fatalf("NaN === NaN should be false")
	}
	if !jsStrictNeq(n, n) {
		t.Fatalf("NaN !== NaN should be true")
	}
}

// TestJSONRoundTrip guarantees a Value built from a decoded
// JSON literal re-serialises to the same JSON (modulo key order, which
// MarshalJSON deliberately normalises by sorting - documented there).
func TestJSONRoundTrip(t *testing.T) {
	const input = `{"a":1,"b":[1,2,3],"c":"x","d":null,"e":true}`

	var decoded any
	if err := json.Unmarshal([]byte(input), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	v := FromJSON(decoded)

	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var roundTripped any
	if err := json.Unmarshal(out, &roundTripped); err != nil {
		t.Fatalf("json.Unmarshal(round-tripped): %v", err)
	}
	if !reflect.DeepEqual(decoded, roundTripped) {
		t.Fatalf("round trip mismatch: got %#v, want %#v", roundTripped, decoded)
	}
}

// TestObjectInsertionOrder checks the "insertion-ordered mapping" invariant
// of 's Object value: Keys() returns keys in the order they were
// first set, not sorted or random map order.
func TestObjectInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Object().Set("z", Number(1))
	o.Object().Set("a", Number(2))
	o.Object().Set("m", Number(3))
	o.Object().Set("a", Number(4)) // re-set shouldn't move it

	got := o.Object().Keys()
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if v := o.Object().Get("a"); v.NumberValue() != 4 {
		t.Fatalf("a = %v, want 4 (re-set should update value in place)", v.NumberValue())
	}
}
