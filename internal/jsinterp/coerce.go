package jsinterp

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean implements JS truthiness.
func ToBoolean(v Value) bool {
	switch v.kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindString:
		return v.s != ""
	default:
		return true
	}
}

// ToPrimitive mirrors _js_to_primitive: arrays render as
// join(",") of their elements' ToString, objects render as the fixed
// string "[object Object]", everything else passes through unchanged.
func ToPrimitive(v Value) Value {
	switch v.kind {
	case KindArray:
		parts := make([]string, v.arr.Len())
		for i, e := range v.arr.elems {
			s, _ := ToString(e)
			parts[i] = s
		}
		return String(strings.Join(parts, ","))
	case KindObject:
		return String("[object Object]")
	default:
		return v
	}
}

// ToString implements JS ToString, following _js_toString
// closely: undefined/Infinity/NaN/null/bool get fixed spellings, numbers
// are formatted and trimmed of trailing zeros, everything else goes
// through ToPrimitive first.
func ToString(v Value) (string, error) {
	switch v.kind {
	case KindUndefined:
		return "undefined", nil
	case KindNull:
		return "null", nil
	case KindBoolean:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case KindString:
		return v.s, nil
	case KindNumber:
		return numberToString(v.n), nil
	case KindRegExp:
		return v.re.Dump(), nil
	case KindDate:
		return v.dt.toString(), nil
	case KindFunction:
		return "function " + v.fn.DisplayName() + "() { [native code] }", nil
	default:
		p := ToPrimitive(v)
		if p.kind == v.kind {
			return "", typeError("", "cannot convert %s to string", v.kind)
		}
		return ToString(p)
	}
}

func numberToString(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	// format with enough precision, then trim trailing zeros / dot like the
	// original's regex `(?<=\d)\.?0*$` applied to a %.7f-ish rendering, but
	// using Go's shortest round-trip formatting for values outside the
	// original's fixed 7-decimal window.
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'g', -1, 64)
	return s
}

// ToNumber implements JS ToNumber: empty string and null -> 0, undefined ->
// NaN, non-numeric strings -> NaN, booleans -> 0/1.
func ToNumber(v Value) float64 {
	switch v.kind {
	case KindUndefined:
		return nan
	case KindNull:
		return 0
	case KindBoolean:
		if v.b {
			return 1
		}
		return 0
	case KindNumber:
		return v.n
	case KindString:
		return stringToNumber(v.s)
	case KindArray:
		return stringToNumber(strings.Join(stringifyEach(v.arr.elems), ","))
	default:
		return nan
	}
}

func stringifyEach(vals []Value) []string {
	out := make([]string, len(vals))
	for i, e := range vals {
		s, _ := ToString(e)
		out[i] = s
	}
	return out
}

// stringToNumber mirrors float_or_none(x.strip() or 0): trims whitespace,
// empty -> 0, otherwise strconv.ParseFloat, NaN on failure.
func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	if t == "Infinity" || t == "+Infinity" {
		return math.Inf(1)
	}
	if t == "-Infinity" {
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return nan
	}
	return f
}

// ToInt32 implements ECMAScript's ToInt32: NaN/Infinity -> 0, else truncate
// toward zero modulo 2^32 into the signed range.
func ToInt32(v Value) int32 {
	n := ToNumber(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	u := uint32(int64(math.Trunc(n)) & 0xFFFFFFFF)
	return int32(u)
}

// ToUint32 is ToInt32's unsigned counterpart.
func ToUint32(v Value) uint32 {
	n := ToNumber(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return uint32(int64(math.Trunc(n)) & 0xFFFFFFFF)
}

// toShiftAmount masks a shift operand to its low 5 bits.
func toShiftAmount(v Value) uint {
	n := ToNumber(v)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return uint(int64(math.Trunc(n))) & 0x1F
}

// toInt truncates n toward zero to an int, mapping NaN to 0 and saturating
// at the int32 range. Negative values are kept; callers that need an
// index reject or offset them themselves.
func toInt(n float64) int {
	if math.IsNaN(n) {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(math.Trunc(n))
}
