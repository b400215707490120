package jsinterp

import "math"

// This file ports the operator table of youtube_dl/jsinterp.py's
// _js_arith_op/_js_bit_op/_js_comp_op/_js_eq family to Go.
// Operators are grouped loosest-to-tightest exactly as _all_operators()
// orders them; separator.go's SeparateAtOperator walks this same list.

// opPrecedence lists operator tokens from loosest to tightest binding, the
// order _separate_at_op tries them in. Multi-character operators that share
// a prefix with a tighter operator (e.g. "<" vs "<<") are listed so that
// longer operators are tried as skip-delimiters by the caller.
var opPrecedence = []string{
	"?", "??", "||", "&&",
	"|", "^", "&",
	"===", "!==", "==", "!=", "<=", ">=", "<", ">",
	">>", "<<", "+", "-", "*", "%", "/", "**",
}

// unaryOperators lists the prefix operators recognised by the expression
// evaluator's step 2.
var unaryOperators = []string{"void", "typeof", "!"}

func isArithOrBitwiseOp(op string) bool {
	switch op {
	case "+", "-", "*", "%", "/", "**", "|", "^", "&", ">>", "<<":
		return true
	}
	return false
}

func isComparisonOp(op string) bool {
	switch op {
	case "===", "!==", "==", "!=", "<=", ">=", "<", ">":
		return true
	}
	return false
}

func isShortCircuitOp(op string) bool {
	switch op {
	case "?", "??", "||", "&&":
		return true
	}
	return false
}

// jsAdd implements binary +: string concat if either ToPrimitive operand is
// a string, else numeric addition.
func jsAdd(a, b Value) (Value, error) {
	pa, pb := ToPrimitive(a), ToPrimitive(b)
	if pa.kind == KindString || pb.kind == KindString {
		sa, err := ToString(pa)
		if err != nil {
			return Value{}, err
		}
		sb, err := ToString(pb)
		if err != nil {
			return Value{}, err
		}
		return String(sa + sb), nil
	}
	return jsArith(a, b, func(x, y float64) float64 { return x + y }, false), nil
}

// jsArith mirrors _js_arith_op: Undefined anywhere -> NaN, non-numeric
// strings -> NaN, division by zero yields ±Infinity or NaN per sign.
func jsArith(a, b Value, op func(x, y float64) float64, isDiv bool) Value {
	if a.kind == KindUndefined || b.kind == KindUndefined {
		return NaN()
	}
	x, y := arithOperand(a), arithOperand(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return NaN()
	}
	if isDiv && y == 0 {
		if x == 0 {
			return NaN()
		}
		return Infinity(x < 0)
	}
	return Number(op(x, y))
}

// arithOperand mirrors per-operand coercion: strings are
// stripped then treated as 0 if empty, else parsed; null -> 0 via ToNumber.
func arithOperand(v Value) float64 {
	if v.kind == KindString {
		return stringToNumber(v.s)
	}
	return ToNumber(v)
}

func jsSub(a, b Value) Value { return jsArith(a, b, func(x, y float64) float64 { return x - y }, false) }
func jsMul(a, b Value) Value { return jsArith(a, b, func(x, y float64) float64 { return x * y }, false) }
func jsMod(a, b Value) Value { return jsArith(a, b, math.Mod, false) }
func jsDiv(a, b Value) Value { return jsArith(a, b, func(x, y float64) float64 { return x / y }, true) }

// jsExp implements exponentiation with the `x ** 0 === 1` law for every x,
// including 0 ** 0 and NaN ** 0.
func jsExp(a, b Value) Value {
	if !ToBoolean(b) {
		return Number(1)
	}
	return jsArith(a, b, math.Pow, false)
}

// jsBitOp implements the _js_bit_op family: ToInt32/ToUint32 both operands
// (shift amount masked to 5 bits), apply op, mask result to 32 bits.
func jsBitOp(a, b Value, op func(x, y int64) int64, isShift bool) Value {
	x := int64(ToInt32(a))
	var y int64
	if isShift {
		y = int64(toShiftAmount(b))
	} else {
		y = int64(ToInt32(b))
	}
	r := op(x, y) & 0xFFFFFFFF
	// reinterpret as signed 32-bit, matching JS bitwise op result typing
	return Number(float64(int32(uint32(r))))
}

func jsOr(a, b Value) Value  { return jsBitOp(a, b, func(x, y int64) int64 { return x | y }, false) }
func jsXor(a, b Value) Value { return jsBitOp(a, b, func(x, y int64) int64 { return x ^ y }, false) }
func jsAnd(a, b Value) Value { return jsBitOp(a, b, func(x, y int64) int64 { return x & y }, false) }
func jsShr(a, b Value) Value { return jsBitOp(a, b, func(x, y int64) int64 { return x >> uint(y) }, true) }
func jsShl(a, b Value) Value { return jsBitOp(a, b, func(x, y int64) int64 { return x << uint(y) }, true) }

// jsStrictEq implements ===: NaN !== NaN always false;
// numbers/strings compare by value, everything else by identity-ish kind
// match (arrays/objects compare equal only to themselves, which a Value
// copy can't express exactly, so we fall back to "same underlying pointer").
func jsStrictEq(a, b Value) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		return a.arr == b.arr
	case KindObject:
		return a.obj == b.obj
	case KindRegExp:
		return a.re == b.re
	case KindDate:
		return a.dt == b.dt
	case KindFunction:
		return a.fn == b.fn
	default:
		return false
	}
}

func jsStrictNeq(a, b Value) bool { return !jsStrictEq(a, b) }

// jsLooseEq implements == (abstract equality): null/undefined are mutually
// reflexive and equal only to each other and themselves; otherwise convert
// both sides toward a common primitive and compare, converting a numeric
// string via ToNumber's number-to-string-via-parse rule.
func jsLooseEq(a, b Value) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	if a.kind == KindArray && b.kind == KindArray {
		return a.arr == b.arr
	}
	if a.kind == KindObject && b.kind == KindObject {
		return a.obj == b.obj
	}
	if jsStrictEq(a, b) {
		return true
	}
	aNullish, bNullish := a.IsNullish(), b.IsNullish()
	if aNullish || bNullish {
		return aNullish && bNullish
	}
	pa, pb := ToPrimitive(a), ToPrimitive(b)
	if pa.kind != KindString {
		pa, pb = pb, pa
	}
	if pa.kind == KindString {
		if pb.kind == KindString {
			return pa.s == pb.s
		}
		n := ToNumber(pb)
		return stringToNumber(pa.s) == n
	}
	return ToNumber(pa) == ToNumber(pb)
}

func jsLooseNeq(a, b Value) bool { return !jsLooseEq(a, b) }

// jsComp implements <, >, <=, >=: string-to-string is
// lexicographic, otherwise both sides go numeric; Undefined anywhere makes
// every comparison false.
func jsComp(a, b Value, op func(x, y float64) bool, strOp func(x, y string) bool) bool {
	if a.kind == KindUndefined || b.kind == KindUndefined {
		return false
	}
	if a.kind == KindString && b.kind == KindString {
		return strOp(a.s, b.s)
	}
	return op(ToNumber(a), ToNumber(b))
}

func jsLt(a, b Value) bool {
	return jsComp(a, b, func(x, y float64) bool { return x < y }, func(x, y string) bool { return x < y })
}
func jsGt(a, b Value) bool {
	return jsComp(a, b, func(x, y float64) bool { return x > y }, func(x, y string) bool { return x > y })
}
func jsLe(a, b Value) bool {
	return jsComp(a, b, func(x, y float64) bool { return x <= y }, func(x, y string) bool { return x <= y })
}
func jsGe(a, b Value) bool {
	return jsComp(a, b, func(x, y float64) bool { return x >= y }, func(x, y string) bool { return x >= y })
}

// jsTypeof implements the typeof operator.
func jsTypeof(v Value) string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "object"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	default:
		return "object"
	}
}

// applyBinaryOp dispatches a binary operator token to its implementation.
// Short-circuit operators (?? || &&) are handled by the expression
// evaluator directly since they must not evaluate their right operand
// eagerly; this function only covers operators that always evaluate both
// sides.
func applyBinaryOp(op string, a, b Value) (Value, error) {
	switch op {
	case "+":
		return jsAdd(a, b)
	case "-":
		return jsSub(a, b), nil
	case "*":
		return jsMul(a, b), nil
	case "%":
		return jsMod(a, b), nil
	case "/":
		return jsDiv(a, b), nil
	case "**":
		return jsExp(a, b), nil
	case "|":
		return jsOr(a, b), nil
	case "^":
		return jsXor(a, b), nil
	case "&":
		return jsAnd(a, b), nil
	case ">>":
		return jsShr(a, b), nil
	case "<<":
		return jsShl(a, b), nil
	case "===":
		return Bool(jsStrictEq(a, b)), nil
	case "!==":
		return Bool(jsStrictNeq(a, b)), nil
	case "==":
		return Bool(jsLooseEq(a, b)), nil
	case "!=":
		return Bool(jsLooseNeq(a, b)), nil
	case "<=":
		return Bool(jsLe(a, b)), nil
	case ">=":
		return Bool(jsGe(a, b)), nil
	case "<":
		return Bool(jsLt(a, b)), nil
	case ">":
		return Bool(jsGt(a, b)), nil
	default:
		return Value{}, syntaxError(op, "unsupported operator %q", op)
	}
}

// applyUnaryOp dispatches void/typeof/!.
func applyUnaryOp(op string, v Value) (Value, error) {
	switch op {
	case "void":
		return Undefined, nil
	case "typeof":
		return String(jsTypeof(v)), nil
	case "!":
		return Bool(!ToBoolean(v)), nil
	default:
		return Value{}, syntaxError(op, "unsupported unary operator %q", op)
	}
}
