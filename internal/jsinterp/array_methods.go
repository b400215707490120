package jsinterp

import "strings"

// This file ports the list-typed branches of youtube_dl/jsinterp.py's
// eval_method: join, reverse, slice,
// splice, shift, pop, unshift, push, forEach, indexOf.

// normalizeSliceBounds applies JS's slice semantics: negative indices count
// from the end, out-of-range indices clamp, a missing end means "through
// the end".
func normalizeSliceBounds(length int, args []Value) (start, end int) {
	clamp := func(i int) int {
		if i < 0 {
			i += length
		}
		if i < 0 {
			i = 0
		}
		if i > length {
			i = length
		}
		return i
	}
	start, end = 0, length
	if len(args) > 0 && !args[0].IsUndefined() {
		start = clamp(toInt(ToNumber(args[0])))
	}
	if len(args) > 1 && !args[1].IsUndefined() {
		end = clamp(toInt(ToNumber(args[1])))
	}
	if end < start {
		end = start
	}
	return start, end
}

func callArrayMethod(ip *Interpreter, this Value, member string, args []Value, scope *Scope, b *budget, exprForErr string) (Value, error) {
	a := this.Array()
	switch member {
	case "join":
		sep := ","
		if len(args) > 0 && !args[0].IsUndefined() {
			sep, _ = ToString(args[0])
		}
		parts := make([]string, a.Len())
		for i, e := range a.Elements() {
			if e.IsNullish() {
				parts[i] = ""
			} else {
				s, err := ToString(e)
				if err != nil {
					return Value{}, err
				}
				parts[i] = s
			}
		}
		return String(strings.Join(parts, sep)), nil

	case "reverse":
		e := a.elems
		for i, j := 0, len(e)-1; i < j; i, j = i+1, j-1 {
			e[i], e[j] = e[j], e[i]
		}
		return this, nil

	case "slice":
		start, end := normalizeSliceBounds(a.Len(), args)
		return NewArray(a.elems[start:end]...), nil

	case "splice":
		length := a.Len()
		start := 0
		if len(args) > 0 {
			start = toInt(ToNumber(args[0]))
			if start < 0 {
				start += length
			}
			if start < 0 {
				start = 0
			}
			if start > length {
				start = length
			}
		}
		deleteCount := length - start
		if len(args) > 1 {
			deleteCount = toInt(ToNumber(args[1]))
			if deleteCount < 0 {
				deleteCount = 0
			}
			if start+deleteCount > length {
				deleteCount = length - start
			}
		}
		removed := append([]Value(nil), a.elems[start:start+deleteCount]...)
		var inserted []Value
		if len(args) > 2 {
			inserted = args[2:]
		}
		rebuilt := append([]Value(nil), a.elems[:start]...)
		rebuilt = append(rebuilt, inserted...)
		rebuilt = append(rebuilt, a.elems[start+deleteCount:]...)
		a.elems = rebuilt
		return NewArray(removed...), nil

	case "shift":
		if a.Len() == 0 {
			return Undefined, nil
		}
		v := a.elems[0]
		a.elems = a.elems[1:]
		return v, nil

	case "pop":
		if a.Len() == 0 {
			return Undefined, nil
		}
		v := a.elems[len(a.elems)-1]
		a.elems = a.elems[:len(a.elems)-1]
		return v, nil

	case "unshift":
		a.elems = append(append([]Value(nil), args...), a.elems...)
		return Number(float64(a.Len())), nil

	case "push":
		a.elems = append(a.elems, args...)
		return Number(float64(a.Len())), nil

	case "forEach":
		if len(args) == 0 || args[0].Kind() != KindFunction {
			return Value{}, typeError(exprForErr, "forEach requires a callback function")
		}
		var thisArg Value = Undefined
		if len(args) > 1 {
			thisArg = args[1]
		}
		// Non-standard: returns an array of the callback's results.
		results := make([]Value, 0, a.Len())
		for i, item := range a.Elements() {
			v, err := ip.invoke(args[0].FunctionValue(), thisArg, []Value{item, Number(float64(i)), this}, b)
			if err != nil {
				return Value{}, err
			}
			results = append(results, v)
		}
		return NewArray(results...), nil

	case "indexOf":
		if len(args) == 0 {
			return Number(-1), nil
		}
		start := 0
		if len(args) > 1 {
			start = toInt(ToNumber(args[1]))
			if start < 0 {
				start += a.Len()
			}
			if start < 0 {
				start = 0
			}
		}
		for i := start; i < a.Len(); i++ {
			if jsStrictEq(a.elems[i], args[0]) {
				return Number(float64(i)), nil
			}
		}
		return Number(-1), nil

	default:
		return Value{}, typeError(exprForErr, "unsupported array method %q", member)
	}
}
