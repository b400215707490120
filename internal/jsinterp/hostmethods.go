package jsinterp

import "strings"

// This file ports the `eval_method` closure of youtube_dl/jsinterp.py's
// interpret_statement: given a resolved
// receiver, a member name, and already-evaluated arguments, it either reads
// a property or calls a built-in method, entirely by switching on the
// receiver's Kind rather than Python's isinstance duck-typing.

// propertyRead implements the no-call branch of attribute access: a plain
// property read on obj.
func (ip *Interpreter) propertyRead(obj Value, member string) (Value, error) {
	if obj.Kind() == KindStaticNamespace {
		// Bare reads of a static namespace (e.g. `Math` alone) carry no
		// useful value in this sandbox; only its methods matter.
		return Undefined, nil
	}
	return ip.propertyGetIndexed(obj, String(member), "")
}

// callMethod implements the call branch of attribute access: dispatches a
// method call to the appropriate host-object table, including the Function.prototype call/apply "fixup" that rebinds
// a static-class method onto an explicit receiver.
func (ip *Interpreter) callMethod(obj Value, member string, args []Value, scope *Scope, b *budget, exprForErr string) (Value, error) {
	if obj.Kind() == KindStaticNamespace {
		if fixed, newMember, newArgs, ok := applyPrototypeFixup(obj, member, args); ok {
			return ip.callMethod(fixed, newMember, newArgs, scope, b, exprForErr)
		}
		return callStaticMethod(obj.s, member, args, exprForErr)
	}
	switch obj.Kind() {
	case KindArray:
		return callArrayMethod(ip, obj, member, args, scope, b, exprForErr)
	case KindString:
		return callStringMethod(obj, member, args, exprForErr)
	case KindRegExp:
		return callRegExpMethod(obj, member, args, exprForErr)
	case KindDate:
		return callDateMethod(obj, member, args, exprForErr)
	case KindFunction:
		return callFunctionMethod(ip, obj, member, args, b, exprForErr)
	case KindObject:
		fv := obj.Object().Get(member)
		if fv.Kind() != KindFunction {
			return Value{}, typeError(exprForErr, "%q is not a function", member)
		}
		return ip.invoke(fv.FunctionValue(), obj, args, b)
	case KindUndefined, KindNull:
		return Value{}, typeError(exprForErr, "cannot call method %q on %s", member, obj.Kind())
	default:
		return Value{}, typeError(exprForErr, "cannot call method %q on %s", member, obj.Kind())
	}
}

// applyPrototypeFixup recognises `String.prototype.X.call(this, ...)` /
// `.apply(this, argsArray)` addressed through a static-class receiver
//. It rebinds the receiver to
// the explicit `this` argument and reduces member back down to X.
func applyPrototypeFixup(obj Value, member string, args []Value) (newObj Value, newMember string, newArgs []Value, ok bool) {
	if !strings.HasPrefix(member, "prototype.") {
		return Value{}, "", nil, false
	}
	rest := member[len("prototype."):]
	dot := strings.LastIndexByte(rest, '.')
	if dot < 0 {
		return Value{}, "", nil, false
	}
	targetMember, fn := rest[:dot], rest[dot+1:]
	switch fn {
	case "call":
		if len(args) == 0 {
			return Value{}, "", nil, false
		}
		return args[0], targetMember, args[1:], true
	case "apply":
		if len(args) != 2 || args[1].Kind() != KindArray {
			return Value{}, "", nil, false
		}
		return args[0], targetMember, args[1].Array().Elements(), true
	default:
		return Value{}, "", nil, false
	}
}

// callStaticMethod implements the handful of static (class-level) methods
// the sandbox supports: String.fromCharCode, Math.pow, and Date's
// now/UTC/parse.
func callStaticMethod(namespace, member string, args []Value, exprForErr string) (Value, error) {
	switch namespace {
	case "String":
		if member == "fromCharCode" {
			var sb strings.Builder
			for _, a := range args {
				sb.WriteRune(rune(toInt(ToNumber(a))))
			}
			return String(sb.String()), nil
		}
	case "Math":
		if member == "pow" {
			if len(args) < 2 {
				return Value{}, typeError(exprForErr, "Math.pow requires 2 arguments")
			}
			return jsExp(args[0], args[1]), nil
		}
	case "Date":
		switch member {
		case "now":
			return Number(float64(nowUnixMilli())), nil
		case "UTC":
			return Number(dateUTC(args)), nil
		case "parse":
			if len(args) < 1 {
				return Value{}, typeError(exprForErr, "Date.parse requires 1 argument")
			}
			s, err := ToString(args[0])
			if err != nil {
				return Value{}, err
			}
			return Number(ParseDate(s).valueOf()), nil
		}
	}
	return Value{}, typeError(exprForErr, "unsupported static method %s.%s", namespace, member)
}

// callFunctionMethod implements call/apply directly on a user-defined
// function value.
func callFunctionMethod(ip *Interpreter, fnVal Value, member string, args []Value, b *budget, exprForErr string) (Value, error) {
	switch member {
	case "call":
		var this Value = Undefined
		var rest []Value
		if len(args) > 0 {
			this, rest = args[0], args[1:]
		}
		return ip.invoke(fnVal.FunctionValue(), this, rest, b)
	case "apply":
		var this Value = Undefined
		var callArgs []Value
		if len(args) > 0 {
			this = args[0]
		}
		if len(args) > 1 && args[1].Kind() == KindArray {
			callArgs = args[1].Array().Elements()
		}
		return ip.invoke(fnVal.FunctionValue(), this, callArgs, b)
	default:
		return Value{}, typeError(exprForErr, "unsupported function method %q", member)
	}
}
