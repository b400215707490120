package jsinterp

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// This file ports the remainder of youtube_dl/jsinterp.py's
// interpret_statement: the big assign/attribute/indexing/function regex
// alternation and the handful of one-off forms
// (new-expression, the offset shortcut, object literals, bare names,
// literals). Rather than one monolithic alternation, each form gets its own
// small matcher, in the spirit of named regex groups but
// expressed as ordinary Go control flow instead of a single 400-character
// pattern.

var leadingNameRe = regexp.MustCompile(`^` + nameRePattern)

// matchLeadingName reports whether expr begins with a bare identifier,
// returning it split from the remainder.
func matchLeadingName(expr string) (name string, rest string, ok bool) {
	loc := leadingNameRe.FindStringIndex(expr)
	if loc == nil || loc[0] != 0 {
		return "", "", false
	}
	return expr[:loc[1]], expr[loc[1]:], true
}

// numLiteralRe recognises a JS numeric literal: decimal (with optional
// fraction/exponent) or hexadecimal, optionally signed.
var numLiteralRe = regexp.MustCompile(`^-?(0[xX][0-9a-fA-F]+|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)$`)

// tryLiteral recognises the keyword literals and numeric literals that
// isAllDigits and the earlier keyword switch in interpretStatement don't
// already cover: negative numbers, floats, hex, and true/false/null.
func tryLiteral(expr string) (Value, bool) {
	switch expr {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	case "null":
		return Null, true
	}
	if !numLiteralRe.MatchString(expr) {
		return Value{}, false
	}
	n, err := parseNumericLiteral(expr)
	if err != nil {
		return Value{}, false
	}
	return Number(n), true
}

func parseNumericLiteral(s string) (float64, error) {
	neg := false
	t := s
	if strings.HasPrefix(t, "-") {
		neg = true
		t = t[1:]
	}
	var v float64
	if len(t) > 2 && (t[:2] == "0x" || t[:2] == "0X") {
		n, err := strconv.ParseInt(t[2:], 16, 64)
		if err != nil {
			return 0, err
		}
		v = float64(n)
	} else {
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, err
		}
		v = n
	}
	if neg {
		v = -v
	}
	return v, nil
}

// lookupBareName recognises a whole-expression bare identifier and resolves
// it against scope, returning Undefined (never an error) on a miss, per the
// scope chain's read semantics. It excludes the keyword
// literals that tryLiteral owns, mirroring _VAR_RET_THROW_RE-adjacent
// `return` group's negative lookahead in .
func (ip *Interpreter) lookupBareName(expr string, scope *Scope) (Value, bool) {
	switch expr {
	case "true", "false", "null":
		return Value{}, false
	}
	if leadingNameRe.FindString(expr) != expr {
		return Value{}, false
	}
	v, _ := scope.Lookup(expr)
	return v, true
}

// unquoteJS decodes a single- or double-quoted JS string literal, including
// backslash escapes and \uXXXX/\xXX sequences.
func unquoteJS(lit string) (string, *Error) {
	if len(lit) < 2 {
		return "", syntaxError(lit, "unterminated string literal")
	}
	body := lit[1 : len(lit)-1]
	var out strings.Builder
	r := []rune(body)
	for i := 0; i < len(r); i++ {
		c := r[i]
		if c != '\\' || i+1 >= len(r) {
			out.WriteRune(c)
			continue
		}
		i++
		next := r[i]
		switch next {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'v':
			out.WriteByte('\v')
		case '0':
			out.WriteByte(0)
		case '\\', '\'', '"', '/':
			out.WriteRune(next)
		case '\n':
			// line continuation: escaped newline disappears
		case 'u':
			if i+4 < len(r) {
				code, err := strconv.ParseInt(string(r[i+1:i+5]), 16, 32)
				if err == nil {
					out.WriteRune(rune(code))
					i += 4
					continue
				}
			}
			out.WriteRune(next)
		case 'x':
			if i+2 < len(r) {
				code, err := strconv.ParseInt(string(r[i+1:i+3]), 16, 32)
				if err == nil {
					out.WriteRune(rune(code))
					i += 2
					continue
				}
			}
			out.WriteRune(next)
		default:
			out.WriteRune(next)
		}
	}
	return out.String(), nil
}

// regexFlagChars is every flag letter recognised by NewRegExpValue.
const regexFlagChars = "dgimsuvy"

// splitRegexFlags consumes the run of regex flag letters at the start of s
//.
func splitRegexFlags(s string) (flags string, rest string) {
	i := 0
	for i < len(s) && strings.IndexByte(regexFlagChars, s[i]) >= 0 {
		i++
	}
	return s[:i], s[i:]
}

// evalOperatorSplit evaluates a binary or unary operator split produced by
// SeparateAtOperator or the leading-unary check in interpretStatement.
// Short-circuit operators (&&, ||, ??) and the ternary (?:) only evaluate
// the branch they need; everything else evaluates both sides.
func (ip *Interpreter) evalOperatorSplit(op, left, right string, scope *Scope, b *budget) (Value, error) {
	for _, u := range unaryOperators {
		if op == u {
			operand, err := ip.interpretExpression(right, scope, b)
			if err != nil {
				return Value{}, err
			}
			return applyUnaryOp(op, operand)
		}
	}

	switch op {
	case "?":
		cond, err := ip.interpretExpression(left, scope, b)
		if err != nil {
			return Value{}, err
		}
		parts := Separate(right, ":", 1, nil)
		if len(parts) < 2 {
			return Value{}, syntaxError(right, "malformed ternary expression")
		}
		if ToBoolean(cond) {
			return ip.interpretExpression(strings.TrimSpace(parts[0]), scope, b)
		}
		return ip.interpretExpression(strings.TrimSpace(parts[1]), scope, b)
	case "&&":
		lv, err := ip.interpretExpression(left, scope, b)
		if err != nil {
			return Value{}, err
		}
		if !ToBoolean(lv) {
			return lv, nil
		}
		return ip.interpretExpression(right, scope, b)
	case "||":
		lv, err := ip.interpretExpression(left, scope, b)
		if err != nil {
			return Value{}, err
		}
		if ToBoolean(lv) {
			return lv, nil
		}
		return ip.interpretExpression(right, scope, b)
	case "??":
		lv, err := ip.interpretExpression(left, scope, b)
		if err != nil {
			return Value{}, err
		}
		if !lv.IsNullish() {
			return lv, nil
		}
		return ip.interpretExpression(right, scope, b)
	default:
		lv, err := ip.interpretExpression(left, scope, b)
		if err != nil {
			return Value{}, err
		}
		rv, err := ip.interpretExpression(right, scope, b)
		if err != nil {
			return Value{}, err
		}
		return applyBinaryOp(op, lv, rv)
	}
}

// offsetEByD implements the hard-coded `(d%e.length+e.length)%e.length`
// shortcut: a normalized, always-non-negative index into
// e, the single most common idiom in real signature-transform scripts.
func (ip *Interpreter) offsetEByD(dName, eName string, scope *Scope, b *budget) (Value, error) {
	eVal := scope.Get(eName)
	var length float64
	switch eVal.Kind() {
	case KindArray:
		length = float64(eVal.Array().Len())
	case KindString:
		length = float64(len([]rune(eVal.StringValue())))
	default:
		return Value{}, typeError(eName, "%q has no length", eName)
	}
	if length == 0 {
		return NaN(), nil
	}
	d := ToNumber(scope.Get(dName))
	r := math.Mod(math.Mod(d, length)+length, length)
	return Number(r), nil
}

// evalNew implements `new ClassName(args)` for the host classes the
// sandbox supports: Date, RegExp, Error (and its common subclasses), and
// Array. rest is the text after "new "; it returns the
// constructed value and whatever text trails the constructor call.
func (ip *Interpreter) evalNew(rest string, scope *Scope, b *budget) (Value, string, error) {
	name, after, ok := matchLeadingName(rest)
	if !ok {
		return Value{}, "", syntaxError(rest, "expected a constructor name after 'new'")
	}
	trimmed := strings.TrimLeft(after, " \t\r\n")
	var argStr, tail string
	if strings.HasPrefix(trimmed, "(") {
		inner, rem, err := SeparateAtParen(trimmed)
		if err != nil {
			return Value{}, "", err
		}
		argStr, tail = inner, rem
	} else {
		tail = after
	}
	var args []Value
	if strings.TrimSpace(argStr) != "" {
		for _, piece := range Separate(argStr, ",", 0, nil) {
			v, err := ip.interpretExpression(strings.TrimSpace(piece), scope, b)
			if err != nil {
				return Value{}, "", err
			}
			args = append(args, v)
		}
	}

	switch name {
	case "Date":
		return Date(newDateFromArgs(args)), tail, nil
	case "RegExp":
		var pattern, flags string
		if len(args) > 0 {
			pattern, _ = ToString(args[0])
		}
		if len(args) > 1 {
			flags, _ = ToString(args[1])
		}
		re, rerr := NewRegExpValue(pattern, flags)
		if rerr != nil {
			return Value{}, "", rerr
		}
		return RegExp(re), tail, nil
	case "Error", "TypeError", "RangeError", "SyntaxError", "ReferenceError":
		var msg string
		if len(args) > 0 {
			msg, _ = ToString(args[0])
		}
		o := NewObject()
		o.Object().Set("name", String(name))
		o.Object().Set("message", String(msg))
		return o, tail, nil
	case "Array":
		if len(args) == 1 && args[0].Kind() == KindNumber {
			n := toInt(args[0].NumberValue())
			elems := make([]Value, n)
			for i := range elems {
				elems[i] = Undefined
			}
			return NewArray(elems...), tail, nil
		}
		return NewArray(args...), tail, nil
	default:
		return Value{}, "", typeError(rest, "unsupported constructor %q", name)
	}
}

func newDateFromArgs(args []Value) *DateValue {
	switch len(args) {
	case 0:
		return NewDateNow()
	case 1:
		if args[0].Kind() == KindString {
			s, _ := ToString(args[0])
			return ParseDate(s)
		}
		return NewDateFromMillis(ToNumber(args[0]))
	default:
		get := func(i, def int) int {
			if i < len(args) {
				return toInt(ToNumber(args[i]))
			}
			return def
		}
		return NewDateFromParts(get(0, 1970), get(1, 0), get(2, 1), get(3, 0), get(4, 0), get(5, 0), get(6, 0))
	}
}

// tryObjectLiteral recognises inner (the contents of a leading `{...}`) as
// a plain object literal: a comma-separated list of key:value pairs at
// depth zero, where every piece splits cleanly into exactly two parts on
// the first top-level ':'. Anything
// else (a statement block) reports ok=false so the caller falls back to
// interpreting inner as a block of statements.
func tryObjectLiteral(ip *Interpreter, inner string, scope *Scope, b *budget) (Value, bool, error) {
	trimmed := strings.TrimSpace(inner)
	if trimmed == "" {
		return NewObject(), true, nil
	}
	pieces := Separate(trimmed, ",", 0, nil)
	obj := NewObject()
	any := false
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		kv := Separate(piece, ":", 1, nil)
		if len(kv) != 2 {
			return Value{}, false, nil
		}
		key := removeQuotes(strings.TrimSpace(kv[0]))
		if leadingNameRe.FindString(key) != key {
			return Value{}, false, nil
		}
		valExpr := strings.TrimSpace(kv[1])
		v, err := ip.interpretExpression(valExpr, scope, b)
		if err != nil {
			return Value{}, true, err
		}
		obj.Object().Set(key, v)
		any = true
	}
	if !any {
		return Value{}, false, nil
	}
	return obj, true, nil
}

// propertyGetIndexed reads container[key]:
// arrays and strings expose "length" plus numeric indices (out-of-range
// returns Undefined), objects look up a string key (missing returns
// Undefined), and indexing Null/Undefined itself is a TypeError.
func (ip *Interpreter) propertyGetIndexed(container Value, key Value, exprForErr string) (Value, error) {
	switch container.Kind() {
	case KindArray:
		ks, _ := ToString(key)
		if ks == "length" {
			return Number(float64(container.Array().Len())), nil
		}
		idx := toInt(ToNumber(key))
		return container.Array().Get(idx), nil
	case KindString:
		ks, _ := ToString(key)
		runes := []rune(container.StringValue())
		if ks == "length" {
			return Number(float64(len(runes))), nil
		}
		idx := toInt(ToNumber(key))
		if idx < 0 || idx >= len(runes) {
			return Undefined, nil
		}
		return String(string(runes[idx])), nil
	case KindObject:
		ks, err := ToString(key)
		if err != nil {
			return Value{}, err
		}
		return container.Object().Get(ks), nil
	case KindUndefined, KindNull:
		return Value{}, typeError(exprForErr, "cannot read properties of %s", container.Kind())
	default:
		return Undefined, nil
	}
}

// propertySetIndexed writes container[key] = v, growing a sparse array up
// to the budget's cap and raising TypeError for receivers that
// can't be indexed into at all.
func (ip *Interpreter) propertySetIndexed(container Value, key Value, v Value, b *budget) error {
	switch container.Kind() {
	case KindArray:
		idx := toInt(ToNumber(key))
		if idx < 0 {
			return rangeError("", "negative array index")
		}
		if !container.Array().Set(idx, v, b.maxArray) {
			return resourceExhausted("array growth limit exceeded")
		}
		return nil
	case KindObject:
		ks, err := ToString(key)
		if err != nil {
			return err
		}
		container.Object().Set(ks, v)
		return nil
	default:
		return typeError("", "cannot assign into %s", container.Kind())
	}
}

// assignOpTokens lists the compound-assignment operator tokens, longest
// first so "**=" isn't mistaken for "*=".
var assignOpTokens = []string{"**", "<<", ">>", "&&", "||", "??", "+", "-", "*", "/", "%", "&", "|", "^"}

// matchAssignOp recognises a (possibly compound) assignment operator at the
// start of rest, returning its token ("" for plain "="), the text after the
// "=", and whether this is really an assignment (as opposed to "==", "<=",
// etc., which must not match).
func matchAssignOp(rest string) (op string, after string, ok bool) {
	for _, tok := range assignOpTokens {
		if !strings.HasPrefix(rest, tok) {
			continue
		}
		tail := rest[len(tok):]
		if !strings.HasPrefix(tail, "=") || strings.HasPrefix(tail, "==") {
			continue
		}
		return tok, tail[1:], true
	}
	if strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==") {
		return "", rest[1:], true
	}
	return "", "", false
}

// computeAssignRHS evaluates the right-hand side of an assignment, handling
// both plain "=" and the compound forms, including the short-circuiting
// logical ones.
func (ip *Interpreter) computeAssignRHS(op string, current Value, rhsText string, scope *Scope, b *budget) (Value, error) {
	switch op {
	case "":
		return ip.interpretExpression(rhsText, scope, b)
	case "&&":
		if !ToBoolean(current) {
			return current, nil
		}
		return ip.interpretExpression(rhsText, scope, b)
	case "||":
		if ToBoolean(current) {
			return current, nil
		}
		return ip.interpretExpression(rhsText, scope, b)
	case "??":
		if !current.IsNullish() {
			return current, nil
		}
		return ip.interpretExpression(rhsText, scope, b)
	default:
		rhsVal, err := ip.interpretExpression(rhsText, scope, b)
		if err != nil {
			return Value{}, err
		}
		return applyBinaryOp(op, current, rhsVal)
	}
}

// tryAssignment recognises `name = expr`, `name OP= expr`, and the indexed
// forms `name[i] = expr` / `name[i][j] OP= expr`. Only a
// plain bare-name or chain-of-brackets LHS is supported, matching the
// original's assign regex group, which never allows a dotted member on the
// left of "=".
func (ip *Interpreter) tryAssignment(expr string, scope *Scope, b *budget) (Value, bool, error) {
	name, rest, ok := matchLeadingName(expr)
	if !ok {
		return Value{}, false, nil
	}
	var idxTexts []string
	cur := rest
	for strings.HasPrefix(cur, "[") {
		inner, after, err := SeparateAtParen(cur)
		if err != nil {
			return Value{}, false, nil
		}
		idxTexts = append(idxTexts, inner)
		cur = after
	}
	op, rhsText, ok := matchAssignOp(strings.TrimLeft(cur, " \t\r\n"))
	if !ok {
		return Value{}, false, nil
	}
	rhsText = strings.TrimSpace(rhsText)

	if len(idxTexts) == 0 {
		current, _ := scope.Lookup(name)
		newVal, err := ip.computeAssignRHS(op, current, rhsText, scope, b)
		if err != nil {
			return Value{}, true, err
		}
		scope.Set(name, newVal)
		return newVal, true, nil
	}

	base, exists := scope.Lookup(name)
	if !exists || base.IsNullish() {
		return Value{}, true, typeError(expr, "cannot assign into undefined variable %q", name)
	}
	keys := make([]Value, len(idxTexts))
	for i, t := range idxTexts {
		kv, err := ip.interpretExpression(t, scope, b)
		if err != nil {
			return Value{}, true, err
		}
		keys[i] = kv
	}
	container := base
	for i := 0; i < len(keys)-1; i++ {
		next, err := ip.propertyGetIndexed(container, keys[i], expr)
		if err != nil {
			return Value{}, true, err
		}
		container = next
	}
	lastKey := keys[len(keys)-1]
	current, _ := ip.propertyGetIndexed(container, lastKey, expr)
	newVal, err := ip.computeAssignRHS(op, current, rhsText, scope, b)
	if err != nil {
		return Value{}, true, err
	}
	if serr := ip.propertySetIndexed(container, lastKey, newVal, b); serr != nil {
		return Value{}, true, serr
	}
	return newVal, true, nil
}

// tryIndexing recognises a whole-expression `name[i][j]...` read with no
// trailing text. A name unbound in scope
// resolves to Undefined, per scope read semantics, which then raises the
// usual TypeError from propertyGetIndexed.
func (ip *Interpreter) tryIndexing(expr string, scope *Scope, b *budget) (Value, bool, error) {
	name, rest, ok := matchLeadingName(expr)
	if !ok || !strings.HasPrefix(rest, "[") {
		return Value{}, false, nil
	}
	cur := rest
	var idxTexts []string
	for strings.HasPrefix(cur, "[") {
		inner, after, err := SeparateAtParen(cur)
		if err != nil {
			return Value{}, false, nil
		}
		idxTexts = append(idxTexts, inner)
		cur = after
	}
	if strings.TrimSpace(cur) != "" {
		return Value{}, false, nil
	}
	val := scope.Get(name)
	for _, t := range idxTexts {
		kv, err := ip.interpretExpression(t, scope, b)
		if err != nil {
			return Value{}, true, err
		}
		nv, gerr := ip.propertyGetIndexed(val, kv, expr)
		if gerr != nil {
			return Value{}, true, gerr
		}
		val = nv
	}
	return val, true, nil
}

// resolveReceiver resolves the object a `.member`/`[idx]` access binds to:
// first the scope chain, then the five built-in static namespaces, then
// the lazy object-of-methods discovery, then a declared function of that
// name (so `f.call(...)` reaches it). A failed
// discovery is swallowed (receiver treated as Undefined) when nullish is
// set, matching `?.`'s short-circuit; otherwise it propagates.
func (ip *Interpreter) resolveReceiver(name string, nullish bool, scope *Scope) (Value, error) {
	if v, ok := scope.Lookup(name); ok && !v.IsUndefined() {
		return v, nil
	}
	switch name {
	case "String", "Math", "Array", "Date", "RegExp":
		return Value{kind: KindStaticNamespace, s: name}, nil
	}
	obj, err := ip.extractObject(name)
	if err != nil {
		if fv, ferr := ip.ExtractFunction(name); ferr == nil {
			return Func(fv), nil
		}
		if nullish {
			return Undefined, nil
		}
		return Value{}, err
	}
	return obj, nil
}

// splitMember returns the member-name text up to (but not including) the
// next unescaped '(' in rest, and everything from there on, matching the
// original's `[^(]+` member capture.
func splitMember(rest string) (member string, after string) {
	idx := strings.IndexByte(rest, '(')
	if idx < 0 {
		return rest, ""
	}
	return rest[:idx], rest[idx:]
}

// tryAttribute recognises `name.member`, `name?.member`, and `name[idx]`
// when followed by either a call `(...)` or nothing special to indexing
//. Exactly one accessor is resolved per
// call; any further trailing text is re-dispatched through a named temp
// object, the same recursive pattern every other branch in
// interpretStatement uses.
func (ip *Interpreter) tryAttribute(expr string, scope *Scope, b *budget) (Value, bool, error) {
	name, rest, ok := matchLeadingName(expr)
	if !ok {
		return Value{}, false, nil
	}

	var nullish bool
	var member, afterMember string
	switch {
	case strings.HasPrefix(rest, "?."):
		nullish = true
		member, afterMember = splitMember(rest[2:])
	case strings.HasPrefix(rest, "."):
		member, afterMember = splitMember(rest[1:])
	case strings.HasPrefix(rest, "["):
		inner, after, err := SeparateAtParen(rest)
		if err != nil {
			return Value{}, true, err
		}
		idxVal, ierr := ip.interpretExpression(inner, scope, b)
		if ierr != nil {
			return Value{}, true, ierr
		}
		memberStr, serr := ToString(idxVal)
		if serr != nil {
			return Value{}, true, serr
		}
		member, afterMember = memberStr, after
	default:
		return Value{}, false, nil
	}
	if member == "" {
		return Value{}, false, nil
	}

	afterMember = strings.TrimLeft(afterMember, " \t\r\n")
	var argStr *string
	remaining := afterMember
	if strings.HasPrefix(afterMember, "(") {
		inner, after, err := SeparateAtParen(afterMember)
		if err != nil {
			return Value{}, true, err
		}
		argStr = &inner
		remaining = after
	}

	obj, rerr := ip.resolveReceiver(name, nullish, scope)
	if rerr != nil {
		return Value{}, true, rerr
	}
	if nullish && obj.IsUndefined() {
		return Undefined, true, nil
	}

	var result Value
	if argStr == nil {
		v, gerr := ip.propertyRead(obj, member)
		if gerr != nil {
			return Value{}, true, gerr
		}
		result = v
	} else {
		var args []Value
		if strings.TrimSpace(*argStr) != "" {
			for _, piece := range Separate(*argStr, ",", 0, nil) {
				av, aerr := ip.interpretExpression(strings.TrimSpace(piece), scope, b)
				if aerr != nil {
					return Value{}, true, aerr
				}
				args = append(args, av)
			}
		}
		v, cerr := ip.callMethod(obj, member, args, scope, b, expr)
		if cerr != nil {
			return Value{}, true, cerr
		}
		result = v
	}

	if remaining == "" {
		return result, true, nil
	}
	v, err := ip.interpretStatement(ip.namedObject(result)+remaining, scope, b)
	return v, true, err
}

// tryFunctionCall recognises a whole-expression `name(args)` call with no
// trailing text: a plain callable bound
// in scope, or a top-level `function name(...)` declaration discovered
// lazily from the program text.
func (ip *Interpreter) tryFunctionCall(expr string, scope *Scope, b *budget) (Value, bool, error) {
	name, rest, ok := matchLeadingName(expr)
	if !ok || !strings.HasPrefix(rest, "(") {
		return Value{}, false, nil
	}
	argStr, after, err := SeparateAtParen(rest)
	if err != nil {
		return Value{}, false, nil
	}
	if strings.TrimSpace(after) != "" {
		return Value{}, false, nil
	}
	var args []Value
	if strings.TrimSpace(argStr) != "" {
		for _, piece := range Separate(argStr, ",", 0, nil) {
			av, aerr := ip.interpretExpression(strings.TrimSpace(piece), scope, b)
			if aerr != nil {
				return Value{}, true, aerr
			}
			args = append(args, av)
		}
	}
	if fv, ok := scope.Lookup(name); ok && fv.Kind() == KindFunction {
		v, cerr := ip.invoke(fv.FunctionValue(), Undefined, args, b)
		return v, true, cerr
	}
	fv, ferr := ip.ExtractFunction(name)
	if ferr != nil {
		return Value{}, true, ferr
	}
	v, cerr := ip.invoke(fv, Undefined, args, b)
	return v, true, cerr
}
