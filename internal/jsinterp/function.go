package jsinterp

import (
	"fmt"
	"regexp"
	"strings"
)

// FunctionValue is a callable closure: parameter names, body text, and the
// captured scope chain in effect where the function was discovered or
// declared. native is set instead of
// (params, body) for host-registered Go functions.
type FunctionValue struct {
	name          string
	displayName   string
	params        []string
	body          string
	capturedScope *Scope
	native        func(ip *Interpreter, this Value, args []Value) (Value, error)
}

// DisplayName names the closure for typeof/error messages, preferring an
// explicit display name over the declared name over "anonymous".
func (f *FunctionValue) DisplayName() string {
	if f == nil {
		return "anonymous"
	}
	if f.displayName != "" {
		return f.displayName
	}
	if f.name != "" {
		return f.name
	}
	return "anonymous"
}

// NativeFunction wraps a host Go function as a callable Value, for globals
// passed into Interpreter.Call.
func NativeFunction(name string, fn func(ip *Interpreter, this Value, args []Value) (Value, error)) Value {
	return Func(&FunctionValue{name: name, displayName: name, native: fn})
}

var anonFuncRe = regexp.MustCompile(`function\s*\(([^)]*)\)\s*\{`)

// nameFuncRe builds the per-name function-discovery regex matching any of:
// a function declaration, `NAME = function(...)`, or
// `var|let|const NAME = function(...)`.
func nameFuncRe(name string) *regexp.Regexp {
	q := regexp.QuoteMeta(name)
	pattern := `(?s)(?:function\s+` + q +
		`|[{;,]\s*` + q + `\s*=\s*function` +
		`|(?:var|const|let)\s+` + q + `\s*=\s*function` +
		`)\s*\(([^)]*)\)\s*(\{.+)`
	return regexp.MustCompile(pattern)
}

// buildArgList splits a parameter-list string on commas at depth zero,
// rejecting empty names.
func buildArgList(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	pieces := Separate(text, ",", 0, nil)
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, syntaxError(text, "missing argument name")
		}
		out = append(out, p)
	}
	return out, nil
}

// extractFunctionCode locates a top-level function declaration by name and
// returns its parameter list and exact (brace-balanced) body text.
func (ip *Interpreter) extractFunctionCode(name string) ([]string, string, error) {
	re := nameFuncRe(name)
	m := re.FindStringSubmatch(ip.code)
	if m == nil {
		return nil, "", referenceError(name, "could not find JS function %q", name)
	}
	argsText, codeRaw := m[1], m[2]
	body, _, err := SeparateAtParen(codeRaw)
	if err != nil {
		return nil, "", syntaxError(name, "malformed body for function %q: %v", name, err)
	}
	args, err := buildArgList(argsText)
	if err != nil {
		return nil, "", err
	}
	return args, body, nil
}

// liftAnonymousFunctions finds every `function(args){...}` occurring in
// code, recursively lifts it to a synthetic global binding (capturing
// scope), and replaces its span with the synthetic name: inner anonymous
// function expressions are lifted to fresh synthetic names before outer
// interpretation, so they still capture the enclosing scope.
func (ip *Interpreter) liftAnonymousFunctions(code string, scope *Scope) string {
	for {
		loc := anonFuncRe.FindStringSubmatchIndex(code)
		if loc == nil {
			return code
		}
		matchStart, braceStart := loc[0], loc[1]-1
		argsText := code[loc[2]:loc[3]]
		body, _, err := SeparateAtParen(code[braceStart:])
		if err != nil {
			// leave malformed text alone; the statement evaluator will
			// surface a SyntaxError when it actually tries to use it.
			return code
		}
		args, _ := buildArgList(argsText)
		innerBody := ip.liftAnonymousFunctions(body, scope)
		fv := &FunctionValue{params: args, body: innerBody, capturedScope: scope}
		synthetic := ip.namedObject(Func(fv))

		// Recompute the consumed span's end: braceStart + len(matched "{...}")
		restAfterBody := code[braceStart:]
		consumed := len(restAfterBody) - len(trimLeadingMatchedBody(restAfterBody, body))
		end := braceStart + consumed
		code = code[:matchStart] + synthetic + code[end:]
	}
}

// trimLeadingMatchedBody returns the remainder of s after the balanced
// {...} group that SeparateAtParen(s) parsed into body, used to compute
// how many bytes of s the matched function body actually consumed.
func trimLeadingMatchedBody(s string, body string) string {
	_, rest, err := SeparateAtParen(s)
	if err != nil {
		return s
	}
	return rest
}

// namedObject mints a synthetic identifier and binds it in the
// interpreter's global scope frame, mirroring _named_object.
func (ip *Interpreter) namedObject(v Value) string {
	ip.namedObjCounter++
	name := fmt.Sprintf("__youtube_dl_jsinterp_obj%d", ip.namedObjCounter)
	ip.globals.Declare(name, v)
	return name
}

// buildFunction assembles a FunctionValue from a name, parameter list, and
// already brace-stripped body text. Nested anonymous functions stay in the
// body text; statement.go's function-literal branch builds each one when it
// is evaluated, so it captures the scope of the call evaluating it.
func (ip *Interpreter) buildFunction(name string, params []string, body string, scope *Scope) *FunctionValue {
	return &FunctionValue{name: name, params: params, body: body, capturedScope: scope}
}

// ExtractFunction resolves funcname to a reusable closure. A
// dotted name ("obj.method") resolves through the object-of-methods
// discovery instead of a plain function declaration, so a caller can enter
// the program directly through an object literal's method.
func (ip *Interpreter) ExtractFunction(funcname string) (*FunctionValue, error) {
	if fv, ok := ip.functions[funcname]; ok {
		return fv, nil
	}
	if dot := strings.IndexByte(funcname, '.'); dot >= 0 {
		objName, member := funcname[:dot], funcname[dot+1:]
		obj, err := ip.extractObject(objName)
		if err != nil {
			return nil, err
		}
		if obj.Kind() != KindObject {
			return nil, referenceError(funcname, "%q is not an object", objName)
		}
		v := obj.Object().Get(member)
		if v.Kind() != KindFunction {
			return nil, referenceError(funcname, "could not find method %q on %q", member, objName)
		}
		ip.functions[funcname] = v.FunctionValue()
		return v.FunctionValue(), nil
	}
	params, body, err := ip.extractFunctionCode(funcname)
	if err != nil {
		return nil, err
	}
	fv := ip.buildFunction(funcname, params, body, ip.globals)
	ip.functions[funcname] = fv
	return fv, nil
}

// funcNameReStr matches a bare or quoted identifier used as an object key
//.
var funcNameReStr = `(?:` + nameRePattern + `|"` + nameRePattern + `"|'` + nameRePattern + `')`

const nameRePattern = `[a-zA-Z_$][\w$]*`

// extractObject locates `NAME = { k1: function(a){...}, ... };` and
// returns an Object value whose members are the parsed closures.
func (ip *Interpreter) extractObject(objname string) (Value, error) {
	if v, ok := ip.objects[objname]; ok {
		return v, nil
	}
	outerPattern := `(?s)` + nameRePattern + `\s*\.\s*` + regexp.QuoteMeta(objname) +
		`|` + regexp.QuoteMeta(objname) + `\s*=\s*\{\s*((?:` + funcNameReStr + `\s*:\s*function\s*\(.*?\)\s*\{.*?\}(?:,\s*)?)*)\}\s*;`
	re := regexp.MustCompile(outerPattern)
	matches := re.FindAllStringSubmatch(ip.code, -1)
	var fields string
	for _, m := range matches {
		if len(m) > 1 && strings.TrimSpace(m[1]) != "" {
			fields = m[1]
			break
		}
	}
	if fields == "" {
		return Value{}, referenceError(objname, "could not find object %q", objname)
	}
	memberRe := regexp.MustCompile(`(?s)(` + funcNameReStr + `)\s*:\s*function\s*\(([^)]*)\)\s*\{`)
	obj := NewObject()
	rest := fields
	offset := 0
	for {
		loc := memberRe.FindStringSubmatchIndex(rest[offset:])
		if loc == nil {
			break
		}
		keyRaw := rest[offset+loc[2] : offset+loc[3]]
		argsText := rest[offset+loc[4] : offset+loc[5]]
		braceStart := offset + loc[1] - 1
		body, after, err := SeparateAtParen(rest[braceStart:])
		if err != nil {
			break
		}
		args, err := buildArgList(argsText)
		if err != nil {
			return Value{}, err
		}
		key := removeQuotes(keyRaw)
		fv := ip.buildFunction(key, args, body, ip.globals)
		obj.Object().Set(key, Func(fv))
		offset = len(rest) - len(after)
	}
	ip.objects[objname] = obj
	return obj, nil
}

func removeQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
