package jsinterp

import (
	"regexp"
	"strings"
)

// RegExpValue is the RegExp host object. It ports youtube_dl/jsinterp.py's JS_RegExp: a pattern and a
// flag set, lazily compiled to a Go *regexp.Regexp (RE2) and cached on first
// use.
type RegExpValue struct {
	Source string
	Flags  string

	global     bool
	ignoreCase bool
	multiline  bool
	dotAll     bool
	sticky     bool // y: bookkeeping only, RE2 has no anchored-search mode
	hasIndices bool // d: bookkeeping only

	compiled *regexp.Regexp
}

// inlineFlagGroupRe strips every `(?i)`-style inline flag group embedded
// anywhere by the source script, which RE2 would otherwise interpret differently than
// V8 for doubled or redundant flag groups.
var inlineFlagGroupRe = regexp.MustCompile(`\(\?[a-zA-Z]+\)`)

// sanitizePattern applies the compatibility shims calls out: escape
// doubled `[[` (some RE2 builds reject a literal `[` opening a class that
// itself starts with `[`), and neutralise embedded inline-flag groups that
// the source may carry from a prior (already-applied) flag translation.
func sanitizePattern(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "[[", `[\[`)
	pattern = inlineFlagGroupRe.ReplaceAllString(pattern, "")
	return pattern
}

// NewRegExpValue parses a JS flag string and compiles pattern, applying sanitizePattern first.
// Unsupported JS-only constructs (`\p{...}`, lookbehind) surface as
// SyntaxError at compile time.
func NewRegExpValue(pattern, flags string) (*RegExpValue, *Error) {
	re := &RegExpValue{Source: pattern, Flags: flags}
	for _, f := range flags {
		switch f {
		case 'g':
			re.global = true
		case 'i':
			re.ignoreCase = true
		case 'm':
			re.multiline = true
		case 's':
			re.dotAll = true
		case 'y':
			re.sticky = true
		case 'd':
			re.hasIndices = true
		case 'u', 'v':
			// unicode mode bookkeeping only; Go's regexp is unicode-aware
			// by default so there is nothing further to toggle.
		default:
			return nil, syntaxError(pattern, "unsupported regexp flag %q", string(f))
		}
	}
	if err := re.compile(); err != nil {
		return nil, err
	}
	return re, nil
}

func (re *RegExpValue) compile() *Error {
	var prefix strings.Builder
	prefix.WriteString("(?")
	if re.ignoreCase {
		prefix.WriteByte('i')
	}
	if re.multiline {
		prefix.WriteByte('m')
	}
	if re.dotAll {
		prefix.WriteByte('s')
	}
	prefix.WriteByte(')')
	body := sanitizePattern(re.Source)
	flagPrefix := prefix.String()
	if flagPrefix == "(?)" {
		flagPrefix = ""
	}
	compiled, err := regexp.Compile(flagPrefix + body)
	if err != nil {
		return syntaxError(re.Source, "invalid regular expression: %v", err)
	}
	re.compiled = compiled
	return nil
}

// Matcher returns the cached compiled matcher, compiling it first if this
// RegExpValue was constructed some other way than NewRegExpValue.
func (re *RegExpValue) Matcher() (*regexp.Regexp, *Error) {
	if re.compiled == nil {
		if err := re.compile(); err != nil {
			return nil, err
		}
	}
	return re.compiled, nil
}

// Dump renders the RegExp back to a JS-literal-like form, e.g. "/ab+c/gi"
//.
func (re *RegExpValue) Dump() string {
	return "/" + re.Source + "/" + re.Flags
}

// replaceCount returns how many matches Replace should rewrite: all of them
// when the global flag is set, otherwise just the first.
func (re *RegExpValue) replaceCount() int {
	if re.global {
		return -1
	}
	return 1
}

// expandJSTemplate rewrites a JS replacement template ("Z$1", "$&", "$$")
// into Go's regexp ReplaceAll template syntax ("Z${1}", "${0}", "$$"), the
// minimal subset scenario 7 and common player scripts rely on.
func expandJSTemplate(tmpl string) string {
	var out strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' || i+1 >= len(tmpl) {
			out.WriteByte(c)
			continue
		}
		next := tmpl[i+1]
		switch {
		case next == '$':
			out.WriteString("$$")
			i++
		case next == '&':
			out.WriteString("${0}")
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
				j++
			}
			out.WriteString("${" + tmpl[i+1:j] + "}")
			i = j - 1
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// Replace implements String.prototype.replace/replaceAll when the pattern
// side is a RegExp. count<0 means "all matches" (ReplaceAll or a
// global-flagged RegExp.replace); count==1 replaces the first match only.
func (re *RegExpValue) Replace(s, repl string, count int) (string, *Error) {
	m, err := re.Matcher()
	if err != nil {
		return "", err
	}
	tmpl := expandJSTemplate(repl)
	if count < 0 {
		return string(m.ReplaceAll([]byte(s), []byte(tmpl))), nil
	}
	replaced := 0
	out := m.ReplaceAllFunc([]byte(s), func(match []byte) []byte {
		if replaced >= count {
			return match
		}
		replaced++
		return m.ReplaceAll(match, []byte(tmpl))
	})
	return string(out), nil
}

// Split implements String.prototype.split with a RegExp separator: skip
// zero-width matches at position 0 and stop once past the end of the string
//.
func (re *RegExpValue) Split(s string, limit int) ([]string, *Error) {
	m, err := re.Matcher()
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []string{}, nil
	}
	var out []string
	pos := 0
	for pos <= len(s) {
		loc := m.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if start == end {
			if start == pos && pos == 0 {
				pos++
				continue
			}
			if start >= len(s) {
				break
			}
		}
		if start == end && start == pos {
			pos++
			continue
		}
		out = append(out, s[pos:start])
		pos = end
		if start == end {
			pos++
		}
		if limit > 0 && len(out) >= limit {
			return out[:limit], nil
		}
	}
	out = append(out, s[min(pos, len(s)):])
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
