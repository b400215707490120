package jsinterp

import (
	"strings"
	"unicode"
)

// This file ports youtube_dl/jsinterp.py's JSInterpreter._separate: a
// single paren-aware, quote-aware, regex-aware, comment-aware splitting
// primitive that every higher-level parsing rule is expressed in terms
// of. Everything else in this package either calls Separate directly or
// is built from SeparateAtParen / SeparateAtOperator below it.

const quoteChars = "'\"/"

var matchingParens = map[rune]rune{'(': ')', '{': '}', '[': ']'}

// opChars is the set of characters that can begin an operator token, plus
// the statement/array separators ';', ',', '[' that also gate the
// regex-vs-division disambiguation (mirrors OP_CHARS,
// computed once from _all_operators()).
var opChars = buildOpChars()

func buildOpChars() map[rune]bool {
	m := map[rune]bool{';': true, ',': true, '[': true}
	for _, op := range opPrecedence {
		r := []rune(op)
		if len(r) > 0 && !unicode.IsLetter(r[0]) {
			m[r[0]] = true
		}
	}
	for _, op := range unaryOperators {
		r := []rune(op)
		if len(r) > 0 && !unicode.IsLetter(r[0]) {
			m[r[0]] = true
		}
	}
	return m
}

func isOpChar(r rune) bool { return opChars[r] }

// Separate splits expr on delim at bracket/quote/regex/comment depth zero.
// maxSplit <= 0 means unlimited. skipDelims lists longer strings that begin
// with delim but must not be treated as a delim match (e.g. "<<" when
// splitting on "<", so binary shift isn't mistaken for two comparisons).
func Separate(expr string, delim string, maxSplit int, skipDelims []string) []string {
	if expr == "" {
		return nil
	}
	r := []rune(expr)
	d := []rune(delim)
	delimLen := len(d) - 1
	n := len(r)

	counters := map[rune]int{')': 0, '}': 0, ']': 0}
	var result []string
	start, pos, splits := 0, 0, 0
	var inQuote rune // 0 == none
	escaping := false
	afterOp := true
	inRegexCharGroup := false
	skipping := 0
	var skipTxt [2]int
	haveSkipTxt := false

	for i := 0; i < n; i++ {
		char := r[i]
		if haveSkipTxt && i <= skipTxt[1] {
			continue
		}
		parenDelta := 0
		if inQuote == 0 {
			if char == '/' && i+1 < n && r[i+1] == '*' {
				rest := string(r[i:])
				p := strings.Index(rest, "*/")
				if p >= 2 {
					skipTxt = [2]int{i, i + p + 1}
					haveSkipTxt = true
					continue
				}
			}
			if close, ok := matchingParens[char]; ok {
				counters[close]++
				parenDelta = 1
			} else if _, ok := counters[char]; ok {
				counters[char]--
				parenDelta = -1
			}
		}
		if !escaping {
			if strings.ContainsRune(quoteChars, char) && (inQuote == char || inQuote == 0) {
				if inQuote != 0 || afterOp || char != '/' {
					if inQuote != 0 && !inRegexCharGroup {
						inQuote = 0
					} else {
						inQuote = char
					}
				}
			} else if inQuote == '/' && (char == '[' || char == ']') {
				inRegexCharGroup = char == '['
			}
		}
		escaping = !escaping && inQuote != 0 && char == '\\'
		afterOp = inQuote == 0 && (isOpChar(char) || parenDelta > 0 || (afterOp && unicode.IsSpace(char)))

		anyCounters := counters[')'] != 0 || counters['}'] != 0 || counters[']'] != 0
		if char != d[pos] || anyCounters || inQuote != 0 {
			pos, skipping = 0, 0
			continue
		}
		if skipping > 0 {
			skipping--
			continue
		}
		if pos == 0 && len(skipDelims) > 0 {
			here := string(r[i:])
			for _, s := range skipDelims {
				if s != "" && strings.HasPrefix(here, s) {
					skipping = len([]rune(s)) - 1
					break
				}
			}
			if skipping > 0 {
				continue
			}
		}
		if pos < delimLen {
			pos++
			continue
		}
		if haveSkipTxt && skipTxt[0] >= start && skipTxt[1] <= i-delimLen {
			result = append(result, string(r[start:skipTxt[0]])+string(r[skipTxt[1]+1:i-delimLen]))
		} else {
			result = append(result, string(r[start:i-delimLen]))
		}
		haveSkipTxt = false
		start, pos = i+1, 0
		splits++
		if maxSplit > 0 && splits >= maxSplit {
			break
		}
	}
	if haveSkipTxt && skipTxt[0] >= start {
		result = append(result, string(r[start:skipTxt[0]])+string(r[skipTxt[1]+1:]))
	} else {
		result = append(result, string(r[start:]))
	}
	return result
}

// SeparateAtParen splits "(inner)rest", "{inner}rest" or "[inner]rest" into
// (inner, rest) by taking the first balanced group. An optional explicit
// delimiter replaces the closing bracket implied by expr's first character:
// expr is then split, untrimmed, at the first top-level occurrence of that
// delimiter, and its first character is dropped from inner.
func SeparateAtParen(expr string, delim ...string) (inner string, rest string, err error) {
	text := strings.TrimSpace(expr)
	var closeStr string
	if len(delim) > 0 && delim[0] != "" {
		text, closeStr = expr, delim[0]
	} else {
		r := []rune(text)
		if len(r) == 0 {
			return "", "", syntaxError(expr, "empty expression, expected an opening bracket")
		}
		closeCh, ok := matchingParens[r[0]]
		if !ok {
			return "", "", syntaxError(expr, "expected '(', '{' or '[' at start of expression")
		}
		closeStr = string(closeCh)
	}
	parts := Separate(text, closeStr, 1, nil)
	if len(parts) < 2 || parts[0] == "" {
		return "", "", syntaxError(expr, "no terminating %q", closeStr)
	}
	first := []rune(parts[0])
	return strings.TrimSpace(string(first[1:])), strings.TrimSpace(parts[1]), nil
}

// skipDelimsFor returns the longer-operator strings that must not be
// mistaken for op when scanning.
func skipDelimsFor(op string) []string {
	switch op {
	case "<":
		return []string{"<<"}
	case ">":
		return []string{">>"}
	case "*":
		return []string{"**"}
	case "?":
		return []string{"??", "?."}
	default:
		return nil
	}
}

var allOperatorsOrder = func() []string {
	out := make([]string, 0, len(opPrecedence)+len(unaryOperators))
	out = append(out, opPrecedence...)
	out = append(out, unaryOperators...)
	return out
}()

// SeparateAtOperator tries each operator in precedence order (loosest
// first), splitting on the first one that actually occurs at depth zero.
// It resolves the unary/binary ambiguity of + and - by reabsorbing split
// points that were really a unary sign: a piece immediately to the left of
// the match that is empty (consecutive sign chars, "a--b") or ends in an
// operator character (a sign glued to a preceding operator, "a*-b") is
// merged back into the right-hand text instead of accepted as a split,
// exactly reproducing the corner cases named in (a*-b, a--b,
// a+ +b) though via direct text reconstruction rather than // sign-parity bookkeeping — see .
func SeparateAtOperator(expr string) (op string, left string, right string, ok bool) {
	for _, o := range allOperatorsOrder {
		skip := skipDelimsFor(o)
		parts := Separate(expr, o, 0, skip)
		if len(parts) < 2 {
			continue
		}
		rightExpr := parts[len(parts)-1]
		leftParts := append([]string(nil), parts[:len(parts)-1]...)

		if o == "+" || o == "-" {
			for i := range leftParts {
				leftParts[i] = strings.TrimSpace(leftParts[i])
			}
			for len(leftParts) > 0 {
				last := leftParts[len(leftParts)-1]
				endsInOpChar := last != "" && isOpChar([]rune(last)[len([]rune(last))-1])
				if last == "" || endsInOpChar {
					leftParts = leftParts[:len(leftParts)-1]
					rightExpr = last + o + rightExpr
					continue
				}
				break
			}
			if len(leftParts) == 0 {
				continue
			}
		}

		return o, strings.Join(leftParts, o), rightExpr, true
	}
	return "", "", "", false
}
