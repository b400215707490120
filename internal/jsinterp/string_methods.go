package jsinterp

import "strings"

// This file ports the string-typed branches of youtube_dl/jsinterp.py's
// eval_method: split, slice, charCodeAt,
// replace, replaceAll, indexOf.

func callStringMethod(this Value, member string, args []Value, exprForErr string) (Value, error) {
	s := this.StringValue()
	switch member {
	case "split":
		if len(args) == 0 || args[0].IsUndefined() {
			return NewArray(String(s)), nil
		}
		limit := -1
		if len(args) > 1 && !args[1].IsUndefined() {
			limit = toInt(ToNumber(args[1]))
		}
		if args[0].Kind() == KindRegExp {
			parts, err := args[0].RegExpValue().Split(s, limit)
			if err != nil {
				return Value{}, err
			}
			elems := make([]Value, len(parts))
			for i, p := range parts {
				elems[i] = String(p)
			}
			return NewArray(elems...), nil
		}
		sep, err := ToString(args[0])
		if err != nil {
			return Value{}, err
		}
		var parts []string
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		if limit >= 0 && limit < len(parts) {
			parts = parts[:limit]
		}
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i] = String(p)
		}
		return NewArray(elems...), nil

	case "slice":
		runes := []rune(s)
		start, end := normalizeSliceBounds(len(runes), args)
		return String(string(runes[start:end])), nil

	case "charCodeAt":
		idx := 0
		if len(args) > 0 {
			idx = toInt(ToNumber(args[0]))
		}
		runes := []rune(s)
		if idx < 0 || idx >= len(runes) {
			return NaN(), nil
		}
		return Number(float64(runes[idx])), nil

	case "replace", "replaceAll":
		if len(args) < 2 {
			return Value{}, typeError(exprForErr, "%s requires a pattern and a replacement", member)
		}
		count := 1
		if member == "replaceAll" {
			count = -1
		}
		repl, err := ToString(args[1])
		if err != nil {
			return Value{}, err
		}
		if args[0].Kind() == KindRegExp {
			re := args[0].RegExpValue()
			c := count
			if member == "replace" && re.global {
				c = -1
			}
			out, rerr := re.Replace(s, repl, c)
			if rerr != nil {
				return Value{}, rerr
			}
			return String(out), nil
		}
		pattern, err := ToString(args[0])
		if err != nil {
			return Value{}, err
		}
		if count < 0 {
			return String(strings.ReplaceAll(s, pattern, repl)), nil
		}
		return String(strings.Replace(s, pattern, repl, 1)), nil

	case "indexOf":
		if len(args) == 0 {
			return Number(-1), nil
		}
		sub, err := ToString(args[0])
		if err != nil {
			return Value{}, err
		}
		start := 0
		if len(args) > 1 {
			start = toInt(ToNumber(args[1]))
			if start < 0 {
				start = 0
			}
		}
		runes := []rune(s)
		if start > len(runes) {
			return Number(-1), nil
		}
		idx := strings.Index(string(runes[start:]), sub)
		if idx < 0 {
			return Number(-1), nil
		}
		return Number(float64(start + len([]rune(string(runes[start:])[:idx])))), nil

	default:
		return Value{}, typeError(exprForErr, "unsupported string method %q", member)
	}
}
