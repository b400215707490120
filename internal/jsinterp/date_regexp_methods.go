package jsinterp

// callRegExpMethod implements the small set of RegExp instance methods
// player scripts occasionally call directly, as opposed to via
// String.prototype.replace/split.
func callRegExpMethod(this Value, member string, args []Value, exprForErr string) (Value, error) {
	re := this.RegExpValue()
	switch member {
	case "test":
		if len(args) == 0 {
			return Bool(false), nil
		}
		s, err := ToString(args[0])
		if err != nil {
			return Value{}, err
		}
		m, merr := re.Matcher()
		if merr != nil {
			return Value{}, merr
		}
		return Bool(m.MatchString(s)), nil
	case "exec":
		if len(args) == 0 {
			return Null, nil
		}
		s, err := ToString(args[0])
		if err != nil {
			return Value{}, err
		}
		m, merr := re.Matcher()
		if merr != nil {
			return Value{}, merr
		}
		groups := m.FindStringSubmatch(s)
		if groups == nil {
			return Null, nil
		}
		elems := make([]Value, len(groups))
		for i, g := range groups {
			elems[i] = String(g)
		}
		return NewArray(elems...), nil
	default:
		return Value{}, typeError(exprForErr, "unsupported RegExp method %q", member)
	}
}

// callDateMethod implements the Date instance methods names:
// valueOf/getTime and toString.
func callDateMethod(this Value, member string, args []Value, exprForErr string) (Value, error) {
	d := this.DateValue()
	switch member {
	case "valueOf", "getTime":
		return Number(d.valueOf()), nil
	case "toString":
		return String(d.toString()), nil
	default:
		return Value{}, typeError(exprForErr, "unsupported Date method %q", member)
	}
}
