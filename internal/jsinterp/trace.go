package jsinterp

import (
	"strings"

	"github.com/tidwall/sjson"
)

// TraceFunc is the debug-trace hook named in : invoked at every
// statement entry when tracing is enabled, carrying the current recursion
// depth and a human-readable message. It ports Debugger
// class, which gated a similar write() behind a package-level ENABLED
// flag; here it is an instance-level callback instead of a global.
type TraceFunc func(depth int, message string)

// NDJSONTrace returns a TraceFunc that appends one JSON object per line to
// w, patching in "depth" and "stmt" fields with sjson rather than
// round-tripping a struct through encoding/json.
func NDJSONTrace(w interface{ Write([]byte) (int, error) }) TraceFunc {
	return func(depth int, message string) {
		line, err := sjson.Set("{}", "depth", depth)
		if err != nil {
			return
		}
		line, err = sjson.Set(line, "stmt", message)
		if err != nil {
			return
		}
		w.Write([]byte(line + "\n"))
	}
}

func truncateForTrace(s string, left int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= left {
		return string(r)
	}
	return string(r[:left]) + "..."
}

// trace calls fn if non-nil, mirroring Debugger.write's truncate-and-join
// shape but simplified to a single statement string.
func (ip *Interpreter) trace(depth int, stmt string) {
	if ip.onTrace == nil {
		return
	}
	if strings.TrimSpace(stmt) == "" {
		return
	}
	ip.onTrace(depth, truncateForTrace(stmt, 80))
}
