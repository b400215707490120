package jsinterp

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DateValue is the Date host object: an epoch-milliseconds
// integer, or NaN if the value is invalid ("Invalid Date").
type DateValue struct {
	ms    float64 // milliseconds since epoch, UTC
	valid bool
}

// NewDateNow returns the current instant, for `new Date()` and `Date.now()`.
func NewDateNow() *DateValue {
	return &DateValue{ms: float64(nowUnixMilli()), valid: true}
}

// nowUnixMilli is split out so tests can see the only place real wall-clock
// time enters this package: Date is the one host object allowed to read
// real time, backing `new Date()` with no arguments.
func nowUnixMilli() int64 { return time.Now().UnixMilli() }

// NewDateFromMillis builds a Date from an already-computed epoch-ms value,
// for `new Date(ms)`.
func NewDateFromMillis(ms float64) *DateValue {
	if math.IsNaN(ms) {
		return &DateValue{valid: false}
	}
	return &DateValue{ms: ms, valid: true}
}

// NewDateFromParts builds a Date from `new Date(y,m,d,h,mi,s,ms)` fields,
// using JS's 0-based month and UTC semantics.
func NewDateFromParts(year, month, day, hour, minute, second, millis int) *DateValue {
	t := time.Date(year, time.Month(month+1), day, hour, minute, second, millis*1e6, time.UTC)
	return &DateValue{ms: float64(t.UnixMilli()), valid: true}
}

// dateParseLayouts lists the handful of common formats `Date.parse`/the
// string constructor best-effort-parses.
var dateParseLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.ANSIC,
}

// ParseDate implements `Date.parse(str)` / `new Date(str)`: best-effort
// parsing against dateParseLayouts, NaN (invalid Date) on no match.
func ParseDate(s string) *DateValue {
	s = strings.TrimSpace(s)
	for _, layout := range dateParseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &DateValue{ms: float64(t.UnixMilli()), valid: true}
		}
	}
	return &DateValue{valid: false}
}

// valueOf returns the Date's epoch-milliseconds number, or NaN.
func (d *DateValue) valueOf() float64 {
	if d == nil || !d.valid {
		return nan
	}
	return d.ms
}

// toString renders the Date the way JS_Date.__str__ does:
// an RFC1123-ish fixed format, or "Invalid Date".
func (d *DateValue) toString() string {
	if d == nil || !d.valid {
		return "Invalid Date"
	}
	t := time.UnixMilli(int64(d.ms)).UTC()
	return t.Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}

// Dump renders the Date back to a JS-literal-like constructor call.
func (d *DateValue) Dump() string {
	if d == nil || !d.valid {
		return "(new Date(NaN))"
	}
	return fmt.Sprintf("(new Date(%d))", int64(d.ms))
}

// dateUTC implements `Date.UTC(y, m, d, h, mi, s, ms)` with JS's defaulting
// rules: month defaults to 0, day to 1, the rest to 0.
func dateUTC(args []Value) float64 {
	get := func(i int, def int) int {
		if i < len(args) && !args[i].IsUndefined() {
			return int(ToNumber(args[i]))
		}
		return def
	}
	year := get(0, 1970)
	month := get(1, 0)
	day := get(2, 1)
	hour := get(3, 0)
	minute := get(4, 0)
	second := get(5, 0)
	millis := get(6, 0)
	return NewDateFromParts(year, month, day, hour, minute, second, millis).ms
}
