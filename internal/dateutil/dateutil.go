// Package dateutil normalizes all calendar-date handling. Every date that is
// persisted or compared anywhere in the app goes through these helpers; raw
// timestamp arithmetic against day boundaries elsewhere is a bug.
package dateutil

import "time"

// DayLayout is the canonical YYYY-MM-DD form used for day keys.
const DayLayout = "2006-01-02"

// Today returns the current local calendar date truncated to midnight.
func Today() time.Time {
	return Midnight(time.Now())
}

// TodayKey returns today's date as a YYYY-MM-DD string.
func TodayKey() string {
	return Today().Format(DayLayout)
}

// Midnight truncates t to local midnight.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey formats t as a YYYY-MM-DD string.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseLocalDate parses a YYYY-MM-DD string into a local-midnight time.
// Returns ok=false for malformed input instead of an error; history rows may
// carry legacy garbage and callers treat that as "no usable date".
func ParseLocalDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the whole-day count from a to b, ignoring time of day.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ma := Midnight(a)
	mb := Midnight(b)
	return int(mb.Sub(ma).Hours() / 24)
}

// StartOfWeek returns the Monday midnight at or before t (ISO week start).
func StartOfWeek(t time.Time) time.Time {
	m := Midnight(t)
	offset := (int(m.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return m.AddDate(0, 0, -offset)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// NextMidnight returns the first instant of the calendar day after t.
func NextMidnight(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, 1)
}
