package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage format for task dates.
// Dates in this layout sort lexicographically in chronological order.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight of its local calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Interval is an inclusive span of calendar days.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls within the interval, both ends inclusive.
func (iv Interval) Contains(day time.Time) bool {
	day = StartOfDay(day)
	return !day.Before(StartOfDay(iv.Start)) && !day.After(StartOfDay(iv.End))
}

// Days returns the number of calendar days covered, counting both ends.
func (iv Interval) Days() int {
	start := StartOfDay(iv.Start)
	end := StartOfDay(iv.End)
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// Intersects reports whether the two inclusive intervals share at least one day.
func (iv Interval) Intersects(other Interval) bool {
	return !StartOfDay(iv.Start).After(StartOfDay(other.End)) &&
		!StartOfDay(other.Start).After(StartOfDay(iv.End))
}
