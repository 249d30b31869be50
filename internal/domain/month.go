package domain

import (
	"fmt"
	"strings"
	"time"
)

// MonthKeyLayout is the format of a MonthKey.
const MonthKeyLayout = "2006-01"

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

// ParseMonthKey validates s as a YYYY-MM month key.
func ParseMonthKey(s string) (MonthKey, error) {
	if _, err := time.Parse(MonthKeyLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return MonthKey(s), nil
}

// MonthKeyOf returns the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format(MonthKeyLayout))
}

// String returns the key as "YYYY-MM".
func (m MonthKey) String() string {
	return string(m)
}

// Start returns midnight of the first day of the month in the local time zone.
// A malformed key yields the zero time.
func (m MonthKey) Start() time.Time {
	t, err := time.ParseInLocation(MonthKeyLayout, string(m), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// End returns midnight of the last day of the month.
func (m MonthKey) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// Next returns the following month.
func (m MonthKey) Next() MonthKey {
	return MonthKeyOf(m.Start().AddDate(0, 1, 0))
}

// Prev returns the preceding month.
func (m MonthKey) Prev() MonthKey {
	return MonthKeyOf(m.Start().AddDate(0, -1, 0))
}

// Interval returns the month as an inclusive day interval.
func (m MonthKey) Interval() Interval {
	return Interval{Start: m.Start(), End: m.End()}
}

// TouchedBy reports whether the task starts or ends in this month.
// A task that spans the whole month without starting or ending in it is not counted.
func (m MonthKey) TouchedBy(t *Task) bool {
	if m == "" {
		return false
	}
	prefix := string(m)
	return strings.HasPrefix(t.StartDate, prefix) || strings.HasPrefix(t.EndDate, prefix)
}

// OverlappedBy reports whether any day of the task falls in this month.
// Tasks with unusable dates fall back to TouchedBy.
func (m MonthKey) OverlappedBy(t *Task) bool {
	iv, err := t.Interval()
	if err != nil {
		return m.TouchedBy(t)
	}
	return m.Interval().Intersects(iv)
}

// MonthGrid returns every day displayed on a month calendar: from the first day of the week containing
// the 1st through the last day of the week containing the month's last day.
func MonthGrid(month MonthKey, weekStart time.Weekday) []time.Time {
	first := month.Start()
	if first.IsZero() {
		return nil
	}
	last := month.End()

	start := first.AddDate(0, 0, -daysSince(first.Weekday(), weekStart))
	weekEnd := (weekStart + 6) % 7
	end := last.AddDate(0, 0, daysSince(weekEnd, last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// daysSince returns how many days lie between from (earlier) and to within one week.
func daysSince(to, from time.Weekday) int {
	return (int(to) - int(from) + 7) % 7
}

// ParseWeekStart maps a config value to a weekday. Only monday and sunday are accepted.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday", "mon":
		return time.Monday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("%w: week start %q", ErrInvalidConfig, s)
	}
}
