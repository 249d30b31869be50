package domain

import "time"

// TaskStatus is the temporal state of a task relative to today.
type TaskStatus string

const (
	StatusUpcoming  TaskStatus = "upcoming"  // Starts after today
	StatusActive    TaskStatus = "active"    // Today is within [start, end]
	StatusCompleted TaskStatus = "completed" // Ended before today
	StatusUnknown   TaskStatus = "unknown"   // A date is missing or unparseable
)

// AllStatuses returns every status value.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusUpcoming, StatusActive, StatusCompleted, StatusUnknown}
}

// ClassifyStatus derives the task's status on the calendar day of today.
// Only the day of today matters; the time of day is ignored.
// A date that cannot be parsed counts as missing.
// An inverted interval is not rejected here: it is completed once its end date has passed,
// otherwise upcoming once its start date lies ahead, otherwise active. Callers that need the
// interval to be usable check Task.Interval.
func ClassifyStatus(t *Task, today time.Time) TaskStatus {
	if t == nil || t.StartDate == "" || t.EndDate == "" {
		return StatusUnknown
	}
	start, err := ParseDate(t.StartDate)
	if err != nil {
		return StatusUnknown
	}
	end, err := ParseDate(t.EndDate)
	if err != nil {
		return StatusUnknown
	}

	day := StartOfDay(today.In(time.Local))
	if end.Before(day) {
		return StatusCompleted
	}
	if start.After(day) {
		return StatusUpcoming
	}
	return StatusActive
}

// Display returns a human-readable representation of the status.
func (s TaskStatus) Display() string {
	switch s {
	case StatusUpcoming:
		return "Upcoming"
	case StatusActive:
		return "Active"
	case StatusCompleted:
		return "Completed"
	case StatusUnknown:
		return "Unknown"
	default:
		return string(s)
	}
}

// Icon returns a one-rune marker used by the terminal views.
func (s TaskStatus) Icon() string {
	switch s {
	case StatusActive:
		return "●"
	case StatusCompleted:
		return "✓"
	case StatusUpcoming:
		return "○"
	default:
		return "?"
	}
}

// IsValid returns true if the status is a known value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusUnknown:
		return true
	default:
		return false
	}
}
