// Package domain contains core business entities, the scheduling engines and the ports they depend on.
package domain

import (
	"strings"
)

// Collection names used by the document store.
const (
	CollectionTasks    = "tasks"
	CollectionPrograms = "programs"
	CollectionEditors  = "editors"
)

// Collections lists every collection the store keeps.
func Collections() []string {
	return []string{CollectionTasks, CollectionPrograms, CollectionEditors}
}

// Task is one editing assignment: an episode of a show cut by an editor over a span of days.
// Show and Editor reference a Program and an Editor by name, not by ID, so renaming either
// leaves historical tasks untouched.
// Fields are ordered to minimize memory padding.
type Task struct {
	ID           string `json:"id" yaml:"id"`
	Show         string `json:"show" yaml:"show"`
	Episode      string `json:"episode" yaml:"episode"`
	Editor       string `json:"editor" yaml:"editor"`
	StartDate    string `json:"startDate" yaml:"startDate"` // YYYY-MM-DD, inclusive
	EndDate      string `json:"endDate" yaml:"endDate"`     // YYYY-MM-DD, inclusive
	LastEditedAt string `json:"lastEditedAt" yaml:"lastEditedAt"`
	Note         string `json:"note,omitempty" yaml:"note,omitempty"`
	Version      int    `json:"version" yaml:"version"`
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Title returns the display title, e.g. "Correspondents #12".
func (t *Task) Title() string {
	if t.Episode == "" {
		return t.Show
	}
	return t.Show + " #" + t.Episode
}

// Validate checks the fields required to persist a task.
// Show, editor and both dates are required; dates must be YYYY-MM-DD and start must not be after end.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Show) == "" || strings.TrimSpace(t.Editor) == "" ||
		t.StartDate == "" || t.EndDate == "" {
		return ErrTaskIncomplete
	}
	_, err := t.Interval()
	return err
}

// Interval parses the task dates.
// Returns ErrMissingDate, ErrInvalidDate or ErrInvertedInterval when the dates cannot describe a span.
func (t *Task) Interval() (Interval, error) {
	if t.StartDate == "" || t.EndDate == "" {
		return Interval{}, ErrMissingDate
	}
	start, err := ParseDate(t.StartDate)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseDate(t.EndDate)
	if err != nil {
		return Interval{}, err
	}
	if end.Before(start) {
		return Interval{}, ErrInvertedInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Program is a show that tasks are scheduled for.
// Fields are ordered to minimize memory padding.
type Program struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Duration    string `json:"duration" yaml:"duration"`       // e.g. "10min"
	PremiereDay string `json:"premiereDay" yaml:"premiereDay"` // e.g. "Fri"
	WorkDays    int    `json:"workDays" yaml:"workDays"`       // planned working days per episode
}

// Validate checks the fields required to persist a program.
func (p *Program) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.WorkDays < 0 {
		return ErrNegativeWorkDays
	}
	return nil
}

// Editor is a member of the editing roster.
type Editor struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"` // theme tag, see ThemeFor
}

// Validate checks the fields required to persist an editor.
func (e *Editor) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// TaskFilter specifies criteria for listing tasks.
type TaskFilter struct {
	Editor string   // exact editor name; empty = any
	Show   string   // exact show name; empty = any
	Month  MonthKey // boundary membership; empty = any
}

// Match reports whether the task satisfies the filter.
func (f TaskFilter) Match(t *Task) bool {
	if f.Editor != "" && t.Editor != f.Editor {
		return false
	}
	if f.Show != "" && t.Show != f.Show {
		return false
	}
	if f.Month != "" && !f.Month.TouchedBy(t) {
		return false
	}
	return true
}
