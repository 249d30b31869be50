package usecase

import (
	"context"
	"time"

	"github.com/runoshun/editflow/internal/domain"
)

// CalendarEntry is one task placed on one calendar day.
type CalendarEntry struct {
	Task    *domain.Task
	Status  domain.TaskStatus
	Theme   domain.Theme
	Lane    int
	IsStart bool
	IsEnd   bool
	Label   bool // First day of the task, or first day of a week row it continues into
}

// CalendarDay is one cell of the month grid.
// Slots is indexed by lane up to the highest lane used that day; nil entries keep the lanes of
// ongoing tasks aligned across days.
type CalendarDay struct {
	Date    time.Time
	Slots   []*CalendarEntry
	InMonth bool
	IsToday bool
}

// Entries returns the non-empty slots of the day in lane order.
func (d CalendarDay) Entries() []*CalendarEntry {
	out := make([]*CalendarEntry, 0, len(d.Slots))
	for _, e := range d.Slots {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Calendar is the month view model.
// Fields are ordered to minimize memory padding.
type Calendar struct {
	Month     domain.MonthKey
	Weeks     [][]CalendarDay
	Layout    domain.LaneLayout
	Invalid   []domain.InvalidTask
	LaneCount int
}

// ComposeCalendar lays out snap on the grid of month. It is pure; the watch loop and the TUI call
// it directly for every snapshot.
func ComposeCalendar(snap domain.Snapshot, month domain.MonthKey, weekStart time.Weekday, today time.Time) *Calendar {
	valid, invalid := domain.PartitionTasks(snap.Tasks)
	layout := domain.ComputeLaneLayout(valid)
	laneCount := domain.LaneCount(layout)

	themes := make(map[string]domain.Theme)
	themeOf := func(name string) domain.Theme {
		th, ok := themes[name]
		if !ok {
			th = domain.ThemeFor(domain.ResolveEditor(snap.Editors, name).Color)
			themes[name] = th
		}
		return th
	}

	cal := &Calendar{Month: month, Layout: layout, Invalid: invalid, LaneCount: laneCount}
	grid := domain.MonthGrid(month, weekStart)
	for i, day := range grid {
		if i%7 == 0 {
			cal.Weeks = append(cal.Weeks, make([]CalendarDay, 0, 7))
		}
		cell := CalendarDay{
			Date:    day,
			InMonth: domain.MonthKeyOf(day) == month,
			IsToday: domain.SameDay(day, today),
		}
		date := domain.FormatDate(day)
		for _, t := range domain.TasksOnDay(valid, layout, day) {
			lane := layout[t.ID]
			if cell.Slots == nil {
				cell.Slots = make([]*CalendarEntry, laneCount)
			}
			// A task ending today shares its lane with one starting today; the starting one is shown.
			if cell.Slots[lane] != nil && t.StartDate != date {
				continue
			}
			cell.Slots[lane] = &CalendarEntry{
				Task:    t,
				Lane:    lane,
				Status:  domain.ClassifyStatus(t, today),
				Theme:   themeOf(t.Editor),
				IsStart: t.StartDate == date,
				IsEnd:   t.EndDate == date,
				Label:   t.StartDate == date || i%7 == 0,
			}
		}
		cell.Slots = trimSlots(cell.Slots)
		w := len(cal.Weeks) - 1
		cal.Weeks[w] = append(cal.Weeks[w], cell)
	}
	return cal
}

// BuildCalendarInput contains the parameters for building a month calendar.
type BuildCalendarInput struct {
	Month     domain.MonthKey // Empty = current month
	WeekStart time.Weekday
}

// BuildCalendar is the use case for the month calendar view.
type BuildCalendar struct {
	store  domain.ScheduleStore
	clock  domain.Clock
	logger domain.Logger
}

// NewBuildCalendar creates a new BuildCalendar use case.
func NewBuildCalendar(store domain.ScheduleStore, clock domain.Clock, logger domain.Logger) *BuildCalendar {
	return &BuildCalendar{store: store, clock: clock, logger: logger}
}

// Execute loads the schedule and composes the calendar. Tasks that cannot be placed are logged
// and reported in Calendar.Invalid.
func (uc *BuildCalendar) Execute(ctx context.Context, in BuildCalendarInput) (*Calendar, error) {
	now := uc.clock.Now()
	snap, err := loadSnapshot(ctx, uc.store, now)
	if err != nil {
		return nil, err
	}
	cal := ComposeCalendar(snap, monthOrCurrent(in.Month, now), in.WeekStart, now)
	logInvalidTasks(uc.logger, cal.Invalid)
	return cal, nil
}

func trimSlots(slots []*CalendarEntry) []*CalendarEntry {
	n := len(slots)
	for n > 0 && slots[n-1] == nil {
		n--
	}
	if n == 0 {
		return nil
	}
	return slots[:n]
}
