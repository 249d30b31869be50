package web

import (
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

type taskJSON struct {
	*domain.Task
	Status domain.TaskStatus `json:"status"`
}

func newTaskJSON(t *domain.Task, status domain.TaskStatus) taskJSON {
	return taskJSON{Task: t, Status: status}
}

type invalidTaskJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Error string `json:"error"`
}

func newInvalidJSON(invalid []domain.InvalidTask) []invalidTaskJSON {
	out := make([]invalidTaskJSON, 0, len(invalid))
	for _, inv := range invalid {
		out = append(out, invalidTaskJSON{ID: inv.Task.ID, Title: inv.Task.Title(), Error: inv.Err.Error()})
	}
	return out
}

type layoutJSON struct {
	Layout    domain.LaneLayout         `json:"layout"`
	Statuses  map[domain.TaskStatus]int `json:"statuses"`
	Invalid   []invalidTaskJSON         `json:"invalid"`
	Stats     domain.Stats              `json:"stats"`
	LaneCount int                       `json:"laneCount"`
}

func newLayoutJSON(b *domain.Board) layoutJSON {
	return layoutJSON{
		Layout:    b.Layout,
		LaneCount: b.LaneCount,
		Statuses:  b.StatusCounts(),
		Invalid:   newInvalidJSON(b.Invalid),
		Stats:     b.Stats,
	}
}

type entryJSON struct {
	TaskID  string            `json:"taskId"`
	Title   string            `json:"title"`
	Editor  string            `json:"editor"`
	Status  domain.TaskStatus `json:"status"`
	Theme   domain.Theme      `json:"theme"`
	Lane    int               `json:"lane"`
	IsStart bool              `json:"isStart"`
	IsEnd   bool              `json:"isEnd"`
	Label   bool              `json:"label"`
}

type dayJSON struct {
	Date    string       `json:"date"`
	Slots   []*entryJSON `json:"slots"`
	InMonth bool         `json:"inMonth"`
	IsToday bool         `json:"isToday"`
}

type calendarJSON struct {
	Month     domain.MonthKey   `json:"month"`
	Weeks     [][]dayJSON       `json:"weeks"`
	Invalid   []invalidTaskJSON `json:"invalid"`
	LaneCount int               `json:"laneCount"`
}

func newCalendarJSON(cal *usecase.Calendar) calendarJSON {
	out := calendarJSON{
		Month:     cal.Month,
		LaneCount: cal.LaneCount,
		Invalid:   newInvalidJSON(cal.Invalid),
		Weeks:     make([][]dayJSON, 0, len(cal.Weeks)),
	}
	for _, week := range cal.Weeks {
		days := make([]dayJSON, 0, len(week))
		for _, d := range week {
			day := dayJSON{
				Date:    domain.FormatDate(d.Date),
				InMonth: d.InMonth,
				IsToday: d.IsToday,
				Slots:   make([]*entryJSON, len(d.Slots)),
			}
			for i, e := range d.Slots {
				if e == nil {
					continue
				}
				day.Slots[i] = &entryJSON{
					TaskID:  e.Task.ID,
					Title:   e.Task.Title(),
					Editor:  e.Task.Editor,
					Status:  e.Status,
					Theme:   e.Theme,
					Lane:    e.Lane,
					IsStart: e.IsStart,
					IsEnd:   e.IsEnd,
					Label:   e.Label,
				}
			}
			days = append(days, day)
		}
		out.Weeks = append(out.Weeks, days)
	}
	return out
}

type editorStatsJSON struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Theme   domain.Theme `json:"theme"`
	Total   int          `json:"total"`
	Monthly int          `json:"monthly"`
}

type statsJSON struct {
	Month        domain.MonthKey   `json:"month"`
	Editors      []editorStatsJSON `json:"editors"`
	TotalCount   int               `json:"totalCount"`
	MonthlyCount int               `json:"monthlyCount"`
	ProgramCount int               `json:"programCount"`
}

func newStatsJSON(r *usecase.StatsReport) statsJSON {
	out := statsJSON{
		Month:        r.Stats.Month,
		TotalCount:   r.Stats.TotalCount,
		MonthlyCount: r.Stats.MonthlyCount,
		ProgramCount: r.ProgramCount,
		Editors:      make([]editorStatsJSON, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		out.Editors = append(out.Editors, editorStatsJSON{
			ID:      row.Editor.ID,
			Name:    row.Editor.Name,
			Theme:   row.Theme,
			Total:   row.Total,
			Monthly: row.Monthly,
		})
	}
	return out
}
