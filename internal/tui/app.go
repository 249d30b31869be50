package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/editflow/internal/app"
	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// Derived state, rebuilt for every board
	board    *domain.Board
	calendar *usecase.Calendar
	report   *usecase.StatsReport

	// Form inputs, indexed by Field
	inputs []textinput.Model

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Cursor state
	today         time.Time
	selected      time.Time
	month         domain.MonthKey
	editingID     string
	confirmTaskID string
	opts          domain.StatsOptions

	// Numeric state (smaller types last)
	mode       Mode
	view       View
	focus      Field
	weekStart  time.Weekday
	taskCursor int
	width      int
	height     int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	now := c.Clock.Now()
	today := domain.StartOfDay(now)

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		inputs[i] = ti
	}
	inputs[FieldShow].Placeholder = "Program name"
	inputs[FieldEpisode].Placeholder = "Episode (optional)"
	inputs[FieldEditor].Placeholder = "Editor name"
	inputs[FieldStart].Placeholder = domain.DateLayout
	inputs[FieldEnd].Placeholder = domain.DateLayout
	inputs[FieldNote].Placeholder = "Note (optional)"
	inputs[FieldNote].CharLimit = 1000

	return &Model{
		container: c,
		inputs:    inputs,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		today:     today,
		selected:  today,
		month:     domain.MonthKeyOf(today),
		opts:      c.Settings.StatsOptions(),
		weekStart: c.WeekStart(),
		mode:      ModeNormal,
		view:      ViewCalendar,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.loadBoard()
}

// Run starts the TUI and keeps it in sync with the store until the user quits or ctx ends.
func Run(ctx context.Context, c *app.Container) error {
	m := New(c)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		err := c.WatchScheduleUseCase().Execute(watchCtx, usecase.WatchScheduleInput{
			OnBoard: func(b *domain.Board) { p.Send(MsgBoardLoaded{Board: b}) },
			Options: m.opts,
		})
		p.Send(MsgWatchStopped{Err: err})
	}()

	_, err := p.Run()
	return err
}

// loadBoard returns a command that loads the board once.
func (m *Model) loadBoard() tea.Cmd {
	month := m.month
	opts := m.opts
	return func() tea.Msg {
		board, err := m.container.LoadBoardUseCase().Execute(context.Background(), usecase.LoadBoardInput{
			Month:   month,
			Options: opts,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardLoaded{Board: board}
	}
}

// saveTask returns a command that saves the form contents.
func (m *Model) saveTask() tea.Cmd {
	in := usecase.SaveTaskInput{ID: m.editingID}
	values := make([]string, fieldCount)
	for i := range m.inputs {
		values[i] = m.inputs[i].Value()
	}
	in.Show = &values[FieldShow]
	in.Episode = &values[FieldEpisode]
	in.Editor = &values[FieldEditor]
	in.StartDate = &values[FieldStart]
	in.EndDate = &values[FieldEnd]
	in.Note = &values[FieldNote]

	return func() tea.Msg {
		out, err := m.container.SaveTaskUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskSaved{Task: out.Task, Created: out.Created}
	}
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{ID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{Task: out.Task}
	}
}

// setBoard stores a fresh board and recomputes the month views from it.
func (m *Model) setBoard(b *domain.Board) {
	m.board = b
	if !b.Today.IsZero() {
		m.today = b.Today
	}
	m.recompose()
}

// recompose rebuilds the calendar and insights for the displayed month.
func (m *Model) recompose() {
	if m.board == nil {
		return
	}
	m.calendar = usecase.ComposeCalendar(m.board.Snapshot, m.month, m.weekStart, m.today)
	m.report = usecase.ComposeStats(m.board.Snapshot, m.month, m.opts)
	if n := len(m.dayTasks()); m.taskCursor >= n {
		m.taskCursor = max(n-1, 0)
	}
}

// selectDay moves the day cursor, following it into another month when needed.
func (m *Model) selectDay(day time.Time) {
	m.selected = domain.StartOfDay(day)
	m.taskCursor = 0
	m.month = domain.MonthKeyOf(m.selected)
	m.recompose()
}

// shiftMonth displays the previous or next month, keeping the day of month where possible.
func (m *Model) shiftMonth(next bool) {
	target := m.month.Prev()
	if next {
		target = m.month.Next()
	}
	day := min(m.selected.Day(), target.End().Day())
	start := target.Start()
	m.selectDay(time.Date(start.Year(), start.Month(), day, 0, 0, 0, 0, start.Location()))
}

// dayTasks returns every task on the selected day in lane order.
func (m *Model) dayTasks() []*domain.Task {
	if m.board == nil || m.calendar == nil {
		return nil
	}
	return domain.TasksOnDay(m.board.Snapshot.Tasks, m.calendar.Layout, m.selected)
}

// selectedTask returns the task under the cursor in the day panel.
func (m *Model) selectedTask() *domain.Task {
	tasks := m.dayTasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return nil
	}
	return tasks[m.taskCursor]
}

// openForm switches to the task form, prefilled from t or, for a new task, from the selected day.
func (m *Model) openForm(t *domain.Task) tea.Cmd {
	values := make([]string, fieldCount)
	if t != nil {
		m.editingID = t.ID
		values[FieldShow] = t.Show
		values[FieldEpisode] = t.Episode
		values[FieldEditor] = t.Editor
		values[FieldStart] = t.StartDate
		values[FieldEnd] = t.EndDate
		values[FieldNote] = t.Note
	} else {
		m.editingID = ""
		day := domain.FormatDate(m.selected)
		values[FieldStart] = day
		values[FieldEnd] = day
		if m.board != nil && len(m.board.Snapshot.Programs) > 0 {
			values[FieldShow] = m.board.Snapshot.Programs[0].Name
		}
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.mode = ModeForm
	return m.focusField(FieldShow)
}

// focusField moves the form focus.
func (m *Model) focusField(f Field) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (f + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

// closeForm leaves the form without saving.
func (m *Model) closeForm() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.editingID = ""
	m.mode = ModeNormal
}
