package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/usecase"
)

const (
	minCellWidth  = 8
	maxCellWidth  = 24
	defaultWidth  = 100
	defaultHeight = 40
	barWidth      = 30
	nameWidth     = 12
)

// View renders the TUI.
func (m *Model) View() string {
	switch m.mode {
	case ModeHelp:
		return m.styles.App.Render(m.viewHelp())
	case ModeForm:
		return m.styles.App.Render(m.viewForm())
	case ModeConfirm:
		return m.styles.App.Render(m.viewConfirm())
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.board == nil {
		if m.err != nil {
			b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		} else {
			b.WriteString(m.styles.Footer.Render("Loading schedule..."))
		}
		return m.styles.App.Render(b.String())
	}

	if m.view == ViewInsights {
		b.WriteString(m.viewInsights())
	} else {
		b.WriteString(m.viewCalendar())
		b.WriteString("\n")
		b.WriteString(m.viewDayPanel())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return m.styles.App.Render(b.String())
}

// viewHeader renders the month title and view tabs.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render(m.month.Start().Format("January 2006"))
	tabs := make([]string, 0, 2)
	for _, v := range []View{ViewCalendar, ViewInsights} {
		style := m.styles.Tab
		if v == m.view {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	return m.styles.Header.Render("editflow  ") + title + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// cellWidth returns the inner width of one calendar cell.
func (m *Model) cellWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	// Two columns of padding for the app plus two border columns per cell.
	w := (width-2)/7 - 2
	return max(minCellWidth, min(maxCellWidth, w))
}

// visibleLanes returns how many lanes fit in one week row.
func (m *Model) visibleLanes() int {
	height := m.height
	if height <= 0 {
		height = defaultHeight
	}
	weeks := 6
	if m.calendar != nil && len(m.calendar.Weeks) > 0 {
		weeks = len(m.calendar.Weeks)
	}
	// Header, weekday row, day panel and footer take about twelve lines;
	// each week row needs its borders and the day number.
	lanes := (height-12)/weeks - 3
	return max(1, lanes)
}

// viewCalendar renders the month grid.
func (m *Model) viewCalendar() string {
	if m.calendar == nil {
		return ""
	}
	cellW := m.cellWidth()
	visible := m.visibleLanes()

	header := make([]string, 0, 7)
	for i := range 7 {
		day := time.Weekday((int(m.weekStart) + i) % 7)
		header = append(header, m.styles.Weekday.Width(cellW+2).Align(lipgloss.Center).Render(day.String()[:3]))
	}

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range m.calendar.Weeks {
		lanes := 0
		for _, day := range week {
			lanes = max(lanes, len(day.Slots))
		}
		lanes = min(lanes, visible)

		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, m.renderCell(day, cellW, lanes))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell renders one day: its number, then one line per lane.
func (m *Model) renderCell(day usecase.CalendarDay, width, lanes int) string {
	numStyle := m.styles.DayNumber
	switch {
	case day.IsToday:
		numStyle = m.styles.DayToday
	case !day.InMonth:
		numStyle = m.styles.DayOutOfMonth
	}

	lines := make([]string, 0, lanes+1)
	lines = append(lines, numStyle.Render(fmt.Sprintf("%2d", day.Date.Day())))

	hidden := 0
	for lane, e := range day.Slots {
		if lane >= lanes {
			if e != nil {
				hidden++
			}
			continue
		}
		lines = append(lines, m.renderPill(e, width))
	}
	for len(lines) < lanes+1 {
		lines = append(lines, "")
	}
	if hidden > 0 {
		lines[len(lines)-1] = m.styles.More.Render(fmt.Sprintf("+%d more", hidden))
	}

	style := m.styles.Cell
	if domain.SameDay(day.Date, m.selected) {
		style = m.styles.CellSelected
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderPill renders one lane of a cell. Empty lanes stay blank so ongoing tasks line up.
func (m *Model) renderPill(e *usecase.CalendarEntry, width int) string {
	if e == nil {
		return ""
	}
	text := ""
	if e.Label {
		text = e.Status.Icon() + " " + e.Task.Title()
	}
	return m.styles.PillStyle(e.Theme).Width(width).Render(truncate.StringWithTail(text, uint(width), "…"))
}

// viewDayPanel lists every task on the selected day.
func (m *Model) viewDayPanel() string {
	tasks := m.dayTasks()

	var b strings.Builder
	title := m.selected.Format("Mon 2 Jan 2006")
	b.WriteString(m.styles.PanelTitle.Render(fmt.Sprintf("%s · %d task(s)", title, len(tasks))))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(m.styles.TaskMeta.Render("  Nothing scheduled. Press n to add a task."))
		b.WriteString("\n")
	}
	for i, t := range tasks {
		status := domain.ClassifyStatus(t, m.today)
		badge := m.styles.StatusStyle(status).Render(status.Icon())
		editor := domain.ResolveEditor(m.board.Snapshot.Editors, t.Editor)
		swatch := lipgloss.NewStyle().Foreground(ThemeColor(domain.ThemeFor(editor.Color))).Render("■")
		meta := m.styles.TaskMeta.Render(fmt.Sprintf("%s  %s → %s", t.Editor, t.StartDate, t.EndDate))

		line := fmt.Sprintf("%s %s %s  %s", badge, swatch, t.Title(), meta)
		if t.Note != "" {
			line += m.styles.TaskMeta.Render("  " + t.Note)
		}
		style := m.styles.TaskLine
		if i == m.taskCursor {
			style = m.styles.TaskSelected
			line = "› " + line
		} else {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if n := len(m.calendar.Invalid); n > 0 {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d task(s) with unusable dates are not shown", n)))
		b.WriteString("\n")
	}
	return b.String()
}

// viewInsights renders the workload per editor for the displayed month.
func (m *Model) viewInsights() string {
	r := m.report
	if r == nil {
		return ""
	}

	var b strings.Builder
	stat := func(label string, value int) string {
		return m.styles.StatLabel.Render(label+" ") + m.styles.StatValue.Render(fmt.Sprintf("%d", value))
	}
	b.WriteString(strings.Join([]string{
		stat("Programs", r.ProgramCount),
		stat("Tasks", r.TaskCount),
		stat("This month", r.Stats.MonthlyCount),
	}, "   "))
	b.WriteString("\n")

	counts := m.board.StatusCounts()
	parts := make([]string, 0, len(domain.AllStatuses()))
	for _, s := range domain.AllStatuses() {
		parts = append(parts, m.styles.StatusStyle(s).Render(fmt.Sprintf("%s %s %d", s.Icon(), s.Display(), counts[s])))
	}
	b.WriteString(strings.Join(parts, "   "))
	b.WriteString("\n\n")

	b.WriteString(m.styles.PanelTitle.Render(fmt.Sprintf("Workload · %s (%s)", m.month.Start().Format("Jan 2006"), m.opts.Membership)))
	b.WriteString("\n")
	for _, row := range r.Rows {
		b.WriteString(m.renderStatsRow(row, r.MonthlyMax))
		b.WriteString("\n")
	}
	if len(r.Rows) == 0 {
		b.WriteString(m.styles.TaskMeta.Render("  No editors yet."))
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatsRow renders one editor with a bar scaled to the busiest editor of the month.
func (m *Model) renderStatsRow(row usecase.EditorStatsRow, maxCount int) string {
	filled := 0
	if maxCount > 0 {
		filled = row.Monthly * barWidth / maxCount
	}
	bar := lipgloss.NewStyle().Foreground(ThemeColor(row.Theme)).Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", barWidth-filled))

	name := truncate.StringWithTail(row.Editor.Name, nameWidth, "…")
	return fmt.Sprintf("  %-*s %s %s", nameWidth, name, bar,
		m.styles.TaskMeta.Render(fmt.Sprintf("%d this month · %d total", row.Monthly, row.Total)))
}

// viewForm renders the task form.
func (m *Model) viewForm() string {
	var b strings.Builder
	title := "New task"
	if m.editingID != "" {
		title = "Edit task"
	}
	b.WriteString(m.styles.DialogTitle.Render(title))
	b.WriteString("\n")
	for i := range m.inputs {
		f := Field(i)
		label := m.styles.InputLabel
		if f == m.focus {
			label = m.styles.InputFocus
		}
		b.WriteString(label.Render(f.Label()))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorMsg.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render("tab/↓ next · shift+tab/↑ prev · enter on Note or ctrl+s save · esc cancel"))
	return m.styles.Dialog.Render(b.String())
}

// viewConfirm renders the delete confirmation.
func (m *Model) viewConfirm() string {
	name := m.confirmTaskID
	if m.board != nil {
		for _, t := range m.board.Snapshot.Tasks {
			if t != nil && t.ID == m.confirmTaskID {
				name = t.Title()
				break
			}
		}
	}
	return m.styles.Dialog.Render(
		m.styles.DialogTitle.Render("Delete task") + "\n" +
			fmt.Sprintf("Delete %q?", name) + "\n\n" +
			m.styles.Footer.Render("y confirm · any other key cancel"))
}

// viewHelp renders the full key reference.
func (m *Model) viewHelp() string {
	return m.styles.Help.Render(
		m.styles.DialogTitle.Render("Keys") + "\n" +
			m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
			m.styles.Footer.Render("press any key to close"))
}
