package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/editflow/internal/domain"
)

// Update handles messages and returns the updated model and command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgBoardLoaded:
		if msg.Board != nil {
			m.setBoard(msg.Board)
		}
		return m, nil

	case MsgTaskSaved:
		m.closeForm()
		m.err = nil
		if msg.Task != nil {
			if start, err := domain.ParseDate(msg.Task.StartDate); err == nil {
				m.selectDay(start)
			}
		}
		return m, m.loadBoard()

	case MsgTaskDeleted:
		m.err = nil
		return m, m.loadBoard()

	case MsgWatchStopped:
		if msg.Err != nil {
			m.err = msg.Err
		}
		return m, nil

	case MsgError:
		m.err = msg.Err
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	if m.mode == ModeForm {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

// handleKeyMsg handles keyboard input based on current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeForm:
		return m.handleFormMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.mode = ModeNormal
		return m, nil
	}
	return m.handleNormalMode(msg)
}

// handleNormalMode handles keys for calendar and insights navigation.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.err = nil
		return m, nil

	case key.Matches(msg, m.keys.View):
		if m.view == ViewCalendar {
			m.view = ViewInsights
		} else {
			m.view = ViewCalendar
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevMonth):
		m.shiftMonth(false)
		return m, nil

	case key.Matches(msg, m.keys.NextMonth):
		m.shiftMonth(true)
		return m, nil

	case key.Matches(msg, m.keys.Today):
		m.selectDay(m.today)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadBoard()
	}

	if m.view != ViewCalendar {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.selectDay(m.selected.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.Right):
		m.selectDay(m.selected.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Up):
		m.selectDay(m.selected.AddDate(0, 0, -7))
	case key.Matches(msg, m.keys.Down):
		m.selectDay(m.selected.AddDate(0, 0, 7))
	case key.Matches(msg, m.keys.NextTask):
		if n := len(m.dayTasks()); n > 0 {
			m.taskCursor = (m.taskCursor + 1) % n
		}
	case key.Matches(msg, m.keys.New):
		return m, m.openForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if t := m.selectedTask(); t != nil {
			return m, m.openForm(t)
		}
	case key.Matches(msg, m.keys.Delete):
		if t := m.selectedTask(); t != nil {
			m.confirmTaskID = t.ID
			m.mode = ModeConfirm
		}
	}
	return m, nil
}

// handleFormMode handles keys while the task form is open.
func (m *Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if m.focus == fieldCount-1 {
			return m, m.saveTask()
		}
		return m, m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.NextField):
		return m, m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.focusField(m.focus - 1)
	case msg.String() == "ctrl+s":
		return m, m.saveTask()
	}
	return m.updateFocusedInput(msg)
}

// handleConfirmMode handles keys for the delete confirmation.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmTaskID
	m.confirmTaskID = ""
	m.mode = ModeNormal
	if key.Matches(msg, m.keys.Confirm) && id != "" {
		return m, m.deleteTask(id)
	}
	return m, nil
}

func (m *Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}
