package tui

import (
	"github.com/runoshun/editflow/internal/domain"
)

// Msg is the interface for all TUI messages.
// This enables type-safe message handling in the Update function.
type Msg interface {
	sealed()
}

// MsgBoardLoaded is sent whenever a fresh board is available, from the initial load or the
// schedule watch.
type MsgBoardLoaded struct {
	Board *domain.Board
}

func (MsgBoardLoaded) sealed() {}

// MsgTaskSaved is sent when a task is created or updated from the form.
type MsgTaskSaved struct {
	Task    *domain.Task
	Created bool
}

func (MsgTaskSaved) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	Task *domain.Task
}

func (MsgTaskDeleted) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}

// MsgWatchStopped is sent when the schedule watch ends.
type MsgWatchStopped struct {
	Err error
}

func (MsgWatchStopped) sealed() {}
