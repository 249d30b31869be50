package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/editflow/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	ID string // Task ID (required)
}

// ShowTaskOutput contains the task with its derived attributes.
type ShowTaskOutput struct {
	Task   *domain.Task
	Editor *domain.Editor // Roster entry the task's editor name resolves to
	Status domain.TaskStatus
	Theme  domain.Theme
	Days   int // Inclusive length; 0 when the dates are unusable
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	store domain.ScheduleStore
	clock domain.Clock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(store domain.ScheduleStore, clock domain.Clock) *ShowTask {
	return &ShowTask{store: store, clock: clock}
}

// Execute retrieves and returns the task details.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := uc.store.GetTask(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	editors, err := uc.store.ListEditors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}

	editor := domain.ResolveEditor(editors, task.Editor)
	out := &ShowTaskOutput{
		Task:   task,
		Editor: editor,
		Status: domain.ClassifyStatus(task, uc.clock.Now()),
		Theme:  domain.ThemeFor(editor.Color),
	}
	if iv, err := task.Interval(); err == nil {
		out.Days = iv.Days()
	}
	return out, nil
}
