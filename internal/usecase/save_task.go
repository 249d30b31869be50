package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/editflow/internal/domain"
)

// SaveTaskInput contains the parameters for creating or updating a task.
// Nil fields are left unchanged on update and empty on create.
// Fields are ordered to minimize memory padding.
type SaveTaskInput struct {
	Show      *string
	Episode   *string
	Editor    *string
	StartDate *string
	EndDate   *string
	Note      *string
	ID        string // Empty creates a new task
}

// SaveTaskOutput contains the result of saving a task.
type SaveTaskOutput struct {
	Task    *domain.Task
	Created bool
}

// SaveTask is the use case for creating and updating tasks.
type SaveTask struct {
	tasks  domain.TaskRepository
	ids    domain.IDGenerator
	clock  domain.Clock
	logger domain.Logger
}

// NewSaveTask creates a new SaveTask use case.
func NewSaveTask(tasks domain.TaskRepository, ids domain.IDGenerator, clock domain.Clock, logger domain.Logger) *SaveTask {
	return &SaveTask{tasks: tasks, ids: ids, clock: clock, logger: logger}
}

// Execute validates and stores the task. Invalid tasks are rejected before anything is written.
func (uc *SaveTask) Execute(ctx context.Context, in SaveTaskInput) (*SaveTaskOutput, error) {
	var task *domain.Task
	created := in.ID == ""

	if created {
		task = &domain.Task{ID: uc.ids.NewID()}
	} else {
		existing, err := uc.tasks.GetTask(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("get task: %w", err)
		}
		task = existing
		if !in.hasFields() {
			return nil, domain.ErrNoFieldsToUpdate
		}
	}

	in.apply(task)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	task.LastEditedAt = uc.clock.Now().Format(time.RFC3339)
	task.Version++

	if err := uc.tasks.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	verb := "updated"
	if created {
		verb = "created"
	}
	uc.logger.Info("task", fmt.Sprintf("%s task %s (%s)", verb, task.ID, task.Title()))

	return &SaveTaskOutput{Task: task, Created: created}, nil
}

func (in SaveTaskInput) hasFields() bool {
	return in.Show != nil || in.Episode != nil || in.Editor != nil ||
		in.StartDate != nil || in.EndDate != nil || in.Note != nil
}

func (in SaveTaskInput) apply(t *domain.Task) {
	if in.Show != nil {
		t.Show = strings.TrimSpace(*in.Show)
	}
	if in.Episode != nil {
		t.Episode = strings.TrimSpace(*in.Episode)
	}
	if in.Editor != nil {
		t.Editor = strings.TrimSpace(*in.Editor)
	}
	if in.StartDate != nil {
		t.StartDate = strings.TrimSpace(*in.StartDate)
	}
	if in.EndDate != nil {
		t.EndDate = strings.TrimSpace(*in.EndDate)
	}
	if in.Note != nil {
		t.Note = *in.Note
	}
}
