package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/editflow/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	ID string // Task ID (required)
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task *domain.Task // The deleted task
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, logger domain.Logger) *DeleteTask {
	return &DeleteTask{tasks: tasks, logger: logger}
}

// Execute deletes the task. Deleting a missing task returns domain.ErrTaskNotFound.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := uc.tasks.GetTask(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if err := uc.tasks.DeleteTask(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	uc.logger.Info("task", fmt.Sprintf("deleted task %s (%s)", task.ID, task.Title()))
	return &DeleteTaskOutput{Task: task}, nil
}
