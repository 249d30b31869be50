package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/editflow/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter domain.TaskFilter
	Status domain.TaskStatus // Empty = any
}

// TaskListItem is one listed task with its status.
type TaskListItem struct {
	Task   *domain.Task
	Status domain.TaskStatus
}

// ListTasksOutput contains the matching tasks ordered by start date.
type ListTasksOutput struct {
	Items []TaskListItem
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository, clock domain.Clock) *ListTasks {
	return &ListTasks{tasks: tasks, clock: clock}
}

// Execute returns the tasks matching the filter.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if in.Status != "" && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}

	tasks, err := uc.tasks.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := uc.clock.Now()
	out := &ListTasksOutput{Items: make([]TaskListItem, 0, len(tasks))}
	for _, t := range tasks {
		if !in.Filter.Match(t) {
			continue
		}
		status := domain.ClassifyStatus(t, now)
		if in.Status != "" && status != in.Status {
			continue
		}
		out.Items = append(out.Items, TaskListItem{Task: t, Status: status})
	}
	return out, nil
}
