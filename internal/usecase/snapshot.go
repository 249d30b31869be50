// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/editflow/internal/domain"
)

// loadSnapshot reads all three collections into one snapshot.
func loadSnapshot(ctx context.Context, store domain.ScheduleStore, now time.Time) (domain.Snapshot, error) {
	tasks, err := store.ListTasks(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list tasks: %w", err)
	}
	programs, err := store.ListPrograms(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list programs: %w", err)
	}
	editors, err := store.ListEditors(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("list editors: %w", err)
	}
	return domain.Snapshot{
		ReceivedAt: now,
		Tasks:      tasks,
		Programs:   programs,
		Editors:    editors,
	}, nil
}

// monthOrCurrent returns month, or the month containing now when month is empty.
func monthOrCurrent(month domain.MonthKey, now time.Time) domain.MonthKey {
	if month == "" {
		return domain.MonthKeyOf(now)
	}
	return month
}

// logInvalidTasks reports records the date-based views had to skip.
func logInvalidTasks(logger domain.Logger, invalid []domain.InvalidTask) {
	for _, inv := range invalid {
		logger.Warn("schedule", fmt.Sprintf("task %s (%s) skipped: %v", inv.Task.ID, inv.Task.Title(), inv.Err))
	}
}
