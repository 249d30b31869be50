package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
)

func TestDeleteTask_Execute_Success(t *testing.T) {
	store := testutil.NewMockScheduleStore()
	store.AddTasks(newTask("t1", "James", "2024-05-01", "2024-05-03"))
	uc := NewDeleteTask(store, &testutil.MockLogger{})

	out, err := uc.Execute(context.Background(), DeleteTaskInput{ID: "t1"})

	require.NoError(t, err)
	assert.Equal(t, "t1", out.Task.ID)
	assert.NotContains(t, store.Tasks, "t1")
}

func TestDeleteTask_Execute_TaskNotFound(t *testing.T) {
	uc := NewDeleteTask(testutil.NewMockScheduleStore(), &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTaskInput{ID: "t9"})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTask_Execute_DeleteError(t *testing.T) {
	store := testutil.NewMockScheduleStore()
	store.AddTasks(newTask("t1", "James", "2024-05-01", "2024-05-03"))
	store.DeleteErr = assert.AnError
	uc := NewDeleteTask(store, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTaskInput{ID: "t1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete task")
}
