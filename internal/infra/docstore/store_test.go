package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	clock := &testutil.MockClock{NowTime: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	s := New(NewMemory(), clock, nil)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_TaskCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	task := &domain.Task{ID: "t1", Show: "DC Insiders", Episode: "4", Editor: "Eason",
		StartDate: "2024-05-02", EndDate: "2024-05-03", Version: 1}
	require.NoError(t, s.SaveTask(ctx, task))

	got, err := s.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, task, got)

	task.Episode = "5"
	require.NoError(t, s.SaveTask(ctx, task))
	got, err = s.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "5", got.Episode)

	require.NoError(t, s.DeleteTask(ctx, "t1"))
	_, err = s.GetTask(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	// Deleting again is fine.
	assert.NoError(t, s.DeleteTask(ctx, "t1"))
}

func TestStore_ListTasksOrderedByStart(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, tk := range []*domain.Task{
		{ID: "c", StartDate: "2024-05-09"},
		{ID: "a", StartDate: "2024-05-01"},
		{ID: "b", StartDate: "2024-05-01"},
	} {
		require.NoError(t, s.SaveTask(ctx, tk))
	}

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
}

func TestStore_ProgramsAndEditors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, p := range domain.DefaultPrograms() {
		require.NoError(t, s.SaveProgram(ctx, p))
	}
	for _, e := range domain.DefaultEditors() {
		require.NoError(t, s.SaveEditor(ctx, e))
	}

	programs, err := s.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPrograms(), programs)

	editors, err := s.ListEditors(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEditors(), editors)

	_, err = s.GetProgram(ctx, "p9")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	_, err = s.GetEditor(ctx, "e9")
	assert.ErrorIs(t, err, domain.ErrEditorNotFound)

	require.NoError(t, s.DeleteEditor(ctx, "e4"))
	require.NoError(t, s.DeleteProgram(ctx, "p4"))
	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Editors, 3)
	assert.Len(t, snap.Programs, 3)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), snap.ReceivedAt)
}

func TestStore_Subscribe(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snaps := make(chan domain.Snapshot, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Subscribe(ctx, func(snap domain.Snapshot) { snaps <- snap })
	}()

	first := receive(t, snaps)
	assert.Empty(t, first.Tasks)

	require.NoError(t, s.SaveTask(context.Background(), &domain.Task{ID: "t1", StartDate: "2024-05-01"}))

	second := receive(t, snaps)
	require.Len(t, second.Tasks, 1)
	assert.Equal(t, "t1", second.Tasks[0].ID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}
}

func TestStore_SubscribeReturnsWhenBackendCloses(t *testing.T) {
	s := newTestStore(t)

	done := make(chan error, 1)
	started := make(chan struct{})
	go func() {
		done <- s.Subscribe(context.Background(), func(domain.Snapshot) { close(started) })
	}()

	<-started
	require.NoError(t, s.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrStoreClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe did not return after Close")
	}
}

type failingBackend struct {
	*Memory
}

func (failingBackend) List(context.Context, string) ([][]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestStore_ListError(t *testing.T) {
	s := New(failingBackend{NewMemory()}, nil, nil)

	_, err := s.ListTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list tasks")

	err = s.Subscribe(context.Background(), func(domain.Snapshot) {})
	assert.Error(t, err)
}

func receive(t *testing.T, ch <-chan domain.Snapshot) domain.Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return domain.Snapshot{}
	}
}

func TestStore_LoadWarnsAboutUndecodableDocuments(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	logger := &testutil.MockLogger{}
	s := New(b, nil, logger)
	require.NoError(t, b.Put(ctx, domain.CollectionTasks, "good", []byte(`{"id":"good","startDate":"2024-05-01"}`)))
	require.NoError(t, b.Put(ctx, domain.CollectionTasks, "bad", []byte(`{"id":"bad","startDate":20240501}`)))

	snap, err := s.Load(ctx)

	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "good", snap.Tasks[0].ID)
	require.Equal(t, 1, logger.Count("warn"))
	assert.Equal(t, logCategory, logger.Entries[0].Category)
	assert.Contains(t, logger.Entries[0].Msg, "tasks")
}
