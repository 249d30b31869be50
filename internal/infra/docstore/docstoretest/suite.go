// Package docstoretest provides a conformance suite for docstore.Backend implementations.
package docstoretest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/infra/docstore"
)

// WaitTimeout bounds how long the suite waits for a change signal.
const WaitTimeout = 5 * time.Second

// Run exercises a backend. newBackend must return an initialized, empty backend;
// the suite closes it.
func Run(t *testing.T, newBackend func(t *testing.T) docstore.Backend) {
	t.Helper()

	t.Run("PutGet", func(t *testing.T) {
		ctx := context.Background()
		b := open(t, newBackend)

		require.NoError(t, b.Put(ctx, "tasks", "t1", []byte(`{"id":"t1","show":"DC Insiders"}`)))

		raw, err := b.Get(ctx, "tasks", "t1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"t1","show":"DC Insiders"}`, string(raw))

		_, err = b.Get(ctx, "tasks", "missing")
		assert.ErrorIs(t, err, docstore.ErrNotFound)

		_, err = b.Get(ctx, "editors", "t1")
		assert.ErrorIs(t, err, docstore.ErrNotFound)
	})

	t.Run("PutReplaces", func(t *testing.T) {
		ctx := context.Background()
		b := open(t, newBackend)

		require.NoError(t, b.Put(ctx, "editors", "e1", []byte(`{"id":"e1","name":"James"}`)))
		require.NoError(t, b.Put(ctx, "editors", "e1", []byte(`{"id":"e1","name":"Jim"}`)))

		docs, err := b.List(ctx, "editors")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.JSONEq(t, `{"id":"e1","name":"Jim"}`, string(docs[0]))
	})

	t.Run("ListByCollection", func(t *testing.T) {
		ctx := context.Background()
		b := open(t, newBackend)

		require.NoError(t, b.Put(ctx, "programs", "p1", []byte(`{"id":"p1"}`)))
		require.NoError(t, b.Put(ctx, "programs", "p2", []byte(`{"id":"p2"}`)))
		require.NoError(t, b.Put(ctx, "editors", "e1", []byte(`{"id":"e1"}`)))

		programs, err := b.List(ctx, "programs")
		require.NoError(t, err)
		assert.Len(t, programs, 2)

		tasks, err := b.List(ctx, "tasks")
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		b := open(t, newBackend)

		require.NoError(t, b.Put(ctx, "tasks", "t1", []byte(`{"id":"t1"}`)))
		require.NoError(t, b.Delete(ctx, "tasks", "t1"))

		_, err := b.Get(ctx, "tasks", "t1")
		assert.ErrorIs(t, err, docstore.ErrNotFound)

		assert.NoError(t, b.Delete(ctx, "tasks", "t1"))
	})

	t.Run("LoadSkipsUndecodable", func(t *testing.T) {
		ctx := context.Background()
		b := open(t, newBackend)
		s := docstore.New(b, nil, nil)

		require.NoError(t, b.Put(ctx, domain.CollectionTasks, "good",
			[]byte(`{"id":"good","show":"DC Insiders","startDate":"2024-05-01","endDate":"2024-05-02"}`)))
		require.NoError(t, b.Put(ctx, domain.CollectionTasks, "bad", []byte(`{"id":"bad","startDate":20240501}`)))
		require.NoError(t, b.Put(ctx, domain.CollectionEditors, "e1", []byte(`{"id":"e1","name":"James"}`)))

		snap, err := s.Load(ctx)

		require.NoError(t, err)
		require.Len(t, snap.Tasks, 1)
		assert.Equal(t, "good", snap.Tasks[0].ID)
		require.Len(t, snap.Editors, 1)
	})

	t.Run("Changes", func(t *testing.T) {
		b := open(t, newBackend)
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := b.Changes(ctx)
		require.NoError(t, err)

		require.NoError(t, b.Put(context.Background(), "tasks", "t1", []byte(`{"id":"t1"}`)))
		Wait(t, changes)

		require.NoError(t, b.Delete(context.Background(), "tasks", "t1"))
		Wait(t, changes)

		cancel()
		Closed(t, changes)
	})
}

func open(t *testing.T, newBackend func(t *testing.T) docstore.Backend) docstore.Backend {
	t.Helper()
	b := newBackend(t)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// Wait fails the test unless a change signal arrives in time.
func Wait(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case _, ok := <-changes:
		require.True(t, ok, "change feed closed unexpectedly")
	case <-time.After(WaitTimeout):
		t.Fatal("timed out waiting for change signal")
	}
}

// Closed fails the test unless the change channel is closed in time.
// Pending signals are drained first.
func Closed(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	deadline := time.After(WaitTimeout)
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("change feed was not closed")
		}
	}
}
