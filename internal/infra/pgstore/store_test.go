package pgstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/infra/docstore"
	"github.com/runoshun/editflow/internal/infra/docstore/docstoretest"
)

func testURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv(domain.TestPGURLEnvVar)
	if url == "" {
		t.Skipf("%s not set", domain.TestPGURLEnvVar)
	}
	return url
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	name := "editflow_test_" + xid.New().String()
	s, err := New(ctx, testURL(t), Options{Table: name, Channel: name}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Initialize(ctx))
	t.Cleanup(func() { dropTable(t, name) })
	return s
}

// dropTable uses its own connection; the store under test may already be closed.
func dropTable(t *testing.T, name string) {
	s, err := New(context.Background(), testURL(t), Options{Table: name}, nil)
	if err != nil {
		return
	}
	defer s.Close()
	_ = s.Drop(context.Background())
}

func TestStore_Backend(t *testing.T) {
	testURL(t)
	docstoretest.Run(t, func(t *testing.T) docstore.Backend {
		return newTestStore(t)
	})
}

func TestStore_InitializeIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	assert.NoError(t, s.Initialize(context.Background()))
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(context.Background(), "", Options{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestStore_CloseEndsOpenChangeFeed(t *testing.T) {
	s := newTestStore(t)

	changes, err := s.Changes(context.Background())
	require.NoError(t, err)

	closed := make(chan error, 1)
	go func() { closed <- s.Close() }()

	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(docstoretest.WaitTimeout):
		t.Fatal("Close blocked on an open change feed")
	}
	docstoretest.Closed(t, changes)

	_, err = s.Changes(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
	assert.NoError(t, s.Close())
}

func TestStore_SubscribeEndsWhenClosed(t *testing.T) {
	s := newTestStore(t)
	store := docstore.New(s, nil, nil)

	snaps := make(chan domain.Snapshot, 1)
	errs := make(chan error, 1)
	go func() {
		errs <- store.Subscribe(context.Background(), func(snap domain.Snapshot) { snaps <- snap })
	}()

	select {
	case <-snaps:
	case <-time.After(docstoretest.WaitTimeout):
		t.Fatal("no initial snapshot")
	}
	require.NoError(t, store.Close())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, domain.ErrStoreClosed)
	case <-time.After(docstoretest.WaitTimeout):
		t.Fatal("Subscribe did not return after Close")
	}
}
