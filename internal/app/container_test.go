package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
	"github.com/runoshun/editflow/internal/usecase"
)

func isolateGlobalConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestNew_DefaultJSONStore(t *testing.T) {
	isolateGlobalConfig(t)
	dataDir := filepath.Join(t.TempDir(), ".editflow")
	ctx := context.Background()

	c, err := New(ctx, dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, filepath.Join(dataDir, domain.StoreFileName), c.Config.StorePath)
	assert.Equal(t, time.Monday, c.WeekStart())

	out, err := c.InitStoreUseCase().Execute(ctx, usecase.InitStoreInput{})
	require.NoError(t, err)
	assert.True(t, out.ConfigCreated)
	assert.FileExists(t, c.Config.StorePath)
	assert.FileExists(t, domain.DataConfigPath(dataDir))

	editors, err := c.ListEditorsUseCase().Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, editors, 4)
}

func TestNew_SQLiteStore(t *testing.T) {
	isolateGlobalConfig(t)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.DataConfigPath(dataDir),
		[]byte("[store]\ntype = \"sqlite\"\n\n[calendar]\nweek_start = \"sunday\"\n"), 0o600))
	ctx := context.Background()

	c, err := New(ctx, dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, filepath.Join(dataDir, domain.SQLiteFileName), c.Config.StorePath)
	assert.Equal(t, time.Sunday, c.WeekStart())

	_, err = c.InitStoreUseCase().Execute(ctx, usecase.InitStoreInput{SkipSeed: true})
	require.NoError(t, err)

	out, err := c.SaveTaskUseCase().Execute(ctx, usecase.SaveTaskInput{
		Show: ptr("DC Insiders"), Editor: ptr("James"), StartDate: ptr("2024-05-01"), EndDate: ptr("2024-05-02"),
	})
	require.NoError(t, err)
	assert.Len(t, out.Task.ID, 20)
}

func TestNew_UnknownStore(t *testing.T) {
	isolateGlobalConfig(t)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.DataConfigPath(dataDir), []byte("[store]\ntype = \"mongo\"\n"), 0o600))

	_, err := New(context.Background(), dataDir)

	assert.ErrorIs(t, err, domain.ErrUnknownStore)
}

func TestNew_PostgresWithoutURL(t *testing.T) {
	isolateGlobalConfig(t)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.DataConfigPath(dataDir), []byte("[store]\ntype = \"postgres\"\n"), 0o600))

	_, err := New(context.Background(), dataDir)

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewWithDeps(t *testing.T) {
	store := testutil.NewMockScheduleStore()
	c := NewWithDeps(Config{DataDir: t.TempDir()}, store, &testutil.MockClock{}, &testutil.MockIDGenerator{}, &testutil.MockLogger{})

	out, err := c.SaveEditorUseCase().Execute(context.Background(), usecase.SaveEditorInput{Name: ptr("Mia")})

	require.NoError(t, err)
	assert.Equal(t, "id1", out.Editor.ID)
	assert.NoError(t, c.Close())
}

func ptr(s string) *string { return &s }
