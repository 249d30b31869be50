package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
)

func TestManager_GetDataConfigInfo(t *testing.T) {
	dataDir := t.TempDir()
	m := NewManagerWithGlobalDir(dataDir, t.TempDir())

	info := m.GetDataConfigInfo()
	assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
	assert.False(t, info.Exists)

	writeConfig(t, dataDir, "[log]\nlevel = \"debug\"\n")
	info = m.GetDataConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "debug")
}

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	globalDir := t.TempDir()
	m := NewManagerWithGlobalDir(t.TempDir(), globalDir)

	info := m.GetGlobalConfigInfo()
	assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
	assert.False(t, info.Exists)

	empty := NewManagerWithGlobalDir(t.TempDir(), "")
	assert.Equal(t, domain.ConfigInfo{}, empty.GetGlobalConfigInfo())
}

func TestManager_InitDataConfig(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".editflow")
	m := NewManagerWithGlobalDir(dataDir, t.TempDir())

	require.NoError(t, m.InitDataConfig())

	content, err := os.ReadFile(filepath.Join(dataDir, domain.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), `type = "json"`)

	// The written template loads without warnings.
	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)

	assert.ErrorIs(t, m.InitDataConfig(), domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "editflow")
	m := NewManagerWithGlobalDir(t.TempDir(), globalDir)

	require.NoError(t, m.InitGlobalConfig())
	assert.True(t, m.GetGlobalConfigInfo().Exists)
	assert.ErrorIs(t, m.InitGlobalConfig(), domain.ErrConfigExists)

	assert.Error(t, NewManagerWithGlobalDir(t.TempDir(), "").InitGlobalConfig())
}
