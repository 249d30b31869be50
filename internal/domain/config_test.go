package domain

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, StoreJSON, cfg.Store.Type)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, MembershipBoundary, cfg.StatsOptions().Membership)
}

func TestConfig_StatsOptions(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Stats.Membership = "overlap"
	assert.Equal(t, MembershipOverlap, cfg.StatsOptions().Membership)

	cfg.Stats.Membership = "bogus"
	assert.Equal(t, MembershipBoundary, cfg.StatsOptions().Membership)
}

func TestRenderConfigTemplate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Store.Type = StoreSQLite
	cfg.Stats.Membership = "overlap"

	out := RenderConfigTemplate(cfg)

	assert.True(t, strings.HasPrefix(out, "# editflow configuration"))

	var parsed Config
	require.NoError(t, toml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, StoreSQLite, parsed.Store.Type)
	assert.Equal(t, "overlap", parsed.Stats.Membership)
	assert.Equal(t, "monday", parsed.Calendar.WeekStart)
}

func TestResolveDataDir(t *testing.T) {
	t.Setenv(DataDirEnvVar, "")
	assert.Equal(t, "/flag", ResolveDataDir("/flag", "/work"))
	assert.Equal(t, filepath.Join("/work", DataDirName), ResolveDataDir("", "/work"))

	t.Setenv(DataDirEnvVar, "/env")
	assert.Equal(t, "/env", ResolveDataDir("", "/work"))
}

func TestStorePath(t *testing.T) {
	assert.Equal(t, "/d/schedule.json", StorePath("/d", StoreConfig{Type: StoreJSON}))
	assert.Equal(t, "/d/schedule.db", StorePath("/d", StoreConfig{Type: StoreSQLite}))
	assert.Equal(t, "/d/custom.json", StorePath("/d", StoreConfig{Path: "custom.json"}))
	assert.Equal(t, "/abs/x.db", StorePath("/d", StoreConfig{Type: StoreSQLite, Path: "/abs/x.db"}))
	assert.Equal(t, "/d/logs/editflow.log", LogPath("/d"))
}
