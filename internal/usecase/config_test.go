package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
	"github.com/runoshun/editflow/internal/testutil"
)

func TestShowConfig_Execute(t *testing.T) {
	cm := testutil.NewMockConfigManager()
	cm.DataConfigInfo.Exists = true
	cm.DataConfigInfo.Content = "[log]\nlevel = \"debug\"\n"
	loader := testutil.NewMockConfigLoader()
	loader.Config.Log.Level = "debug"

	out, err := NewShowConfig(cm, loader).Execute(context.Background(), ShowConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, "debug", out.Effective.Log.Level)
	assert.True(t, out.DataConfig.Exists)
	assert.False(t, out.GlobalConfig.Exists)
}

func TestShowConfig_Execute_LoadError(t *testing.T) {
	loader := testutil.NewMockConfigLoader()
	loader.LoadErr = assert.AnError

	_, err := NewShowConfig(testutil.NewMockConfigManager(), loader).Execute(context.Background(), ShowConfigInput{})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestInitConfig_Execute(t *testing.T) {
	cm := testutil.NewMockConfigManager()
	uc := NewInitConfig(cm)

	out, err := uc.Execute(context.Background(), InitConfigInput{})
	require.NoError(t, err)
	assert.True(t, cm.InitDataCalled)
	assert.Equal(t, cm.DataConfigInfo.Path, out.Path)

	out, err = uc.Execute(context.Background(), InitConfigInput{Global: true})
	require.NoError(t, err)
	assert.True(t, cm.InitGlobalCalled)
	assert.Equal(t, cm.GlobalConfigInfo.Path, out.Path)
}

func TestInitConfig_Execute_Exists(t *testing.T) {
	cm := testutil.NewMockConfigManager()
	cm.InitDataErr = domain.ErrConfigExists

	_, err := NewInitConfig(cm).Execute(context.Background(), InitConfigInput{})

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
