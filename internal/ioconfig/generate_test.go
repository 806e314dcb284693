package ioconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntree/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configDir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, ".config", "gntree"), configDir)
}

func TestGetCacheDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cacheDir, err := GetCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempHome, ".cache", "gntree"), cacheDir)
}

func TestGetDefaultConfigPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath, err := GetDefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join(tempHome, ".config", "gntree", "config.yaml"),
		configPath)
	assert.True(t, filepath.IsAbs(configPath))
}

func TestGenerateDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("creates config file", func(t *testing.T) {
		configPath, err := GenerateDefaultConfig()
		require.NoError(t, err)

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, templates.ConfigYAML, string(content))

		exists, err := ConfigFileExists()
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("does not overwrite existing file", func(t *testing.T) {
		_, err := GenerateDefaultConfig()
		assert.Error(t, err)
	})
}

func TestGeneratedConfigIsValid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configPath, err := GenerateDefaultConfig()
	require.NoError(t, err)

	assert.NoError(t, ValidateGeneratedConfig(configPath))

	// The template must load through the regular loader as pure
	// defaults: every value is commented out.
	res, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", res.Config.Database.Engine)
	assert.Equal(t, "!!", res.Config.Tree.Delimiter)
}

func TestConfigFileExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	exists, err := ConfigFileExists()
	require.NoError(t, err)
	assert.False(t, exists)
}
