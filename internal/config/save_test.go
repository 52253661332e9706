package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigManager_SaveConfigRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".toml", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "edda"+ext)
			manager := newTestManager(nil)

			want := validConfig()
			require.NoError(t, manager.SaveConfig(want, path))

			got, err := manager.LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, want.ProjectName, got.ProjectName)
			assert.Equal(t, want.Rules, got.Rules)
			assert.Equal(t, want.DefaultStyle, got.DefaultStyle)
			assert.Equal(t, want.Output, got.Output)
			assert.Equal(t, want.Processing, got.Processing)
		})
	}
}

func TestConfigManager_SaveConfigCreatesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edda.json")
	manager := newTestManager(nil)

	require.NoError(t, manager.SaveConfig(validConfig(), path))
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	updated := validConfig()
	updated.ProjectName = "Updated"
	require.NoError(t, manager.SaveConfig(updated, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "edda_backup_") {
			backups = append(backups, e.Name())
		}
	}
	require.Len(t, backups, 1)
	assert.True(t, strings.HasSuffix(backups[0], ".json"))

	data, err := os.ReadFile(filepath.Join(dir, backups[0]))
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestConfigManager_SaveConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edda.json")
	config := validConfig()
	config.ProjectName = ""

	assert.Error(t, NewConfigManager().SaveConfig(config, path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, NewConfigManager().SaveConfig(validConfig(), filepath.Join(t.TempDir(), "edda.cfg")))
}

func TestBackupPath(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 30, 5, 0, time.UTC)
	assert.Equal(t, filepath.Join("dir", "edda_backup_20240501_083005.toml"),
		backupPath(filepath.Join("dir", "edda.toml"), now))
}
