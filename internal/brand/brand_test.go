package brand

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	b := Get()
	assert.Equal(t, "AppTrial", b.Name)
	assert.Equal(t, "apptrial", LowerName)
	assert.Equal(t, "settings", SettingsDirName)
	assert.NotEmpty(t, Version)
}

func TestGetDirectories(t *testing.T) {
	t.Setenv(ConfigEnvPrefix+"_PREFIX", "")
	t.Setenv(ConfigEnvPrefix+"_SETTINGS_DIR", "")
	t.Setenv(ConfigEnvPrefix+"_CONFIG", "")

	saved := userConfigDir
	t.Cleanup(func() { userConfigDir = saved })
	userConfigDir = func() (string, error) { return "/home/u/.config", nil }

	t.Run("Defaults", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/home/u/.config", "apptrial"), GetAppDataDir())
		assert.Equal(t, filepath.Join("/home/u/.config", "apptrial", "settings"), GetSettingsDir())
		assert.Equal(t, filepath.Join("/home/u/.config", "apptrial", "apptrial.hcl"), GetConfigPath())
	})

	t.Run("Prefix", func(t *testing.T) {
		t.Setenv(ConfigEnvPrefix+"_PREFIX", "/opt/trial")
		assert.Equal(t, "/opt/trial", GetAppDataDir())
		assert.Equal(t, filepath.Join("/opt/trial", "settings"), GetSettingsDir())
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv(ConfigEnvPrefix+"_PREFIX", "/opt/trial")
		t.Setenv(ConfigEnvPrefix+"_SETTINGS_DIR", "/tmp/s")
		t.Setenv(ConfigEnvPrefix+"_CONFIG", "/tmp/c.hcl")
		assert.Equal(t, "/tmp/s", GetSettingsDir())
		assert.Equal(t, "/tmp/c.hcl", GetConfigPath())
	})

	t.Run("NoUserConfigDir", func(t *testing.T) {
		userConfigDir = func() (string, error) { return "", errors.New("$HOME is not defined") }
		assert.Equal(t, ".apptrial", GetAppDataDir())
	})
}
