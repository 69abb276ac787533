// Package brand provides centralized branding constants and the default
// locations of the settings directory and config file.
//
// The brand identity is loaded from brand.json at compile time via go:embed.
// The trial core never calls into this package; only the CLI resolves
// directories here and injects them.
package brand

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information
type Brand struct {
	Name            string `json:"name"`
	LowerName       string `json:"lowerName"`
	Vendor          string `json:"vendor"`
	Website         string `json:"website"`
	Description     string `json:"description"`
	ConfigEnvPrefix string `json:"configEnvPrefix"`
	SettingsDirName string `json:"settingsDirName"`
	ConfigFileName  string `json:"configFileName"`
	BinaryName      string `json:"binaryName"`
	Copyright       string `json:"copyright"`
	License         string `json:"license"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Vendor = b.Vendor
	Website = b.Website
	Description = b.Description
	ConfigEnvPrefix = b.ConfigEnvPrefix
	SettingsDirName = b.SettingsDirName
	ConfigFileName = b.ConfigFileName
	BinaryName = b.BinaryName
	Copyright = b.Copyright
	License = b.License
}

// Exported variables for convenience
var (
	Name            string
	LowerName       string
	Vendor          string
	Website         string
	Description     string
	ConfigEnvPrefix string
	SettingsDirName string
	ConfigFileName  string
	BinaryName      string
	Copyright       string
	License         string

	// Version is set at build time via -ldflags
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Get returns the full Brand struct
func Get() Brand {
	return b
}

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// GetAppDataDir returns the per-user application data directory.
// Priority: APPTRIAL_PREFIX > os.UserConfigDir()/apptrial > ./.apptrial
func GetAppDataDir() string {
	if prefix := os.Getenv(ConfigEnvPrefix + "_PREFIX"); prefix != "" {
		return prefix
	}
	if dir, err := userConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, LowerName)
	}
	return "." + LowerName
}

// GetSettingsDir returns the directory holding the trial settings file.
// Priority: APPTRIAL_SETTINGS_DIR > <app data dir>/settings
func GetSettingsDir() string {
	if dir := os.Getenv(ConfigEnvPrefix + "_SETTINGS_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(GetAppDataDir(), SettingsDirName)
}

// GetConfigPath returns the default CLI config file path.
// Priority: APPTRIAL_CONFIG > <app data dir>/apptrial.hcl
func GetConfigPath() string {
	if path := os.Getenv(ConfigEnvPrefix + "_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(GetAppDataDir(), ConfigFileName)
}
