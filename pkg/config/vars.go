package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gndicom"

	// DefaultCreator is recorded on albums created without an explicit
	// creator.
	DefaultCreator = "system"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gndicom by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for persistent application data.
// Returns ~/.local/share/gndicom by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gndicom/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// AlbumsDir returns the default directory of the album store.
// Returns ~/.local/share/gndicom/albums by default.
func AlbumsDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "albums")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gndicom/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
