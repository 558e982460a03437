// Package iofs prepares the file system layout of GNdicom: config,
// data and log directories and the default config file.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gndicom/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, data and log directories under homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := EnsureDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates dir with all its parents unless it already exists.
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded config.yaml to the config
// directory, unless a config file is already there.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
