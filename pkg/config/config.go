// Package config provides configuration management for GNdicom.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Scan: root, prefix, extensions, skip_hidden
//   - Albums: dir, backend, creator
//   - Log: level, format, destination
//   - Output: format
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNDICOM_ prefix with underscores for nesting:
//
//	GNDICOM_SCAN_ROOT=/data/dicom
//	GNDICOM_ALBUMS_BACKEND=sqlite
//	GNDICOM_LOG_LEVEL=debug
//	GNDICOM_OUTPUT_FORMAT=json
package config

// Config represents the complete GNdicom configuration.
type Config struct {
	// Scan contains settings for discovering DICOM files.
	Scan ScanConfig `mapstructure:"scan" yaml:"scan"`

	// Albums contains settings of the album store.
	Albums AlbumsConfig `mapstructure:"albums" yaml:"albums"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Output contains settings for rendering results on the command line.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ScanConfig determines which files under a directory are treated as
// DICOM candidates.
type ScanConfig struct {
	// Root is the directory scanned when a command gets no directory
	// argument.
	Root string `mapstructure:"root" yaml:"root"`

	// Prefix keeps only files whose base name starts with it.
	// Empty value disables the filter.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// Extensions keeps only files with one of the given extensions
	// (for example ".dcm"). Empty slice disables the filter.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// SkipHidden ignores files and directories starting with a dot.
	SkipHidden bool `mapstructure:"skip_hidden" yaml:"skip_hidden"`
}

// AlbumsConfig contains settings of the album store.
type AlbumsConfig struct {
	// Dir is the directory where albums are persisted.
	// If empty, AlbumsDir(HomeDir) is used.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Backend is the persistence format: 'json' (one file per album)
	// or 'sqlite' (one database for all albums).
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Creator is recorded as the author of newly created albums.
	Creator string `mapstructure:"creator" yaml:"creator"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// OutputConfig contains settings of command line output.
type OutputConfig struct {
	// Format can be 'auto', 'table', 'json' or 'yaml'. With 'auto' a
	// table is printed to a terminal and JSON everywhere else.
	Format string `mapstructure:"format" yaml:"format"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Scan: ScanConfig{
			Root:       "./DICOM",
			SkipHidden: true,
		},
		Albums: AlbumsConfig{
			Backend: "json",
			Creator: "system",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Output: OutputConfig{
			Format: "auto",
		},
	}

	return res
}

// AlbumsPath returns the directory of the album store, falling back to
// the default location under HomeDir.
func (c *Config) AlbumsPath() string {
	if c.Albums.Dir != "" {
		return c.Albums.Dir
	}
	return AlbumsDir(c.HomeDir)
}
