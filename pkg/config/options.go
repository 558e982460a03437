package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptScanRoot sets the directory scanned by default.
func OptScanRoot(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Scan Root", s) {
			c.Scan.Root = s
		}
	}
}

// OptScanPrefix sets the file name prefix of DICOM candidates.
// Empty string removes the filter.
func OptScanPrefix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Scan.Prefix = s
	}
}

// OptScanExtensions sets the file extensions of DICOM candidates.
// Extensions are lowercased and get a leading dot if it is missing.
func OptScanExtensions(ss []string) Option {
	var exts []string
	for _, v := range ss {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if !strings.HasPrefix(v, ".") {
			v = "." + v
		}
		exts = append(exts, v)
	}
	return func(c *Config) {
		c.Scan.Extensions = exts
	}
}

// OptScanSkipHidden sets whether dot-files and dot-directories are
// ignored during a scan.
func OptScanSkipHidden(b bool) Option {
	return func(c *Config) {
		c.Scan.SkipHidden = b
	}
}

// OptAlbumsDir sets the directory of the album store.
func OptAlbumsDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Albums Dir", s) {
			c.Albums.Dir = s
		}
	}
}

// OptAlbumsBackend sets the persistence format of albums.
// Valid values: "json", "sqlite".
func OptAlbumsBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Albums.Backend", s) {
			c.Albums.Backend = s
		}
	}
}

// OptAlbumsCreator sets the creator recorded on new albums.
func OptAlbumsCreator(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Albums Creator", s) {
			c.Albums.Creator = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptOutputFormat sets how results are printed.
// Valid values: "auto", "table", "json", "yaml".
func OptOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Output.Format", s) {
			c.Output.Format = s
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
