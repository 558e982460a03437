package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
//
// Prefix, Extensions and SkipHidden are always included, because their
// zero values are meaningful.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string

	s = c.Scan.Root
	if s != "" {
		res = append(res, OptScanRoot(s))
	}
	res = append(res,
		OptScanPrefix(c.Scan.Prefix),
		OptScanExtensions(c.Scan.Extensions),
		OptScanSkipHidden(c.Scan.SkipHidden),
	)

	s = c.Albums.Dir
	if s != "" {
		res = append(res, OptAlbumsDir(s))
	}
	s = c.Albums.Backend
	if s != "" {
		res = append(res, OptAlbumsBackend(s))
	}
	s = c.Albums.Creator
	if s != "" {
		res = append(res, OptAlbumsCreator(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	s = c.Output.Format
	if s != "" {
		res = append(res, OptOutputFormat(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Albums.Backend":  {"json": s, "sqlite": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
		"Output.Format":   {"auto": s, "table": s, "json": s, "yaml": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
