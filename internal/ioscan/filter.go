package ioscan

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/gndicom/pkg/config"
)

// Filter decides if a file is a candidate for ingestion.
type Filter func(path string) bool

// All combines filters. A file is accepted when every filter accepts it.
func All(filters ...Filter) Filter {
	return func(path string) bool {
		for _, f := range filters {
			if f != nil && !f(path) {
				return false
			}
		}
		return true
	}
}

// PrefixFilter accepts files whose name starts with prefix.
// Empty prefix accepts everything.
func PrefixFilter(prefix string) Filter {
	return func(path string) bool {
		return strings.HasPrefix(filepath.Base(path), prefix)
	}
}

// ExtensionFilter accepts files with one of the extensions, compared
// case-insensitively. Extensions must be lowercase and start with a dot.
// No extensions accepts everything.
func ExtensionFilter(exts ...string) Filter {
	return func(path string) bool {
		if len(exts) == 0 {
			return true
		}
		ext := strings.ToLower(filepath.Ext(path))
		return slices.Contains(exts, ext)
	}
}

// NotHidden rejects files whose name starts with a dot.
func NotHidden() Filter {
	return func(path string) bool {
		return !strings.HasPrefix(filepath.Base(path), ".")
	}
}

// FromConfig builds the include filter from scan settings.
func FromConfig(cfg config.ScanConfig) Filter {
	filters := []Filter{
		PrefixFilter(cfg.Prefix),
		ExtensionFilter(cfg.Extensions...),
	}
	if cfg.SkipHidden {
		filters = append(filters, NotHidden())
	}
	return All(filters...)
}
