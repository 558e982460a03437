// Package ioscan finds candidate DICOM files in a directory tree.
package ioscan

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gndicom/pkg/catalog"
)

type walker struct {
	include Filter
}

// New returns a Discoverer that walks a directory tree and keeps regular
// files accepted by include. A nil include keeps every regular file.
func New(include Filter) catalog.Discoverer {
	if include == nil {
		include = All()
	}
	return &walker{include: include}
}

// Discover returns accepted files under root in lexical order.
// Subdirectories that cannot be read are logged and skipped.
func (w *walker) Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, catalog.ScanRootError(root, err)
	}
	if !info.IsDir() {
		return nil, catalog.ScanRootError(root, errors.New("not a directory"))
	}

	var res []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if w.include(path) {
			res = append(res, path)
		}
		return nil
	})
	if err != nil {
		return nil, catalog.ScanRootError(root, err)
	}

	slog.Debug("Found candidate files", "root", root, "count", len(res))
	return res, nil
}
