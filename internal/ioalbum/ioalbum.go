// Package ioalbum persists albums on the local file system, either as
// one JSON document per album or in a SQLite database.
package ioalbum

import (
	"log/slog"
	"os"
	"time"

	"github.com/gnames/gndicom/pkg/album"
	"github.com/gnames/gndicom/pkg/config"
)

const (
	// LockFile guards read-modify-write cycles of the JSON store.
	LockFile = ".lock"

	// DBFile is the database of the SQLite store.
	DBFile = "albums.db"
)

// New creates the album store configured by cfg.Albums.Backend.
// The store directory is created if it does not exist.
func New(cfg *config.Config) (album.Store, error) {
	dir := cfg.AlbumsPath()
	switch cfg.Albums.Backend {
	case "", "json":
		return NewJSON(dir)
	case "sqlite":
		return NewSQLite(dir)
	default:
		return nil, BackendError(cfg.Albums.Backend)
	}
}

// fileExists reports if path points to an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func now() time.Time {
	return time.Now().UTC()
}

func creatorOrDefault(creator string) string {
	if creator == "" {
		return config.DefaultCreator
	}
	return creator
}

func logNotFound(op, id string) {
	slog.Error("Album not found", "operation", op, "album", id)
}
