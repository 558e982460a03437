package ioalbum

import (
	"database/sql"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/gnames/gndicom/internal/iofs"
	"github.com/gnames/gndicom/pkg/album"
	"github.com/gnames/gndicom/pkg/schema"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	path string
	sql  *sql.DB
	db   *gorm.DB
}

// NewSQLite creates a store that keeps all albums in <dir>/albums.db.
// The schema is created or migrated on open. The returned store
// implements io.Closer.
func NewSQLite(dir string) (album.Store, error) {
	if err := iofs.EnsureDir(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, DBFile)
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, DBError(path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if _, err = sqlDB.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = sqlDB.Close()
		return nil, DBError(path, err)
	}

	db, err := gorm.Open(
		&sqlite.Dialector{Conn: sqlDB},
		&gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)},
	)
	if err != nil {
		_ = sqlDB.Close()
		return nil, DBError(path, err)
	}

	if err = schema.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, DBError(path, err)
	}

	res := sqliteStore{path: path, sql: sqlDB, db: db}
	return &res, nil
}

// Close closes the database.
func (s *sqliteStore) Close() error {
	return s.sql.Close()
}

func (s *sqliteStore) Create(name, description, creator string) (*album.Album, error) {
	t := now()
	a := &album.Album{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Creator:     creatorOrDefault(creator),
		CreatedAt:   t,
		ModifiedAt:  t,
		Images:      []string{},
		Metadata:    make(map[string]any),
	}

	row, _ := schema.FromAlbum(a)
	if err := s.db.Create(&row).Error; err != nil {
		return nil, WriteError(s.path, err)
	}

	slog.Info("Created album", "album", a.ID, "name", name)
	return a, nil
}

func (s *sqliteStore) AddImages(id string, paths []string) (bool, error) {
	op := "add"
	var found bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		a, ok, err := s.load(tx, id)
		if err != nil || !ok {
			return err
		}
		found = true

		start := len(a.Images)
		count := a.AddImages(paths, fileExists, now())
		_, images := schema.FromAlbum(a)
		if count > 0 {
			added := images[start:]
			if err = tx.Create(&added).Error; err != nil {
				return err
			}
		}
		slog.Info("Added images to album",
			"album", id, "added", count, "requested", len(paths))
		return s.touch(tx, a)
	})
	if err != nil {
		return false, WriteError(s.path, err)
	}
	if !found {
		logNotFound(op, id)
	}
	return found, nil
}

func (s *sqliteStore) RemoveImages(id string, paths []string) (bool, error) {
	op := "remove"
	var found bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		a, ok, err := s.load(tx, id)
		if err != nil || !ok {
			return err
		}
		found = true

		count := a.RemoveImages(paths, now())
		if count > 0 {
			err = tx.Where("album_id = ?", id).Delete(&schema.AlbumImage{}).Error
			if err != nil {
				return err
			}
			_, images := schema.FromAlbum(a)
			if len(images) > 0 {
				if err = tx.Create(&images).Error; err != nil {
					return err
				}
			}
		}
		slog.Info("Removed images from album",
			"album", id, "removed", count, "requested", len(paths))
		return s.touch(tx, a)
	})
	if err != nil {
		return false, WriteError(s.path, err)
	}
	if !found {
		logNotFound(op, id)
	}
	return found, nil
}

func (s *sqliteStore) Delete(id string) (bool, error) {
	var found bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("album_id = ?", id).Delete(&schema.AlbumImage{}).Error
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&schema.Album{})
		found = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, DeleteError(s.path, err)
	}

	if found {
		slog.Info("Deleted album", "album", id)
	} else {
		logNotFound("delete", id)
	}
	return found, nil
}

func (s *sqliteStore) Get(id string) (*album.Album, bool, error) {
	a, ok, err := s.load(s.db, id)
	if err != nil {
		return nil, false, ReadError(s.path, err)
	}
	return a, ok, nil
}

func (s *sqliteStore) List() ([]*album.Album, error) {
	var rows []schema.Album
	err := s.db.Order("created_at, id").Find(&rows).Error
	if err != nil {
		return nil, ReadError(s.path, err)
	}

	var images []schema.AlbumImage
	err = s.db.Order("album_id, position").Find(&images).Error
	if err != nil {
		return nil, ReadError(s.path, err)
	}

	byAlbum := make(map[string][]schema.AlbumImage)
	for _, v := range images {
		byAlbum[v.AlbumID] = append(byAlbum[v.AlbumID], v)
	}

	res := make([]*album.Album, 0, len(rows))
	for _, row := range rows {
		res = append(res, schema.ToAlbum(row, byAlbum[row.ID]))
	}
	album.SortAlbums(res)
	return res, nil
}

func (s *sqliteStore) load(db *gorm.DB, id string) (*album.Album, bool, error) {
	var row schema.Album
	err := db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var images []schema.AlbumImage
	err = db.Where("album_id = ?", id).Order("position").Find(&images).Error
	if err != nil {
		return nil, false, err
	}
	return schema.ToAlbum(row, images), true, nil
}

func (s *sqliteStore) touch(tx *gorm.DB, a *album.Album) error {
	return tx.Model(&schema.Album{}).
		Where("id = ?", a.ID).
		Update("modified_at", a.ModifiedAt).Error
}
