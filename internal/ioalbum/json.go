package ioalbum

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gndicom/internal/iofs"
	"github.com/gnames/gndicom/pkg/album"
	"github.com/gnames/gnfmt"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

type jsonStore struct {
	dir  string
	lock *flock.Flock
	enc  gnfmt.GNjson
}

// NewJSON creates a store that keeps every album in <dir>/<id>.json.
func NewJSON(dir string) (album.Store, error) {
	if err := iofs.EnsureDir(dir); err != nil {
		return nil, err
	}
	res := jsonStore{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, LockFile)),
		enc:  gnfmt.GNjson{Pretty: true},
	}
	return &res, nil
}

func (s *jsonStore) Create(name, description, creator string) (*album.Album, error) {
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

	err := s.withLock(func() error {
		return s.write(a)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Created album", "album", a.ID, "name", name)
	return a, nil
}

func (s *jsonStore) AddImages(id string, paths []string) (bool, error) {
	return s.update("add", id, func(a *album.Album) {
		count := a.AddImages(paths, fileExists, now())
		slog.Info("Added images to album",
			"album", id, "added", count, "requested", len(paths))
	})
}

func (s *jsonStore) RemoveImages(id string, paths []string) (bool, error) {
	return s.update("remove", id, func(a *album.Album) {
		count := a.RemoveImages(paths, now())
		slog.Info("Removed images from album",
			"album", id, "removed", count, "requested", len(paths))
	})
}

func (s *jsonStore) Delete(id string) (bool, error) {
	if !validID(id) {
		logNotFound("delete", id)
		return false, nil
	}

	var found bool
	err := s.withLock(func() error {
		path := s.path(id)
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return DeleteError(path, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if found {
		slog.Info("Deleted album", "album", id)
	} else {
		logNotFound("delete", id)
	}
	return found, nil
}

func (s *jsonStore) Get(id string) (*album.Album, bool, error) {
	if !validID(id) {
		return nil, false, nil
	}

	var a *album.Album
	var ok bool
	err := s.withLock(func() error {
		var err error
		a, ok, err = s.read(id)
		return err
	})
	return a, ok, err
}

func (s *jsonStore) List() ([]*album.Album, error) {
	var res []*album.Album
	err := s.withLock(func() error {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			return ReadError(s.dir, err)
		}

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || filepath.Ext(name) != ".json" {
				continue
			}
			id := strings.TrimSuffix(name, ".json")
			a, ok, err := s.read(id)
			if err != nil {
				slog.Warn("Skipping unreadable album file",
					"path", s.path(id), "error", err)
				continue
			}
			if ok {
				res = append(res, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	album.SortAlbums(res)
	return res, nil
}

// update runs fn on the stored album and writes the result back.
func (s *jsonStore) update(
	op, id string,
	fn func(*album.Album),
) (bool, error) {
	if !validID(id) {
		logNotFound(op, id)
		return false, nil
	}

	var found bool
	err := s.withLock(func() error {
		a, ok, err := s.read(id)
		if err != nil || !ok {
			return err
		}
		found = true
		fn(a)
		return s.write(a)
	})
	if err == nil && !found {
		logNotFound(op, id)
	}
	return found, err
}

func (s *jsonStore) withLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return LockError(s.dir, err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			slog.Warn("Cannot release album lock", "dir", s.dir, "error", err)
		}
	}()
	return fn()
}

func (s *jsonStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *jsonStore) read(id string) (*album.Album, bool, error) {
	path := s.path(id)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, ReadError(path, err)
	}

	var a album.Album
	if err = s.enc.Decode(data, &a); err != nil {
		return nil, false, ReadError(path, err)
	}
	if a.Images == nil {
		a.Images = []string{}
	}
	if a.Metadata == nil {
		a.Metadata = make(map[string]any)
	}
	return &a, true, nil
}

// write replaces the album file through a temporary file.
func (s *jsonStore) write(a *album.Album) error {
	path := s.path(a.ID)
	data, err := s.enc.Encode(a)
	if err != nil {
		return WriteError(path, err)
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0644); err != nil {
		return WriteError(path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return WriteError(path, err)
	}
	return nil
}

// validID keeps lookups inside the store directory.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
