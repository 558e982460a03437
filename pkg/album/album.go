// Package album defines albums, user-curated collections of image paths,
// and the contract of their durable store.
//
// Albums are independent of the catalog: they keep plain file paths and
// survive between runs, while the catalog is rebuilt on every scan.
package album

import (
	"slices"
	"time"
)

// Album is a named, ordered and deduplicated collection of image paths.
type Album struct {
	// ID is a generated UUID, unique across the store.
	ID          string `json:"album_id"    yaml:"album_id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	// Creator defaults to "system".
	Creator    string    `json:"creator"     yaml:"creator"`
	CreatedAt  time.Time `json:"created_at"  yaml:"created_at"`
	ModifiedAt time.Time `json:"modified_at" yaml:"modified_at"`
	// Images are file paths in the order they were added.
	Images []string `json:"images" yaml:"images"`
	// Metadata is free-form data attached to the album.
	Metadata   map[string]any `json:"metadata"    yaml:"metadata"`
	SharingURL string         `json:"sharing_url" yaml:"sharing_url"`
}

// Store keeps albums durably. Every mutation is persisted before the
// method returns.
//
// Methods that address an album by ID return false, without error and
// without any change, when the album does not exist.
type Store interface {
	// Create persists a new empty album and returns it.
	// Empty creator is replaced with the default creator.
	Create(name, description, creator string) (*Album, error)

	// AddImages appends paths that exist on the file system and are not
	// in the album yet.
	AddImages(id string, paths []string) (bool, error)

	// RemoveImages removes paths from the album.
	RemoveImages(id string, paths []string) (bool, error)

	// Delete removes the album from the store.
	Delete(id string) (bool, error)

	// Get returns the album with the given ID.
	Get(id string) (*Album, bool, error)

	// List returns all albums ordered by creation time.
	List() ([]*Album, error)
}

// AddImages appends paths to the album, skipping duplicates and paths
// rejected by exists. It returns the number of added paths and updates
// ModifiedAt to now.
func (a *Album) AddImages(paths []string, exists func(string) bool, now time.Time) int {
	seen := make(map[string]struct{}, len(a.Images))
	for _, v := range a.Images {
		seen[v] = struct{}{}
	}

	var count int
	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}
		if !exists(path) {
			continue
		}
		seen[path] = struct{}{}
		a.Images = append(a.Images, path)
		count++
	}
	a.ModifiedAt = now
	return count
}

// RemoveImages removes paths from the album. It returns the number of
// removed paths and updates ModifiedAt to now.
func (a *Album) RemoveImages(paths []string, now time.Time) int {
	drop := make(map[string]struct{}, len(paths))
	for _, v := range paths {
		drop[v] = struct{}{}
	}

	before := len(a.Images)
	a.Images = slices.DeleteFunc(a.Images, func(s string) bool {
		_, ok := drop[s]
		return ok
	})
	a.ModifiedAt = now
	return before - len(a.Images)
}

// SortAlbums orders albums by creation time, then by ID.
func SortAlbums(albums []*Album) {
	slices.SortFunc(albums, func(a, b *Album) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
