// Package schema provides database models for the SQLite album store.
package schema

import (
	"time"

	"github.com/gnames/gndicom/pkg/album"
	"gorm.io/datatypes"
)

// Album is a row of the albums table.
type Album struct {
	// ID is the UUID of the album.
	ID string `gorm:"primaryKey;type:varchar(36)"`

	// Name is a human-readable name, not necessarily unique.
	Name string `gorm:"not null"`

	Description string

	// Creator is the user or process that created the album.
	Creator string

	// CreatedAt orders albums in listings.
	CreatedAt time.Time `gorm:"index"`

	ModifiedAt time.Time

	// Metadata keeps free-form data as a JSON document.
	Metadata datatypes.JSONMap

	SharingURL string
}

// TableName returns the table name of Album.
func (Album) TableName() string {
	return "albums"
}

// AlbumImage is an image path of an album at a given position.
type AlbumImage struct {
	AlbumID  string `gorm:"primaryKey;type:varchar(36)"`
	Position int    `gorm:"primaryKey"`
	Path     string `gorm:"not null"`
}

// TableName returns the table name of AlbumImage.
func (AlbumImage) TableName() string {
	return "album_images"
}

// FromAlbum converts an album to its row and image rows.
func FromAlbum(a *album.Album) (Album, []AlbumImage) {
	row := Album{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Creator:     a.Creator,
		CreatedAt:   a.CreatedAt,
		ModifiedAt:  a.ModifiedAt,
		Metadata:    datatypes.JSONMap(a.Metadata),
		SharingURL:  a.SharingURL,
	}

	images := make([]AlbumImage, len(a.Images))
	for i, path := range a.Images {
		images[i] = AlbumImage{AlbumID: a.ID, Position: i, Path: path}
	}
	return row, images
}

// ToAlbum builds an album from its row and image rows sorted by
// position.
func ToAlbum(row Album, images []AlbumImage) *album.Album {
	res := &album.Album{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Creator:     row.Creator,
		CreatedAt:   row.CreatedAt,
		ModifiedAt:  row.ModifiedAt,
		Metadata:    map[string]any(row.Metadata),
		SharingURL:  row.SharingURL,
		Images:      make([]string, 0, len(images)),
	}
	if res.Metadata == nil {
		res.Metadata = make(map[string]any)
	}
	for _, v := range images {
		res.Images = append(res.Images, v.Path)
	}
	return res
}
