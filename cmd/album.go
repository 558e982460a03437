/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/internal/ioalbum"
	"github.com/gnames/gndicom/pkg/album"
	"github.com/gnames/gndicom/pkg/query"
	"github.com/spf13/cobra"
)

// getAlbumCmd returns the album command and its subcommands.
func getAlbumCmd() *cobra.Command {
	albumCmd := &cobra.Command{
		Use:   "album",
		Short: "Manage albums of DICOM images",
		Long: `Albums are named collections of image files that persist between
runs. They keep file paths only and do not depend on the catalog.

The store is located at albums.dir (default
~/.local/share/gndicom/albums) and uses albums.backend format, 'json'
or 'sqlite'.

Examples:
  gndicom album create "Chest CT" -d "Follow-up cases"
  gndicom album add 0b6f... ./DICOM/I0001 ./DICOM/I0002
  gndicom album from-query series "MR series" ./DICOM --modality MR
  gndicom album list`,
	}

	albumCmd.AddCommand(getAlbumCreateCmd())
	albumCmd.AddCommand(getAlbumAddCmd())
	albumCmd.AddCommand(getAlbumRemoveCmd())
	albumCmd.AddCommand(getAlbumDeleteCmd())
	albumCmd.AddCommand(getAlbumListCmd())
	albumCmd.AddCommand(getAlbumShowCmd())
	albumCmd.AddCommand(getAlbumFromQueryCmd())

	return albumCmd
}

// withStore opens the configured album store, runs fn and closes the
// store. Errors are printed for the user.
func withStore(fn func(album.Store) error) error {
	store, err := ioalbum.New(cfg)
	if err == nil {
		if c, ok := store.(io.Closer); ok {
			defer func() {
				if cerr := c.Close(); cerr != nil {
					slog.Warn("Cannot close album store", "error", cerr)
				}
			}()
		}
		err = fn(store)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}

func getAlbumCreateCmd() *cobra.Command {
	var description, creator string

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an empty album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creator == "" {
				creator = cfg.Albums.Creator
			}
			return withStore(func(s album.Store) error {
				a, err := s.Create(args[0], description, creator)
				if err != nil {
					return err
				}
				return newPrinter(cmd.OutOrStdout(), cfg.Output.Format).album(a)
			})
		},
	}

	createCmd.Flags().StringVarP(&description, "description", "d", "",
		"description of the album")
	createCmd.Flags().StringVarP(&creator, "creator", "c", "",
		"creator of the album (default from albums.creator)")

	return createCmd
}

func getAlbumAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add ID PATH...",
		Short: "Add image files to an album",
		Long: `Add image files to an album. Paths are stored as absolute paths.
Files that do not exist or are already in the album are skipped.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s album.Store) error {
				id := args[0]
				ok, err := s.AddImages(id, absPaths(args[1:]))
				if err != nil {
					return err
				}
				if !ok {
					return album.NotFoundError(id)
				}
				return showAlbum(cmd, s, id)
			})
		},
	}
}

func getAlbumRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID PATH...",
		Short:   "Remove image files from an album",
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s album.Store) error {
				id := args[0]
				ok, err := s.RemoveImages(id, absPaths(args[1:]))
				if err != nil {
					return err
				}
				if !ok {
					return album.NotFoundError(id)
				}
				return showAlbum(cmd, s, id)
			})
		},
	}
}

func getAlbumDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s album.Store) error {
				id := args[0]
				ok, err := s.Delete(id)
				if err != nil {
					return err
				}
				if !ok {
					return album.NotFoundError(id)
				}
				gn.Info("Album <em>%s</em> is deleted", id)
				return nil
			})
		},
	}
}

func getAlbumListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all albums",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(s album.Store) error {
				as, err := s.List()
				if err != nil {
					return err
				}
				return newPrinter(cmd.OutOrStdout(), cfg.Output.Format).albums(as)
			})
		},
	}
}

func getAlbumShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an album with its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s album.Store) error {
				return showAlbum(cmd, s, args[0])
			})
		},
	}
}

func getAlbumFromQueryCmd() *cobra.Command {
	var flags queryFlags

	fromQueryCmd := &cobra.Command{
		Use:   "from-query KIND NAME [DIR]",
		Short: "Create an album from query results",
		Long: `Run a query of KIND (patient, study or series) over the catalog of
DIR and create album NAME with every image of the matching entities.

Examples:
  gndicom album from-query patient "John Doe" ./DICOM --patient-id 12345
  gndicom album from-query study "2024 chest" ./DICOM \
    --date-from 2024-01-01 --date-to 2024-12-31 -d chest`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := query.NewKind(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			params, err := flags.params(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), cfg.Output.Format)
			b, err := buildCatalog(scanRoot(args[2:]), p.isTable())
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			return withStore(func(s album.Store) error {
				engine := query.New(b.Catalog())
				id, err := engine.MaterializeToAlbum(
					s, args[1], cfg.Albums.Creator, kind, params)
				if err != nil {
					return err
				}
				return showAlbum(cmd, s, id)
			})
		},
	}
	flags.register(fromQueryCmd, query.UnknownKind)

	return fromQueryCmd
}

func showAlbum(cmd *cobra.Command, s album.Store, id string) error {
	a, ok, err := s.Get(id)
	if err != nil {
		return err
	}
	if !ok {
		return album.NotFoundError(id)
	}
	return newPrinter(cmd.OutOrStdout(), cfg.Output.Format).album(a)
}

func absPaths(paths []string) []string {
	res := make([]string, len(paths))
	for i, v := range paths {
		res[i] = v
		if abs, err := filepath.Abs(v); err == nil {
			res[i] = abs
		}
	}
	return res
}
