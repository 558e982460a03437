package ioalbum

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/pkg/errcode"
)

func ReadError(path string, err error) error {
	msg := "Cannot read albums from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlbumReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			fn.Name(), path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot save album to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlbumWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn.Name(), path, err),
	}
}

func DeleteError(path string, err error) error {
	msg := "Cannot delete album from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlbumDeleteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot delete from %s: %w",
			fn.Name(), path, err),
	}
}

func LockError(dir string, err error) error {
	msg := `Cannot lock album directory <em>%s</em>

<em>Possible causes:</em>
  - Directory is not writable
  - Another process holds the lock for too long`
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlbumLockError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot lock %s: %w",
			fn.Name(), dir, err),
	}
}

func DBError(path string, err error) error {
	msg := `Cannot open album database <em>%s</em>

<em>Possible causes:</em>
  - File is not a SQLite database
  - Insufficient permissions

<em>How to fix:</em>
  1. Check permissions of the albums directory
  2. Move the broken file away to start a new database`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlbumDBError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open %s: %w",
			fn.Name(), path, err),
	}
}

func BackendError(backend string) error {
	msg := "Unknown album backend <em>%s</em>, use json or sqlite"
	vars := []any{backend}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlbumBackendError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown backend %q",
			fn.Name(), backend),
	}
}
