package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Scan errors
	ScanRootError
	ExtractFileError

	// Query errors
	QueryKindError
	DateParseError

	// Album errors
	AlbumNotFoundError
	AlbumReadError
	AlbumWriteError
	AlbumDeleteError
	AlbumLockError
	AlbumDBError
	AlbumBackendError
)
