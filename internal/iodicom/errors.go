package iodicom

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/pkg/errcode"
)

// ExtractError is returned when a file cannot be parsed as DICOM.
func ExtractError(path string, err error) error {
	msg := "Cannot read DICOM file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn.Name(), path, err),
	}
}
