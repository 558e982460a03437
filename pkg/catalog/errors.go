package catalog

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/pkg/errcode"
)

// ScanRootError is returned when the root of a batch cannot be
// enumerated.
func ScanRootError(root string, err error) error {
	msg := "Cannot scan directory <em>%s</em>"
	vars := []any{root}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ScanRootError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot scan %s: %w",
			fn.Name(), root, err),
	}
}
