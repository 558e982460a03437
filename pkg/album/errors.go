package album

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/pkg/errcode"
)

// NotFoundError is returned by callers that need an album to exist.
func NotFoundError(id string) error {
	msg := "Album <em>%s</em> does not exist"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AlbumNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: album %s not found", fn.Name(), id),
	}
}
