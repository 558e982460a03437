package query

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/pkg/errcode"
)

// KindError is returned for a query kind other than patient, study or
// series.
func KindError(kind string) error {
	msg := "Unknown query kind <em>%s</em>, use patient, study or series"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.QueryKindError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown query kind %q",
			fn.Name(), kind),
	}
}

// DateError is returned for a date that is not in YYYY-MM-DD format.
func DateError(date string, err error) error {
	msg := "Cannot parse date <em>%s</em>, use YYYY-MM-DD format"
	vars := []any{date}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DateParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot parse date %q: %w",
			fn.Name(), date, err),
	}
}
