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
	"github.com/gnames/gndicom/pkg/config"
	"github.com/gnames/gndicom/pkg/query"
	"github.com/spf13/cobra"
)

type flagFunc func(cmd *cobra.Command) []config.Option

// flagOptions converts persistent flags that were set on the command
// line into config options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	for _, f := range []flagFunc{formatFlag} {
		res = append(res, f(cmd)...)
	}
	return res
}

func formatFlag(cmd *cobra.Command) []config.Option {
	if !cmd.Flags().Changed("format") {
		return nil
	}
	s, _ := cmd.Flags().GetString("format")
	return []config.Option{config.OptOutputFormat(s)}
}

// queryFlags keeps query criteria given on the command line.
type queryFlags struct {
	patientID    string
	patientName  string
	dateFrom     string
	dateTo       string
	description  string
	modality     string
	seriesNumber int
}

// register adds flags relevant to kind. UnknownKind adds all of them.
func (f *queryFlags) register(cmd *cobra.Command, kind query.Kind) {
	fs := cmd.Flags()
	all := kind == query.UnknownKind
	if all || kind == query.PatientKind {
		fs.StringVar(&f.patientID, "patient-id", "",
			"exact patient ID")
		fs.StringVar(&f.patientName, "patient-name", "",
			"exact patient name")
	}
	if all || kind == query.StudyKind {
		fs.StringVar(&f.dateFrom, "date-from", "",
			"earliest study date YYYY-MM-DD (inclusive)")
		fs.StringVar(&f.dateTo, "date-to", "",
			"latest study date YYYY-MM-DD (inclusive)")
	}
	if all || kind == query.SeriesKind {
		fs.StringVar(&f.modality, "modality", "",
			"exact modality, for example CT or MR")
		fs.IntVar(&f.seriesNumber, "series-number", 0,
			"exact series number")
	}
	if kind != query.PatientKind {
		fs.StringVarP(&f.description, "description", "d", "",
			"case-insensitive part of study or series description")
	}
}

// params converts flags to query parameters. Series number is used only
// when it was given explicitly, so 0 is a valid number.
func (f *queryFlags) params(cmd *cobra.Command) (query.Params, error) {
	res := query.Params{
		PatientID:   f.patientID,
		PatientName: f.patientName,
		Modality:    f.modality,
		Description: f.description,
	}

	var err error
	if res.DateFrom, err = query.ParseDate(f.dateFrom); err != nil {
		return res, err
	}
	if res.DateTo, err = query.ParseDate(f.dateTo); err != nil {
		return res, err
	}

	if cmd.Flags().Changed("series-number") {
		num := f.seriesNumber
		res.SeriesNumber = &num
	}
	return res, nil
}
