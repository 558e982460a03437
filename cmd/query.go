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
	"github.com/gnames/gn"
	"github.com/gnames/gndicom/pkg/query"
	"github.com/spf13/cobra"
)

// getQueryCmd returns the query command with patients, studies and
// series subcommands.
func getQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Find patients, studies or series in a directory of DICOM files",
		Long: `Build the catalog of a directory and print entities matching
all given criteria. Criteria that are not given match everything.

Text criteria for IDs, names and modality match exactly. Descriptions
match case-insensitive substrings. Study dates are inclusive; studies
without a date never match a query with a date.

Examples:
  gndicom query patients ./DICOM --patient-id 12345
  gndicom query studies ./DICOM --date-from 2024-01-01 -d chest
  gndicom query series ./DICOM --modality MR --series-number 0`,
		Aliases: []string{"q"},
	}

	queryCmd.AddCommand(getQueryKindCmd(
		query.PatientKind, "patients", "Find patients by ID or name"))
	queryCmd.AddCommand(getQueryKindCmd(
		query.StudyKind, "studies", "Find studies by date range or description"))
	queryCmd.AddCommand(getQueryKindCmd(
		query.SeriesKind, "series",
		"Find series by modality, number or description"))

	return queryCmd
}

func getQueryKindCmd(kind query.Kind, use, short string) *cobra.Command {
	var flags queryFlags

	kindCmd := &cobra.Command{
		Use:   use + " [DIR]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuery(cmd, args, kind, &flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	flags.register(kindCmd, kind)

	return kindCmd
}

func runQuery(
	cmd *cobra.Command,
	args []string,
	kind query.Kind,
	flags *queryFlags,
) error {
	params, err := flags.params(cmd)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), cfg.Output.Format)
	b, err := buildCatalog(scanRoot(args), p.isTable())
	if err != nil {
		return err
	}
	engine := query.New(b.Catalog())

	switch kind {
	case query.PatientKind:
		return p.patients(engine.Patients(params.PatientQuery()))
	case query.StudyKind:
		return p.studies(engine.Studies(params.StudyQuery()))
	case query.SeriesKind:
		return p.series("", engine.Series(params.SeriesQuery()))
	default:
		return query.KindError(kind.String())
	}
}
