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
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/internal/iodicom"
	"github.com/gnames/gndicom/internal/ioscan"
	"github.com/gnames/gndicom/pkg/catalog"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getScanCmd returns the scan command.
func getScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [DIR]",
		Short: "Build the catalog of a directory and report what was found",
		Long: `Walk DIR recursively, read DICOM headers of candidate files and
group images by patient, study and series.

If DIR is not given, scan.root from the configuration is used.
Candidate files are selected by scan.prefix, scan.extensions and
scan.skip_hidden settings. Files that cannot be read as DICOM are
reported and skipped.

Examples:
  gndicom scan ./DICOM
  gndicom scan /data/mri --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runScan(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return scanCmd
}

type failureRecord struct {
	Path  string `json:"path"  yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

type scanRecord struct {
	Root     string          `json:"root"     yaml:"root"`
	Stats    catalog.Stats   `json:"stats"    yaml:"stats"`
	Failed   int             `json:"failed"   yaml:"failed"`
	Duration string          `json:"duration" yaml:"duration"`
	Failures []failureRecord `json:"failures" yaml:"failures"`
	Series   []seriesRecord  `json:"series"   yaml:"series"`
}

func runScan(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd.OutOrStdout(), cfg.Output.Format)

	start := time.Now()
	b, err := buildCatalog(scanRoot(args), p.isTable())
	if err != nil {
		return err
	}

	cat := b.Catalog()
	var series []*catalog.Series
	for _, pt := range cat.Patients() {
		for _, st := range pt.Studies() {
			series = append(series, st.Series()...)
		}
	}

	res := scanRecord{
		Root:     scanRoot(args),
		Stats:    cat.Stats(),
		Failed:   len(b.Failures()),
		Duration: gnfmt.TimeString(time.Since(start).Seconds()),
		Failures: []failureRecord{},
		Series:   seriesRecords(series),
	}
	for _, f := range b.Failures() {
		res.Failures = append(res.Failures,
			failureRecord{Path: f.Path, Error: f.Err.Error()})
	}

	if !p.isTable() {
		return p.data(res)
	}
	return printScan(p, res)
}

func printScan(p *printer, res scanRecord) error {
	summary := [][]string{
		{"Root", res.Root},
		{"Patients", count(res.Stats.Patients)},
		{"Studies", count(res.Stats.Studies)},
		{"Series", count(res.Stats.Series)},
		{"Images", count(res.Stats.Images)},
		{"Failed files", count(res.Failed)},
		{"Duration", res.Duration},
	}
	err := p.table("Catalog", []string{"Field", "Value"}, summary, nil)
	if err != nil {
		return err
	}

	if len(res.Failures) > 0 {
		gn.Warn("<em>%d</em> files could not be read as DICOM",
			len(res.Failures))
		rows := make([][]string, len(res.Failures))
		for i, f := range res.Failures {
			rows[i] = []string{f.Path, f.Error}
		}
		err = p.table("Failures", []string{"Path", "Error"}, rows, nil)
		if err != nil {
			return err
		}
	}

	return p.seriesTable("Series", res.Series)
}

// scanRoot returns the directory given on the command line or the
// configured default.
func scanRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Scan.Root
}

// buildCatalog ingests all candidate files under root. Image paths in
// the catalog are absolute.
func buildCatalog(root string, progress bool) (*catalog.Builder, error) {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	opts := []catalog.Option{
		catalog.OptDiscoverer(ioscan.New(ioscan.FromConfig(cfg.Scan))),
	}
	if progress && isTerminal(os.Stderr) {
		opts = append(opts, catalog.OptProgress(ioscan.NewProgress("Scanning: ")))
	}

	b := catalog.NewBuilder(catalog.New(), iodicom.New(), opts...)
	if _, err := b.IngestBatch(root); err != nil {
		return nil, err
	}
	return b, nil
}
