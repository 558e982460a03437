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
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gndicom/pkg/album"
	"github.com/gnames/gndicom/pkg/catalog"
	"github.com/gnames/gnfmt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// printer writes command results in one of the output formats.
type printer struct {
	w      io.Writer
	format string
}

// newPrinter resolves the 'auto' format: a table for a terminal,
// JSON for everything else.
func newPrinter(w io.Writer, format string) *printer {
	if format == "" || format == "auto" {
		format = "json"
		if isTerminal(w) {
			format = "table"
		}
	}
	return &printer{w: w, format: format}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *printer) isTable() bool {
	return p.format == "table"
}

// data encodes v as JSON or YAML.
func (p *printer) data(v any) error {
	var out []byte
	var err error
	switch p.format {
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		enc := gnfmt.GNjson{Pretty: true}
		out, err = enc.Encode(v)
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}
	_, err = p.w.Write(out)
	return err
}

// table renders rows with a title line above them.
func (p *printer) table(
	title string,
	headers []string,
	rows [][]string,
	aligns []columnAlignment,
) error {
	if title != "" {
		if _, err := fmt.Fprintln(p.w, title); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w, renderTable(headers, rows, aligns))
	return err
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// Records printed by commands. Field tags define JSON and YAML keys.

type patientRecord struct {
	ID      string `json:"patient_id"   yaml:"patient_id"`
	Name    string `json:"patient_name" yaml:"patient_name"`
	Studies int    `json:"studies"      yaml:"studies"`
	Images  int    `json:"images"       yaml:"images"`
}

type studyRecord struct {
	PatientID   string `json:"patient_id"         yaml:"patient_id"`
	UID         string `json:"study_instance_uid" yaml:"study_instance_uid"`
	Date        string `json:"study_date"         yaml:"study_date"`
	Description string `json:"description"        yaml:"description"`
	Series      int    `json:"series"             yaml:"series"`
	Images      int    `json:"images"             yaml:"images"`
}

type seriesRecord struct {
	PatientID   string `json:"patient_id"          yaml:"patient_id"`
	StudyUID    string `json:"study_instance_uid"  yaml:"study_instance_uid"`
	UID         string `json:"series_instance_uid" yaml:"series_instance_uid"`
	Number      *int   `json:"series_number"       yaml:"series_number"`
	Modality    string `json:"modality"            yaml:"modality"`
	Description string `json:"description"         yaml:"description"`
	Images      int    `json:"images"              yaml:"images"`
}

func patientRecords(ps []*catalog.Patient) []patientRecord {
	res := make([]patientRecord, len(ps))
	for i, p := range ps {
		res[i] = patientRecord{
			ID:      p.ID,
			Name:    p.Name,
			Studies: len(p.Studies()),
			Images:  len(p.Images()),
		}
	}
	return res
}

func studyRecords(sts []*catalog.Study) []studyRecord {
	res := make([]studyRecord, len(sts))
	for i, st := range sts {
		var date string
		if st.Date != nil {
			date = st.Date.Format(time.DateOnly)
		}
		res[i] = studyRecord{
			PatientID:   st.PatientID,
			UID:         st.UID,
			Date:        date,
			Description: st.Description,
			Series:      len(st.Series()),
			Images:      len(st.Images()),
		}
	}
	return res
}

func seriesRecords(ss []*catalog.Series) []seriesRecord {
	res := make([]seriesRecord, len(ss))
	for i, s := range ss {
		res[i] = seriesRecord{
			PatientID:   s.PatientID,
			StudyUID:    s.StudyUID,
			UID:         s.UID,
			Number:      s.Number,
			Modality:    s.Modality,
			Description: s.Description,
			Images:      s.Len(),
		}
	}
	return res
}

func (p *printer) patients(ps []*catalog.Patient) error {
	recs := patientRecords(ps)
	if !p.isTable() {
		return p.data(recs)
	}

	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{r.ID, r.Name, count(r.Studies), count(r.Images)}
	}
	return p.table(
		"",
		[]string{"Patient ID", "Name", "Studies", "Images"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

func (p *printer) studies(sts []*catalog.Study) error {
	recs := studyRecords(sts)
	if !p.isTable() {
		return p.data(recs)
	}

	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.PatientID, r.UID, r.Date, r.Description,
			count(r.Series), count(r.Images),
		}
	}
	return p.table(
		"",
		[]string{"Patient ID", "Study UID", "Date", "Description", "Series", "Images"},
		rows,
		[]columnAlignment{
			alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight,
		},
	)
}

func (p *printer) series(title string, ss []*catalog.Series) error {
	recs := seriesRecords(ss)
	if !p.isTable() {
		return p.data(recs)
	}
	return p.seriesTable(title, recs)
}

func (p *printer) seriesTable(title string, recs []seriesRecord) error {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		var num string
		if r.Number != nil {
			num = strconv.Itoa(*r.Number)
		}
		rows[i] = []string{
			r.PatientID, r.StudyUID, r.UID, num, r.Modality,
			r.Description, count(r.Images),
		}
	}
	return p.table(
		title,
		[]string{
			"Patient ID", "Study UID", "Series UID", "Number", "Modality",
			"Description", "Images",
		},
		rows,
		[]columnAlignment{
			alignLeft, alignLeft, alignLeft, alignRight, alignLeft,
			alignLeft, alignRight,
		},
	)
}

func (p *printer) albums(as []*album.Album) error {
	if !p.isTable() {
		if as == nil {
			as = []*album.Album{}
		}
		return p.data(as)
	}

	rows := make([][]string, len(as))
	for i, a := range as {
		rows[i] = []string{
			a.ID, a.Name, count(len(a.Images)), a.Creator,
			a.CreatedAt.Local().Format(time.DateTime),
		}
	}
	return p.table(
		"",
		[]string{"Album ID", "Name", "Images", "Creator", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	)
}

func (p *printer) album(a *album.Album) error {
	if !p.isTable() {
		return p.data(a)
	}

	rows := [][]string{
		{"ID", a.ID},
		{"Name", a.Name},
		{"Description", a.Description},
		{"Creator", a.Creator},
		{"Created", a.CreatedAt.Local().Format(time.DateTime)},
		{"Modified", a.ModifiedAt.Local().Format(time.DateTime)},
		{"Images", count(len(a.Images))},
	}
	if a.SharingURL != "" {
		rows = append(rows, []string{"Sharing URL", a.SharingURL})
	}
	if err := p.table("", []string{"Field", "Value"}, rows, nil); err != nil {
		return err
	}
	if len(a.Images) == 0 {
		return nil
	}

	images := make([][]string, len(a.Images))
	for i, v := range a.Images {
		images[i] = []string{strconv.Itoa(i + 1), v}
	}
	return p.table(
		"",
		[]string{"#", "Path"},
		images,
		[]columnAlignment{alignRight},
	)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}
