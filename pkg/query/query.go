// Package query filters a catalog by conjunctive predicates at the
// patient, study or series level and turns query results into albums.
//
// Every query is a full scan of the catalog. Results follow catalog
// traversal order: patients, then studies, then series in the order they
// were first seen. Results are not sorted by any field.
package query

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gndicom/pkg/catalog"
)

// Engine runs queries against a catalog.
type Engine struct {
	catalog *catalog.Catalog
}

// PatientQuery selects patients. Empty fields match everything.
//
// A patient whose files carry an empty PatientID is kept under the ID
// "". Such a patient cannot be selected by PatientID, because the empty
// PatientID matches every patient. Select it by PatientName instead.
type PatientQuery struct {
	// PatientID must match exactly.
	PatientID string
	// PatientName must match exactly.
	PatientName string
}

// StudyQuery selects studies. Zero fields match everything.
type StudyQuery struct {
	// DateFrom is the inclusive lower bound of the study date.
	DateFrom *time.Time
	// DateTo is the inclusive upper bound of the study date.
	DateTo *time.Time
	// Description is a case-insensitive substring of the description.
	Description string
}

// SeriesQuery selects series. Zero fields match everything.
type SeriesQuery struct {
	// Modality must match exactly, case included.
	Modality string
	// Number must match exactly. Zero is a valid series number, only nil
	// matches everything.
	Number *int
	// Description is a case-insensitive substring of the description.
	Description string
}

// New creates an Engine over cat.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Patients returns patients matching q.
func (e *Engine) Patients(q PatientQuery) []*catalog.Patient {
	slog.Debug("Querying patients",
		"patient_id", q.PatientID, "patient_name", q.PatientName)

	var res []*catalog.Patient
	for _, p := range e.catalog.Patients() {
		if q.PatientID != "" && p.ID != q.PatientID {
			continue
		}
		if q.PatientName != "" && p.Name != q.PatientName {
			continue
		}
		res = append(res, p)
	}

	slog.Debug("Found matching patients", "count", len(res))
	return res
}

// Studies returns studies matching q across all patients.
// A study without a date never matches a query with a date bound.
func (e *Engine) Studies(q StudyQuery) []*catalog.Study {
	slog.Debug("Querying studies",
		"date_from", q.DateFrom, "date_to", q.DateTo,
		"description", q.Description)

	var res []*catalog.Study
	for _, p := range e.catalog.Patients() {
		for _, st := range p.Studies() {
			if !dateMatches(st.Date, q.DateFrom, q.DateTo) {
				continue
			}
			if !contains(st.Description, q.Description) {
				continue
			}
			res = append(res, st)
		}
	}

	slog.Debug("Found matching studies", "count", len(res))
	return res
}

// Series returns series matching q across all patients and studies.
func (e *Engine) Series(q SeriesQuery) []*catalog.Series {
	slog.Debug("Querying series",
		"modality", q.Modality, "number", q.Number,
		"description", q.Description)

	var res []*catalog.Series
	for _, p := range e.catalog.Patients() {
		for _, st := range p.Studies() {
			for _, s := range st.Series() {
				if q.Modality != "" && s.Modality != q.Modality {
					continue
				}
				if q.Number != nil && (s.Number == nil || *s.Number != *q.Number) {
					continue
				}
				if !contains(s.Description, q.Description) {
					continue
				}
				res = append(res, s)
			}
		}
	}

	slog.Debug("Found matching series", "count", len(res))
	return res
}

func dateMatches(date, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if date == nil {
		return false
	}
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}

func contains(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
