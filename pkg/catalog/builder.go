package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// StudyDateLayout is the layout of DICOM dates.
const StudyDateLayout = "20060102"

// Failure describes a file that could not be ingested.
type Failure struct {
	Path string
	Err  error
}

// Builder ingests files into a Catalog.
type Builder struct {
	catalog    *Catalog
	extractor  Extractor
	discoverer Discoverer
	progress   Progress
	failures   []Failure
}

// Option configures a Builder.
type Option func(*Builder)

// OptDiscoverer sets the Discoverer used by IngestBatch.
func OptDiscoverer(d Discoverer) Option {
	return func(b *Builder) {
		b.discoverer = d
	}
}

// OptProgress sets the Progress notified by IngestBatch.
func OptProgress(p Progress) Option {
	return func(b *Builder) {
		b.progress = p
	}
}

// NewBuilder creates a Builder that adds files to cat, reading their
// attributes with ext.
func NewBuilder(cat *Catalog, ext Extractor, opts ...Option) *Builder {
	res := &Builder{catalog: cat, extractor: ext}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Catalog returns the catalog the Builder writes to.
func (b *Builder) Catalog() *Catalog {
	return b.catalog
}

// Failures returns files that could not be ingested, in the order they
// were encountered.
func (b *Builder) Failures() []Failure {
	return slices.Clone(b.failures)
}

// Ingest adds the file at path to the catalog. It returns false if the
// file could not be ingested; the reason is logged and recorded in
// Failures. A path that is already cataloged is a no-op success.
func (b *Builder) Ingest(path string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.fail(path, fmt.Errorf("panic while ingesting: %v", r))
			ok = false
		}
	}()

	if b.catalog.Contains(path) {
		slog.Debug("File is already cataloged", "path", path)
		return true
	}

	attrs, err := b.extractor.Extract(path)
	if err != nil {
		b.fail(path, err)
		return false
	}

	b.add(path, attrs)
	return true
}

// IngestBatch ingests every file the Discoverer finds under root and
// returns the number of successfully ingested files. Failures of
// individual files are logged and do not stop the batch. An error is
// returned only if root cannot be enumerated.
func (b *Builder) IngestBatch(root string) (int, error) {
	if b.discoverer == nil {
		return 0, ScanRootError(root, errors.New("no file discoverer"))
	}

	start := time.Now()
	slog.Info("Starting directory scan", "root", root)

	paths, err := b.discoverer.Discover(root)
	if err != nil {
		return 0, err
	}

	if b.progress != nil {
		b.progress.Start(len(paths))
		defer b.progress.Finish()
	}

	var count int
	for _, path := range paths {
		if b.Ingest(path) {
			count++
		}
		if b.progress != nil {
			b.progress.Increment()
		}
	}

	slog.Info("Directory scan complete",
		"root", root,
		"candidates", len(paths),
		"processed", count,
		"failed", len(paths)-count,
		"duration", time.Since(start).String(),
	)
	return count, nil
}

func (b *Builder) add(path string, attrs Attributes) {
	patientID := attrs.patientID()
	studyUID := attrs.studyUID()
	seriesUID := attrs.seriesUID()

	slog.Debug("Processing file",
		"path", path,
		"patient", patientID,
		"study", studyUID,
		"series", seriesUID,
	)

	if _, ok := b.catalog.Patient(patientID); !ok {
		slog.Info("Creating new patient record", "patient", patientID)
	}
	patient := b.catalog.patient(patientID, attrs.PatientName.Or(""))

	study, created := patient.study(studyUID, func() *Study {
		return &Study{
			Date:        studyDate(path, attrs.StudyDate),
			Description: attrs.StudyDescription.Or(""),
		}
	})
	if created {
		slog.Info("Creating new study record",
			"patient", patientID, "study", studyUID)
	}

	series, created := study.seriesFor(seriesUID, func() *Series {
		res := &Series{
			Description: attrs.SeriesDescription.Or(""),
			Modality:    attrs.Modality.Or(""),
		}
		if n, ok := attrs.SeriesNumber.Get(); ok {
			res.Number = &n
		}
		return res
	})
	if created {
		slog.Debug("Creating new series record",
			"study", studyUID, "series", seriesUID)
	}

	if b.catalog.addImage(series, path) {
		slog.Debug("Added image to series", "path", path, "series", seriesUID)
	}
}

func (b *Builder) fail(path string, err error) {
	slog.Error("Cannot process file", "path", path, "error", err)
	b.failures = append(b.failures, Failure{Path: path, Err: err})
}

// studyDate parses a YYYYMMDD date. Malformed dates are logged and
// result in nil.
func studyDate(path string, o Optional[string]) *time.Time {
	raw, ok := o.Get()
	if !ok || raw == "" {
		return nil
	}
	d, err := time.Parse(StudyDateLayout, raw)
	if err != nil {
		slog.Warn("Invalid study date format",
			"path", path, "date", raw, "error", err)
		return nil
	}
	return &d
}
