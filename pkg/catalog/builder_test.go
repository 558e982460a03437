package catalog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gndicom/pkg/catalog"
	"github.com/gnames/gndicom/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned attributes, or an error for unknown paths.
type fakeExtractor struct {
	attrs map[string]catalog.Attributes
	calls map[string]int
}

func newFakeExtractor(attrs map[string]catalog.Attributes) *fakeExtractor {
	return &fakeExtractor{attrs: attrs, calls: make(map[string]int)}
}

func (f *fakeExtractor) Extract(path string) (catalog.Attributes, error) {
	f.calls[path]++
	if path == "panic.img" {
		panic("decoder exploded")
	}
	a, ok := f.attrs[path]
	if !ok {
		return catalog.Attributes{}, errors.New("not a DICOM file")
	}
	return a, nil
}

type fakeDiscoverer struct {
	paths []string
	err   error
}

func (f fakeDiscoverer) Discover(string) ([]string, error) {
	return f.paths, f.err
}

type fakeProgress struct {
	total, done, finished int
}

func (p *fakeProgress) Start(total int) { p.total = total }
func (p *fakeProgress) Increment() { p.done++ }
func (p *fakeProgress) Finish() { p.finished++ }

func attrs(patient, study, series string, number int) catalog.Attributes {
	return catalog.Attributes{
		PatientID:         catalog.Some(patient),
		PatientName:       catalog.Some("Name of " + patient),
		StudyInstanceUID:  catalog.Some(study),
		StudyDate:         catalog.Some("20240115"),
		StudyDescription:  catalog.Some("Chest study"),
		SeriesInstanceUID: catalog.Some(series),
		SeriesDescription: catalog.Some("Chest CT"),
		Modality:          catalog.Some("CT"),
		SeriesNumber:      catalog.Some(number),
	}
}

func TestIngest_Scenario(t *testing.T) {
	ext := newFakeExtractor(map[string]catalog.Attributes{
		"a.img": attrs("patientA", "S1", "X", 1),
		"b.img": attrs("patientA", "S1", "X", 1),
		"c.img": attrs("patientA", "S1", "Y", 2),
	})
	cat := catalog.New()
	b := catalog.NewBuilder(cat, ext)

	for _, p := range []string{"a.img", "b.img", "c.img"} {
		assert.True(t, b.Ingest(p), p)
	}

	stats := cat.Stats()
	assert.Equal(t, catalog.Stats{Patients: 1, Studies: 1, Series: 2, Images: 3}, stats)

	patient, ok := cat.Patient("patientA")
	require.True(t, ok)
	assert.Equal(t, "Name of patientA", patient.Name)

	study, ok := patient.Study("S1")
	require.True(t, ok)
	assert.Equal(t, "patientA", study.PatientID)
	require.NotNil(t, study.Date)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *study.Date)

	series := study.Series()
	require.Len(t, series, 2)
	assert.Equal(t, "X", series[0].UID)
	assert.Equal(t, []string{"a.img", "b.img"}, series[0].Images())
	assert.Equal(t, "Y", series[1].UID)
	assert.Equal(t, []string{"c.img"}, series[1].Images())
	assert.Equal(t, "S1", series[1].StudyUID)
	assert.Equal(t, "patientA", series[1].PatientID)

	assert.Equal(t, []string{"a.img", "b.img", "c.img"}, patient.Images())
	assert.Empty(t, b.Failures())
}

func TestIngest_Idempotent(t *testing.T) {
	ext := newFakeExtractor(map[string]catalog.Attributes{
		"a.img": attrs("p", "s", "x", 1),
	})
	cat := catalog.New()
	b := catalog.NewBuilder(cat, ext)

	assert.True(t, b.Ingest("a.img"))
	assert.True(t, b.Ingest("a.img"))

	s, ok := cat.SeriesOf("a.img")
	require.True(t, ok)
	assert.Equal(t, []string{"a.img"}, s.Images())
	assert.Equal(t, 1, cat.Stats().Images)
	assert.Equal(t, 1, ext.calls["a.img"],
		"known path should not be extracted again")
}

func TestIngest_Fallbacks(t *testing.T) {
	ext := newFakeExtractor(map[string]catalog.Attributes{
		"empty.img": {},
		"p1.img": {
			PatientID:         catalog.Some("P"),
			StudyInstanceUID:  catalog.Some(""),
			SeriesInstanceUID: catalog.Some(""),
		},
		"p2.img": {PatientID: catalog.Some("P")},
		"blank-patient.img": {
			PatientID: catalog.Some(""),
		},
	})
	cat := catalog.New()
	b := catalog.NewBuilder(cat, ext)

	for _, p := range []string{"empty.img", "p1.img", "p2.img", "blank-patient.img"} {
		require.True(t, b.Ingest(p), p)
	}

	t.Run("missing patient id is unknown", func(t *testing.T) {
		p, ok := cat.Patient(catalog.UnknownPatientID)
		require.True(t, ok)
		st, ok := p.Study(catalog.FallbackStudyUID)
		require.True(t, ok)
		s, ok := st.SeriesByUID(catalog.FallbackSeriesUID)
		require.True(t, ok)
		assert.Equal(t, []string{"empty.img"}, s.Images())
		assert.Equal(t, "", p.Name)
		assert.Nil(t, st.Date)
		assert.Nil(t, s.Number)
	})

	t.Run("studies without UID collapse", func(t *testing.T) {
		p, ok := cat.Patient("P")
		require.True(t, ok)
		studies := p.Studies()
		require.Len(t, studies, 1)
		assert.Equal(t, "study_1", studies[0].UID)
		series := studies[0].Series()
		require.Len(t, series, 1)
		assert.Equal(t, "series_1", series[0].UID)
		assert.Equal(t, []string{"p1.img", "p2.img"}, series[0].Images())
	})

	t.Run("present but empty patient id is kept", func(t *testing.T) {
		_, ok := cat.Patient("")
		assert.True(t, ok)
	})
}

func TestIngest_FirstFileWins(t *testing.T) {
	first := attrs("p", "s", "x", 1)
	second := attrs("p", "s", "x", 7)
	second.PatientName = catalog.Some("Other Name")
	second.StudyDescription = catalog.Some("Other study")
	second.StudyDate = catalog.Some("19991231")
	second.SeriesDescription = catalog.Some("Other series")
	second.Modality = catalog.Some("MR")

	ext := newFakeExtractor(map[string]catalog.Attributes{
		"1.img": first,
		"2.img": second,
	})
	cat := catalog.New()
	b := catalog.NewBuilder(cat, ext)
	require.True(t, b.Ingest("1.img"))
	require.True(t, b.Ingest("2.img"))

	p, _ := cat.Patient("p")
	st, _ := p.Study("s")
	s, _ := st.SeriesByUID("x")

	assert.Equal(t, "Name of p", p.Name)
	assert.Equal(t, "Chest study", st.Description)
	assert.Equal(t, 2024, st.Date.Year())
	assert.Equal(t, "Chest CT", s.Description)
	assert.Equal(t, "CT", s.Modality)
	require.NotNil(t, s.Number)
	assert.Equal(t, 1, *s.Number)
	assert.Equal(t, []string{"1.img", "2.img"}, s.Images())
}

func TestIngest_MalformedDate(t *testing.T) {
	a := attrs("p", "s", "x", 1)
	a.StudyDate = catalog.Some("2024-01-15")
	ext := newFakeExtractor(map[string]catalog.Attributes{"a.img": a})

	cat := catalog.New()
	b := catalog.NewBuilder(cat, ext)

	assert.True(t, b.Ingest("a.img"),
		"malformed date does not fail ingestion")
	p, _ := cat.Patient("p")
	st, _ := p.Study("s")
	assert.Nil(t, st.Date)
	assert.Empty(t, b.Failures())
}

func TestIngest_Failures(t *testing.T) {
	ext := newFakeExtractor(map[string]catalog.Attributes{
		"good.img": attrs("p", "s", "x", 1),
	})
	cat := catalog.New()
	b := catalog.NewBuilder(cat, ext)

	assert.False(t, b.Ingest("bad.img"))
	assert.False(t, b.Ingest("panic.img"))
	assert.True(t, b.Ingest("good.img"))

	failures := b.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "bad.img", failures[0].Path)
	assert.EqualError(t, failures[0].Err, "not a DICOM file")
	assert.Equal(t, "panic.img", failures[1].Path)
	assert.Contains(t, failures[1].Err.Error(), "decoder exploded")
	assert.False(t, cat.Contains("bad.img"))
	assert.Equal(t, 1, cat.Stats().Images)
}

func TestIngestBatch(t *testing.T) {
	ext := newFakeExtractor(map[string]catalog.Attributes{
		"a.img": attrs("p1", "s", "x", 1),
		"b.img": attrs("p2", "s", "x", 1),
		"c.img": attrs("p1", "s", "y", 2),
	})

	t.Run("counts successes only", func(t *testing.T) {
		progress := &fakeProgress{}
		cat := catalog.New()
		b := catalog.NewBuilder(cat, ext,
			catalog.OptDiscoverer(fakeDiscoverer{
				paths: []string{"a.img", "junk.txt", "b.img", "c.img", "panic.img"},
			}),
			catalog.OptProgress(progress),
		)

		count, err := b.IngestBatch("/data")
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Len(t, b.Failures(), 2)

		assert.Equal(t, 5, progress.total)
		assert.Equal(t, 5, progress.done)
		assert.Equal(t, 1, progress.finished)

		var ids []string
		for _, p := range cat.Patients() {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{"p1", "p2"}, ids)
	})

	t.Run("root error is returned", func(t *testing.T) {
		rootErr := errors.New("no such directory")
		b := catalog.NewBuilder(catalog.New(), ext,
			catalog.OptDiscoverer(fakeDiscoverer{err: rootErr}))

		count, err := b.IngestBatch("/missing")
		assert.Equal(t, 0, count)
		assert.ErrorIs(t, err, rootErr)
	})

	t.Run("missing discoverer", func(t *testing.T) {
		b := catalog.NewBuilder(catalog.New(), ext)
		count, err := b.IngestBatch("/data")
		assert.Equal(t, 0, count)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.ScanRootError, gnErr.Code)
	})
}

func TestOptional(t *testing.T) {
	var absent catalog.Optional[int]
	v, ok := absent.Get()
	assert.False(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 5, absent.Or(5))
	assert.False(t, absent.IsSet())

	zero := catalog.Some(0)
	v, ok = zero.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, zero.Or(5))
	assert.True(t, zero.IsSet())
}
