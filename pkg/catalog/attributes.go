package catalog

// Optional holds a value that is either present or absent.
// The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// Get returns the value and true if it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Or returns the value if it is present, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool {
	return o.ok
}

// Attributes are the per-file metadata consumed by the Builder.
// Every field is optional: an extractor leaves a field absent when the
// file does not carry the corresponding attribute.
type Attributes struct {
	PatientID   Optional[string]
	PatientName Optional[string]

	StudyInstanceUID Optional[string]
	// StudyDate is expected in YYYYMMDD form.
	StudyDate        Optional[string]
	StudyDescription Optional[string]

	SeriesInstanceUID Optional[string]
	SeriesDescription Optional[string]
	Modality          Optional[string]
	SeriesNumber      Optional[int]
}

// Fallback identifiers used when a file lacks the real one.
const (
	UnknownPatientID  = "unknown"
	FallbackStudyUID  = "study_1"
	FallbackSeriesUID = "series_1"
)

// patientID returns the patient identifier if present (even when
// empty), UnknownPatientID otherwise.
func (a Attributes) patientID() string {
	return a.PatientID.Or(UnknownPatientID)
}

// studyUID returns the study UID if present and non-empty,
// FallbackStudyUID otherwise.
func (a Attributes) studyUID() string {
	return nonEmptyOr(a.StudyInstanceUID, FallbackStudyUID)
}

// seriesUID returns the series UID if present and non-empty,
// FallbackSeriesUID otherwise.
func (a Attributes) seriesUID() string {
	return nonEmptyOr(a.SeriesInstanceUID, FallbackSeriesUID)
}

func nonEmptyOr(o Optional[string], def string) string {
	if v, ok := o.Get(); ok && v != "" {
		return v
	}
	return def
}
