// Package catalog builds an in-memory patient, study, series and image
// hierarchy out of per-file DICOM attributes.
//
// The catalog is rebuilt from scratch on every run. Nodes are created on
// the first file that references them and are never updated afterwards:
// the name of a patient, the date and description of a study, and the
// description, modality and number of a series come from the first file
// seen for that node.
//
// This package has no I/O dependencies. Reading files and walking
// directories is delegated to Extractor and Discoverer implementations.
package catalog

import (
	"slices"
	"time"
)

// Catalog is the root of the hierarchy. It owns all patients.
// The zero value is not usable, create catalogs with New.
type Catalog struct {
	patients map[string]*Patient
	order    []*Patient

	// paths maps every cataloged image path to its series.
	paths map[string]*Series
}

// Patient is the top level of the hierarchy.
type Patient struct {
	ID string
	// Name is empty when the first file of the patient had no name.
	Name string

	studies map[string]*Study
	order   []*Study
}

// Study groups series of one imaging examination of a patient.
type Study struct {
	UID string
	// Date is nil when the first file of the study had no parsable date.
	Date        *time.Time
	Description string
	// PatientID is the ID of the owning patient.
	PatientID string

	series map[string]*Series
	order  []*Series
}

// Series is the finest grouping of images.
type Series struct {
	UID         string
	Description string
	Modality    string
	// Number is nil when the first file of the series had no series number.
	Number *int

	// PatientID and StudyUID identify the owning patient and study.
	PatientID string
	StudyUID  string

	images   []string
	imageSet map[string]struct{}
}

// Stats contains the size of a catalog at every level.
type Stats struct {
	Patients int `json:"patients" yaml:"patients"`
	Studies  int `json:"studies"  yaml:"studies"`
	Series   int `json:"series"   yaml:"series"`
	Images   int `json:"images"   yaml:"images"`
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		patients: make(map[string]*Patient),
		paths:    make(map[string]*Series),
	}
}

// Patients returns patients in insertion order.
func (c *Catalog) Patients() []*Patient {
	return slices.Clone(c.order)
}

// Patient returns the patient with the given ID.
func (c *Catalog) Patient(id string) (*Patient, bool) {
	p, ok := c.patients[id]
	return p, ok
}

// Contains reports whether the image path is already cataloged.
func (c *Catalog) Contains(path string) bool {
	_, ok := c.paths[path]
	return ok
}

// SeriesOf returns the series that holds the image path.
func (c *Catalog) SeriesOf(path string) (*Series, bool) {
	s, ok := c.paths[path]
	return s, ok
}

// Stats counts nodes at every level of the catalog.
func (c *Catalog) Stats() Stats {
	res := Stats{Patients: len(c.order), Images: len(c.paths)}
	for _, p := range c.order {
		res.Studies += len(p.order)
		for _, st := range p.order {
			res.Series += len(st.order)
		}
	}
	return res
}

// Studies returns studies of the patient in insertion order.
func (p *Patient) Studies() []*Study {
	return slices.Clone(p.order)
}

// Study returns the study with the given UID.
func (p *Patient) Study(uid string) (*Study, bool) {
	st, ok := p.studies[uid]
	return st, ok
}

// Images returns every image of the patient in traversal order.
func (p *Patient) Images() []string {
	var res []string
	for _, st := range p.order {
		res = append(res, st.Images()...)
	}
	return res
}

// Series returns series of the study in insertion order.
func (st *Study) Series() []*Series {
	return slices.Clone(st.order)
}

// SeriesByUID returns the series with the given UID.
func (st *Study) SeriesByUID(uid string) (*Series, bool) {
	s, ok := st.series[uid]
	return s, ok
}

// Images returns every image of the study in traversal order.
func (st *Study) Images() []string {
	var res []string
	for _, s := range st.order {
		res = append(res, s.images...)
	}
	return res
}

// Images returns image paths of the series in first-seen order.
func (s *Series) Images() []string {
	return slices.Clone(s.images)
}

// Len returns the number of images in the series.
func (s *Series) Len() int {
	return len(s.images)
}

// patient returns the patient with the given ID, creating it with the
// given name if it does not exist yet.
func (c *Catalog) patient(id, name string) *Patient {
	if p, ok := c.patients[id]; ok {
		return p
	}
	p := &Patient{
		ID:      id,
		Name:    name,
		studies: make(map[string]*Study),
	}
	c.patients[id] = p
	c.order = append(c.order, p)
	return p
}

// study returns the study with the given UID, creating it with the
// result of mk if it does not exist yet. The second value is true when
// the study was created.
func (p *Patient) study(uid string, mk func() *Study) (*Study, bool) {
	if st, ok := p.studies[uid]; ok {
		return st, false
	}
	st := mk()
	st.UID = uid
	st.PatientID = p.ID
	st.series = make(map[string]*Series)
	p.studies[uid] = st
	p.order = append(p.order, st)
	return st, true
}

// seriesFor returns the series with the given UID, creating it with the
// result of mk if it does not exist yet.
func (st *Study) seriesFor(uid string, mk func() *Series) (*Series, bool) {
	if s, ok := st.series[uid]; ok {
		return s, false
	}
	s := mk()
	s.UID = uid
	s.PatientID = st.PatientID
	s.StudyUID = st.UID
	s.imageSet = make(map[string]struct{})
	st.series[uid] = s
	st.order = append(st.order, s)
	return s, true
}

// addImage appends path to the series unless it is already there.
func (c *Catalog) addImage(s *Series, path string) bool {
	if _, ok := s.imageSet[path]; ok {
		return false
	}
	s.imageSet[path] = struct{}{}
	s.images = append(s.images, path)
	c.paths[path] = s
	return true
}
