package query

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gndicom/pkg/album"
)

// Kind is the catalog level a query selects.
type Kind int

const (
	UnknownKind Kind = iota
	PatientKind
	StudyKind
	SeriesKind
)

var kindNames = map[Kind]string{
	PatientKind: "patient",
	StudyKind:   "study",
	SeriesKind:  "series",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// NewKind parses "patient", "study" or "series" (case-insensitive).
func NewKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range kindNames {
		if v == s {
			return k, nil
		}
	}
	return UnknownKind, KindError(s)
}

// ParseDate parses a YYYY-MM-DD date. Empty input returns nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, DateError(s, err)
	}
	return &d, nil
}

// Params holds criteria for any kind of query. Only the fields relevant
// to the chosen Kind are used.
type Params struct {
	PatientID   string
	PatientName string

	DateFrom *time.Time
	DateTo   *time.Time

	Modality     string
	SeriesNumber *int

	// Description filters studies or series, depending on Kind.
	Description string
}

// PatientQuery returns patient criteria of the params.
func (p Params) PatientQuery() PatientQuery {
	return PatientQuery{PatientID: p.PatientID, PatientName: p.PatientName}
}

// StudyQuery returns study criteria of the params.
func (p Params) StudyQuery() StudyQuery {
	return StudyQuery{
		DateFrom:    p.DateFrom,
		DateTo:      p.DateTo,
		Description: p.Description,
	}
}

// SeriesQuery returns series criteria of the params.
func (p Params) SeriesQuery() SeriesQuery {
	return SeriesQuery{
		Modality:    p.Modality,
		Number:      p.SeriesNumber,
		Description: p.Description,
	}
}

// Images runs the query of the given kind and returns every image path
// reachable from the matches, without duplicates, in traversal order.
func (e *Engine) Images(kind Kind, params Params) ([]string, error) {
	var groups [][]string
	switch kind {
	case PatientKind:
		for _, p := range e.Patients(params.PatientQuery()) {
			groups = append(groups, p.Images())
		}
	case StudyKind:
		for _, st := range e.Studies(params.StudyQuery()) {
			groups = append(groups, st.Images())
		}
	case SeriesKind:
		for _, s := range e.Series(params.SeriesQuery()) {
			groups = append(groups, s.Images())
		}
	default:
		return nil, KindError(kind.String())
	}

	seen := make(map[string]struct{})
	var res []string
	for _, images := range groups {
		for _, path := range images {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			res = append(res, path)
		}
	}
	return res, nil
}

// MaterializeToAlbum runs the query of the given kind, creates a new
// album called name by creator in store and adds every image reachable
// from the matches to it. Empty creator is replaced by the store default.
// It returns the ID of the new album.
func (e *Engine) MaterializeToAlbum(
	store album.Store,
	name, creator string,
	kind Kind,
	params Params,
) (string, error) {
	images, err := e.Images(kind, params)
	if err != nil {
		return "", err
	}

	a, err := store.Create(name, "", creator)
	if err != nil {
		return "", err
	}

	ok, err := store.AddImages(a.ID, images)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", album.NotFoundError(a.ID)
	}

	slog.Info("Created album from query",
		"album", a.ID, "name", name, "kind", kind.String(),
		"images", len(images))
	return a.ID, nil
}
