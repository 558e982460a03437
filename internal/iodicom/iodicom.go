// Package iodicom reads catalog attributes from DICOM files.
package iodicom

import (
	"strconv"
	"strings"

	"github.com/gnames/gndicom/pkg/catalog"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

type extractor struct{}

// New returns an Extractor that parses DICOM headers with pixel data
// skipped.
func New() catalog.Extractor {
	return extractor{}
}

// Extract parses the file at path and returns its catalog attributes.
// A missing tag leaves the attribute absent.
func (extractor) Extract(path string) (catalog.Attributes, error) {
	var res catalog.Attributes
	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return res, ExtractError(path, err)
	}
	return attributes(ds), nil
}

func attributes(ds dicom.Dataset) catalog.Attributes {
	return catalog.Attributes{
		PatientID:         stringTag(ds, tag.PatientID),
		PatientName:       stringTag(ds, tag.PatientName),
		StudyInstanceUID:  stringTag(ds, tag.StudyInstanceUID),
		StudyDate:         stringTag(ds, tag.StudyDate),
		StudyDescription:  stringTag(ds, tag.StudyDescription),
		SeriesInstanceUID: stringTag(ds, tag.SeriesInstanceUID),
		SeriesDescription: stringTag(ds, tag.SeriesDescription),
		Modality:          stringTag(ds, tag.Modality),
		SeriesNumber:      intTag(ds, tag.SeriesNumber),
	}
}

// stringTag returns the first value of a tag with DICOM padding removed.
func stringTag(ds dicom.Dataset, t tag.Tag) catalog.Optional[string] {
	var res catalog.Optional[string]
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return res
	}

	switch v := elem.Value.GetValue().(type) {
	case []string:
		if len(v) == 0 {
			return res
		}
		return catalog.Some(strings.Trim(v[0], " \x00"))
	case []int:
		if len(v) == 0 {
			return res
		}
		return catalog.Some(strconv.Itoa(v[0]))
	}
	return res
}

// intTag returns the first value of an integer tag. Integer strings (IS)
// are parsed, unparsable values leave the attribute absent.
func intTag(ds dicom.Dataset, t tag.Tag) catalog.Optional[int] {
	var res catalog.Optional[int]
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return res
	}

	switch v := elem.Value.GetValue().(type) {
	case []int:
		if len(v) == 0 {
			return res
		}
		return catalog.Some(v[0])
	case []string:
		if len(v) == 0 {
			return res
		}
		i, err := strconv.Atoi(strings.Trim(v[0], " \x00"))
		if err != nil {
			return res
		}
		return catalog.Some(i)
	}
	return res
}
