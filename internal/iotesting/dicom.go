// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	// CTImageStorage is the SOP class UID of CT images.
	CTImageStorage = "1.2.840.10008.5.1.4.1.1.2"

	// ExplicitVRLittleEndian is the transfer syntax of written files.
	ExplicitVRLittleEndian = "1.2.840.10008.1.2.1"

	uidRoot = "1.2.826.0.1.3680043.10.543."
)

var instance atomic.Int64

// Image holds DICOM attributes of a test file. Empty fields are not
// written.
type Image struct {
	PatientID         string
	PatientName       string
	StudyInstanceUID  string
	StudyDate         string
	StudyDescription  string
	SeriesInstanceUID string
	SeriesDescription string
	Modality          string
	SeriesNumber      string
}

// WriteDICOM writes a DICOM Part 10 file with attributes of img to path.
// Pixel data is not written.
func WriteDICOM(t *testing.T, path string, img Image) {
	t.Helper()
	sopUID := fmt.Sprintf("%s%d", uidRoot, instance.Add(1))

	elems := []*dicom.Element{
		element(t, tag.FileMetaInformationVersion, []byte{0x00, 0x01}),
		element(t, tag.MediaStorageSOPClassUID, []string{CTImageStorage}),
		element(t, tag.MediaStorageSOPInstanceUID, []string{sopUID}),
		element(t, tag.TransferSyntaxUID, []string{ExplicitVRLittleEndian}),
		element(t, tag.SOPClassUID, []string{CTImageStorage}),
		element(t, tag.SOPInstanceUID, []string{sopUID}),
	}

	// tags in ascending order
	attrs := []struct {
		tag   tag.Tag
		value string
	}{
		{tag.StudyDate, img.StudyDate},
		{tag.Modality, img.Modality},
		{tag.StudyDescription, img.StudyDescription},
		{tag.SeriesDescription, img.SeriesDescription},
		{tag.PatientName, img.PatientName},
		{tag.PatientID, img.PatientID},
		{tag.StudyInstanceUID, img.StudyInstanceUID},
		{tag.SeriesInstanceUID, img.SeriesInstanceUID},
		{tag.SeriesNumber, img.SeriesNumber},
	}
	for _, v := range attrs {
		if v.value == "" {
			continue
		}
		elems = append(elems, element(t, v.tag, []string{v.value}))
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	ds := dicom.Dataset{Elements: elems}
	err = dicom.Write(f, ds, dicom.SkipVRVerification())
	require.NoError(t, err, path)
}

func element(t *testing.T, tg tag.Tag, data any) *dicom.Element {
	t.Helper()
	elem, err := dicom.NewElement(tg, data)
	require.NoError(t, err)
	return elem
}
