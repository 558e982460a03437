// Package gndicom catalogs DICOM files into a patient, study, series and
// image hierarchy, queries it and keeps curated albums of images.
package gndicom

var (
	// Version of gndicom. Set during build.
	Version = "v0.1.0"

	// Build timestamp. Set during build.
	Build = "n/a"
)
