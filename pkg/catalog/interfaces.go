package catalog

// Extractor reads DICOM attributes of a single file.
type Extractor interface {
	// Extract returns attributes of the file at path, or an error if the
	// file cannot be decoded.
	Extract(path string) (Attributes, error)
}

// Discoverer enumerates candidate files under a directory.
// Which files are candidates is decided by the implementation.
type Discoverer interface {
	// Discover returns paths of candidate files found recursively under
	// root.
	Discover(root string) ([]string, error)
}

// Progress receives updates while a batch of files is ingested.
type Progress interface {
	// Start is called once with the number of files in the batch.
	Start(total int)
	// Increment is called after every file, successful or not.
	Increment()
	// Finish is called once when the batch is done.
	Finish()
}
