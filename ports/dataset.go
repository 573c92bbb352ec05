package ports

import (
	"context"
	"io"

	"gobi/domain/dataset"
)

// DatasetLoader turns a tabular file into a dataset
type DatasetLoader interface {
	// Load reads the file at path; the format follows the extension
	Load(ctx context.Context, path string) (*dataset.Dataset, error)
	// LoadReader reads an uploaded file; name carries the extension
	LoadReader(ctx context.Context, name string, r io.Reader) (*dataset.Dataset, error)
}

// DatasetExporter writes a dataset somewhere the user can download it from
type DatasetExporter interface {
	// Export returns the location written, or "" when there was nothing to write
	Export(ctx context.Context, d *dataset.Dataset) (string, error)
	// Remove discards an earlier export
	Remove(location string) error
}
