package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"gobi/domain/dataset"
	"gobi/internal"
	"gobi/internal/errors"
)

// TempCSVExporter writes datasets to fresh CSV files for download
type TempCSVExporter struct {
	dir    string
	logger *internal.Logger
}

// NewTempCSVExporter creates an exporter writing into dir; empty dir means the OS temp dir
func NewTempCSVExporter(dir string) *TempCSVExporter {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempCSVExporter{dir: dir, logger: internal.DefaultLogger.WithComponent("Exporter")}
}

// Dir returns the export directory
func (e *TempCSVExporter) Dir() string {
	return e.dir
}

// Export writes d with a header row and no index column. Missing cells are empty fields.
// A nil or row-less dataset writes nothing and returns "".
func (e *TempCSVExporter) Export(ctx context.Context, d *dataset.Dataset) (string, error) {
	if d == nil || d.IsEmpty() {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", errors.ExportError(err)
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", errors.ExportError(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Unique names keep earlier downloads intact
	name := fmt.Sprintf("filtered_%s_%s.csv", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	path := filepath.Join(e.dir, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", errors.ExportError(fmt.Errorf("failed to create export file: %w", err))
	}

	w := csv.NewWriter(file)
	if err := w.WriteAll(d.Records()); err != nil {
		file.Close()
		os.Remove(path)
		return "", errors.ExportError(fmt.Errorf("failed to write export file: %w", err))
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", errors.ExportError(err)
	}

	e.logger.Info("exported %d rows to %s", d.NumRows(), path)
	return path, nil
}

// Remove deletes an earlier export; missing files are ignored
func (e *TempCSVExporter) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete export: %w", err)
	}
	return nil
}
