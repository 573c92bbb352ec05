package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"gobi/domain/dataset"
	"gobi/internal"
	"gobi/internal/errors"
)

// MsgNoFile is returned when no upload was provided
const MsgNoFile = "No file uploaded."

// Loader reads CSV, XLSX and XLS files into datasets
type Loader struct {
	logger *internal.Logger
}

// NewLoader creates a loader logging through the default logger
func NewLoader() *Loader {
	return &Loader{logger: internal.DefaultLogger.WithComponent("Loader")}
}

// Load reads the file at path
func (l *Loader) Load(ctx context.Context, path string) (*dataset.Dataset, error) {
	if path == "" {
		return nil, errors.New(errors.CodeLoadError, MsgNoFile)
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadError(err)
	}
	defer file.Close()

	return l.read(ctx, filepath.Base(path), format, file)
}

// LoadReader reads an uploaded file; name only supplies the extension and the dataset name
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader) (*dataset.Dataset, error) {
	if r == nil {
		return nil, errors.New(errors.CodeLoadError, MsgNoFile)
	}
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	return l.read(ctx, filepath.Base(name), format, r)
}

func (l *Loader) read(ctx context.Context, name string, format Format, r io.Reader) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.LoadError(err)
	}

	start := time.Now()
	var (
		records [][]string
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatXLSX:
		records, err = readXLSX(r)
	case FormatXLS:
		records, err = readXLS(r)
	}
	if err != nil {
		l.logger.Warn("failed to read %s: %v", name, err)
		return nil, errors.LoadError(err)
	}

	d, err := dataset.FromRecords(name, records)
	if err != nil {
		l.logger.Warn("failed to build dataset from %s: %v", name, err)
		return nil, errors.LoadError(err)
	}

	l.logger.Info("%s file %s loaded in %.2fms (%d rows, %d columns)",
		format, name, float64(time.Since(start).Nanoseconds())/1e6, d.NumRows(), d.NumCols())
	return d, nil
}

// readCSV accepts rows shorter than the header; they are padded as missing later.
// Rows longer than the header fail the load.
func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	width := len(records[0])
	for i, rec := range records[1:] {
		if len(rec) > width {
			return nil, fmt.Errorf("expected %d fields in row %d, saw %d", width, i+1, len(rec))
		}
	}
	return records, nil
}

// readXLSX returns the formatted cell values of the first sheet
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	return rows, nil
}

// readXLS reads the first sheet of a legacy BIFF workbook
func readXLS(r io.Reader) ([][]string, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		rs = bytes.NewReader(data)
	}

	wb, err := xls.OpenReader(rs, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("failed to read first sheet")
	}

	var records [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		rec := make([]string, row.LastCol())
		for j := range rec {
			rec[j] = row.Col(j)
		}
		records = append(records, rec)
	}
	return records, nil
}
