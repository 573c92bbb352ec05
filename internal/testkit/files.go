package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteCSV writes records to path
func WriteCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteXLSX writes records to the first sheet of a new workbook at path
func WriteXLSX(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// TempCSV writes records into a file under t.TempDir and returns its path
func TempCSV(t testing.TB, name string, records [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := WriteCSV(path, records); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TempXLSX writes records into a workbook under t.TempDir and returns its path
func TempXLSX(t testing.TB, name string, records [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := WriteXLSX(path, records); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
