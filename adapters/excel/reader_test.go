package excel

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gobi/domain/dataset"
	"gobi/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "sales.csv", "\ufeffregion, units ,price\neast,3,9.5\nwest,,12\n")

	d, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "sales.csv", d.Name())
	assert.Equal(t, []string{"region", "units", "price"}, d.ColumnNames())
	assert.Equal(t, 2, d.NumRows())
	assert.Equal(t, []string{"units", "price"}, d.NumericColumns())
	assert.Equal(t, 1, d.MissingCount("units"))
}

func TestLoad_UppercaseExtension(t *testing.T) {
	path := writeFile(t, "SALES.CSV", "a\n1\n")
	d, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumRows())
}

func TestLoad_HeaderOnlyCSV(t *testing.T) {
	path := writeFile(t, "empty.csv", "a,b\n")
	d, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, d.NumRows())
	assert.Equal(t, 2, d.NumCols())
}

func TestLoadReader_ShortCSVRowIsPadded(t *testing.T) {
	d, err := NewLoader().LoadReader(context.Background(), "x.csv", strings.NewReader("a,b,c\n1,2,3\n4,5\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, d.NumRows())
	assert.Equal(t, []string{"a", "b", "c"}, d.NumericColumns())
	assert.Equal(t, 1, d.MissingCount("c"))
	assert.Equal(t, 0, d.MissingCount("b"))
}

func TestLoad_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"region", "units", "order_date"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"east", 3, "2024-01-05"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"west", 4.5}))
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	d, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "units", "order_date"}, d.ColumnNames())
	assert.Equal(t, 2, d.NumRows())
	units, ok := d.Floats("units")
	require.True(t, ok)
	assert.Equal(t, []float64{3, 4.5}, units)
	col, _ := d.Column("order_date")
	assert.Equal(t, dataset.KindDatetime, col.Kind)
	assert.Nil(t, d.Value(1, "order_date"))
}

func TestLoadReader_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"k", "v"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"a", 1}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	d, err := NewLoader().LoadReader(context.Background(), "upload.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumRows())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "unsupported extension",
			path:     func(t *testing.T) string { return writeFile(t, "notes.txt", "a\n1\n") },
			wantCode: errors.CodeUnsupportedFormat,
			wantMsg:  MsgUnsupportedFormat,
		},
		{
			name:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.csv") },
			wantCode: errors.CodeLoadError,
			wantMsg:  "Error loading file: ",
		},
		{
			name:     "csv row longer than header",
			path:     func(t *testing.T) string { return writeFile(t, "bad.csv", "a,b\n1,2,3\n") },
			wantCode: errors.CodeLoadError,
			wantMsg:  "Error loading file: expected 2 fields in row 1, saw 3",
		},
		{
			name:     "empty csv",
			path:     func(t *testing.T) string { return writeFile(t, "blank.csv", "") },
			wantCode: errors.CodeLoadError,
			wantMsg:  "Error loading file: no columns to parse from file",
		},
		{
			name:     "corrupt workbook",
			path:     func(t *testing.T) string { return writeFile(t, "broken.xlsx", "not a zip") },
			wantCode: errors.CodeLoadError,
			wantMsg:  "Error loading file: ",
		},
		{
			name:     "no path",
			path:     func(t *testing.T) string { return "" },
			wantCode: errors.CodeLoadError,
			wantMsg:  MsgNoFile,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewLoader().Load(context.Background(), tt.path(t))
			require.Error(t, err)
			assert.Nil(t, d)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
			assert.True(t, strings.HasPrefix(err.Error(), tt.wantMsg), err.Error())
		})
	}
}

func TestLoadReader_NilReader(t *testing.T) {
	_, err := NewLoader().LoadReader(context.Background(), "x.csv", nil)
	require.Error(t, err)
	assert.Equal(t, MsgNoFile, err.Error())
}

func TestLoad_CanceledContext(t *testing.T) {
	path := writeFile(t, "a.csv", "a\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatOf(t *testing.T) {
	for name, want := range map[string]Format{"a.csv": FormatCSV, "b.XLSX": FormatXLSX, "c.xls": FormatXLS} {
		got, err := FormatOf(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatOf("d.json")
	assert.True(t, errors.HasCode(err, errors.CodeUnsupportedFormat))
}
