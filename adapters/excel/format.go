package excel

import (
	"path/filepath"
	"strings"

	"gobi/internal/errors"
)

// Format is a supported input file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
)

// MsgUnsupportedFormat is shown when the file extension is not accepted
const MsgUnsupportedFormat = "Unsupported file format. Please upload CSV or Excel."

// SupportedExtensions lists the accepted file extensions
var SupportedExtensions = []string{".csv", ".xlsx", ".xls"}

// FormatOf resolves the format from a file name's extension, case-insensitively
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	}
	return "", errors.UnsupportedFormat(MsgUnsupportedFormat)
}
