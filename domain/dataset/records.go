package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// MissingTokens are the cell values read as missing
var MissingTokens = []string{
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "null", "NULL", "None", "#N/A", "<NA>",
}

// ErrNoColumns is returned when the input has no header row
var ErrNoColumns = errors.New("no columns to parse from file")

// FromRecords builds a dataset from string records whose first record is the header.
// Cells are trimmed, short rows padded and long rows truncated to the header width.
func FromRecords(name string, records [][]string) (*Dataset, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrNoColumns
	}

	headers := UniqueHeaders(records[0])
	width := len(headers)

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, width)
		for j := 0; j < width && j < len(rec); j++ {
			row[j] = strings.TrimSpace(rec[j])
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		cols := make([]series.Series, width)
		for j, h := range headers {
			cols[j] = series.New([]string{}, series.String, h)
		}
		return New(name, dataframe.New(cols...))
	}

	frame := dataframe.LoadRecords(
		append([][]string{headers}, rows...),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to build table: %w", frame.Err)
	}
	return New(name, frame)
}

// UniqueHeaders trims header cells, names blank ones "Unnamed: <i>" and suffixes
// duplicates with ".1", ".2", ...
func UniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	dupes := make(map[string]int)
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			dupes[h]++
			name = fmt.Sprintf("%s.%d", h, dupes[h])
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}
