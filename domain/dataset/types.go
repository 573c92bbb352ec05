// Package dataset holds the in-memory table every exploration operation works on.
//
// A Dataset is immutable: filtering, previews and subsets produce new datasets that share
// nothing mutable with their source. Storage is a gota DataFrame; column kinds are inferred
// once at construction.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColumnKind is the analytical kind inferred for a column
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
	KindDatetime    ColumnKind = "datetime"
)

// Column describes a single column of a dataset
type Column struct {
	Name  string     `json:"name"`
	DType string     `json:"dtype"`
	Kind  ColumnKind `json:"kind"`
}

// IsNumeric reports whether the column holds numbers
func (c Column) IsNumeric() bool {
	return c.Kind == KindNumeric
}

// Dataset is an ordered, immutable table of uniquely named columns
type Dataset struct {
	name    string
	frame   dataframe.DataFrame
	columns []Column
	index   map[string]int
}

// New wraps a gota frame, inferring column kinds
func New(name string, frame dataframe.DataFrame) (*Dataset, error) {
	if frame.Err != nil {
		return nil, fmt.Errorf("invalid frame: %w", frame.Err)
	}

	d := &Dataset{
		name:  name,
		frame: frame,
		index: make(map[string]int, frame.Ncol()),
	}
	for i, colName := range frame.Names() {
		s := frame.Col(colName)
		d.columns = append(d.columns, Column{
			Name:  colName,
			DType: string(s.Type()),
			Kind:  inferKind(colName, s),
		})
		d.index[colName] = i
	}
	return d, nil
}

// Empty returns a dataset without columns or rows
func Empty(name string) *Dataset {
	return &Dataset{name: name, index: map[string]int{}}
}

// Name returns the name the dataset was loaded under
func (d *Dataset) Name() string {
	return d.name
}

// Frame exposes the underlying gota frame
func (d *Dataset) Frame() dataframe.DataFrame {
	return d.frame
}

// NumRows returns the row count
func (d *Dataset) NumRows() int {
	if d == nil || len(d.columns) == 0 {
		return 0
	}
	return d.frame.Nrow()
}

// NumCols returns the column count
func (d *Dataset) NumCols() int {
	if d == nil {
		return 0
	}
	return len(d.columns)
}

// IsEmpty reports whether the dataset has no rows
func (d *Dataset) IsEmpty() bool {
	return d.NumRows() == 0
}

// ColumnNames returns the column names in order
func (d *Dataset) ColumnNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the column descriptors in order
func (d *Dataset) Columns() []Column {
	if d == nil {
		return nil
	}
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Column looks up a column descriptor by name
func (d *Dataset) Column(name string) (Column, bool) {
	if d == nil {
		return Column{}, false
	}
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// HasColumn reports whether a column exists
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.Column(name)
	return ok
}

// ColumnsOfKind returns the names of all columns of the given kind
func (d *Dataset) ColumnsOfKind(kind ColumnKind) []string {
	var names []string
	for _, c := range d.Columns() {
		if c.Kind == kind {
			names = append(names, c.Name)
		}
	}
	return names
}

// NumericColumns returns the names of numeric columns
func (d *Dataset) NumericColumns() []string {
	return d.ColumnsOfKind(KindNumeric)
}

// Floats returns a numeric column as float64 values, NaN where missing
func (d *Dataset) Floats(name string) ([]float64, bool) {
	col, ok := d.Column(name)
	if !ok || !col.IsNumeric() {
		return nil, false
	}
	return d.frame.Col(name).Float(), true
}

// Strings returns the stringified values of a column and a mask of present cells
func (d *Dataset) Strings(name string) ([]string, []bool, bool) {
	if !d.HasColumn(name) {
		return nil, nil, false
	}
	s := d.frame.Col(name)
	values := make([]string, s.Len())
	present := make([]bool, s.Len())
	for i := range values {
		values[i], present[i] = cellString(s, i)
	}
	return values, present, true
}

// MissingCount returns the number of missing cells in a column
func (d *Dataset) MissingCount(name string) int {
	if !d.HasColumn(name) {
		return 0
	}
	count := 0
	for _, na := range d.frame.Col(name).IsNaN() {
		if na {
			count++
		}
	}
	return count
}

// Value returns a cell as a JSON-friendly Go value, nil when missing
func (d *Dataset) Value(row int, name string) interface{} {
	if !d.HasColumn(name) || row < 0 || row >= d.NumRows() {
		return nil
	}
	s := d.frame.Col(name)
	e := s.Elem(row)
	if e.IsNA() {
		return nil
	}
	switch s.Type() {
	case series.Float:
		v := e.Float()
		if math.IsInf(v, 0) {
			return nil
		}
		return v
	case series.Int:
		v, err := e.Int()
		if err != nil {
			return nil
		}
		return v
	case series.Bool:
		v, err := e.Bool()
		if err != nil {
			return nil
		}
		return v
	default:
		return e.String()
	}
}

// Row returns all cells of a row in column order
func (d *Dataset) Row(row int) []interface{} {
	out := make([]interface{}, d.NumCols())
	for j, c := range d.columns {
		out[j] = d.Value(row, c.Name)
	}
	return out
}

// Subset returns a new dataset holding the given rows in the given order
func (d *Dataset) Subset(rows []int) *Dataset {
	if d.NumCols() == 0 {
		return d
	}
	if rows == nil {
		rows = []int{}
	}
	return &Dataset{
		name:    d.name,
		frame:   d.frame.Subset(rows),
		columns: d.columns,
		index:   d.index,
	}
}

// Head returns the first n rows; n larger than the row count returns every row
func (d *Dataset) Head(n int) *Dataset {
	if n < 0 {
		n = 0
	}
	if total := d.NumRows(); n > total {
		n = total
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return d.Subset(rows)
}

// Records renders the dataset as CSV-ready records: header first, missing cells empty
func (d *Dataset) Records() [][]string {
	records := make([][]string, 0, d.NumRows()+1)
	records = append(records, d.ColumnNames())

	cols := make([]series.Series, d.NumCols())
	for j, c := range d.columns {
		cols[j] = d.frame.Col(c.Name)
	}
	for i := 0; i < d.NumRows(); i++ {
		rec := make([]string, len(cols))
		for j, s := range cols {
			rec[j], _ = cellString(s, i)
		}
		records = append(records, rec)
	}
	return records
}

// cellString stringifies one cell; floats use the shortest round-trip form and bools are
// written True/False
func cellString(s series.Series, i int) (string, bool) {
	e := s.Elem(i)
	if e.IsNA() {
		return "", false
	}
	switch s.Type() {
	case series.Float:
		return strconv.FormatFloat(e.Float(), 'g', -1, 64), true
	case series.Bool:
		b, err := e.Bool()
		if err != nil {
			return "", false
		}
		if b {
			return "True", true
		}
		return "False", true
	}
	return e.String(), true
}

func inferKind(name string, s series.Series) ColumnKind {
	switch s.Type() {
	case series.Int, series.Float:
		return KindNumeric
	case series.Bool:
		return KindCategorical
	}

	if strings.Contains(strings.ToLower(name), "date") {
		return KindDatetime
	}

	parsed := 0
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		if _, ok := ParseDate(e.String()); !ok {
			return KindCategorical
		}
		parsed++
	}
	if parsed > 0 {
		return KindDatetime
	}
	return KindCategorical
}
