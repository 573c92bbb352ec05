// Package profiling computes the descriptive tables shown on the statistics tab.
package profiling

import (
	"github.com/montanaflynn/stats"

	"gobi/domain/dataset"
	domainstats "gobi/domain/stats"
	"gobi/internal"
)

const (
	// DefaultPreviewRows is the preview size used when none is requested
	DefaultPreviewRows = 5
	// MaxPreviewRows bounds the preview slider
	MaxPreviewRows = 20
)

// ClampPreviewRows bounds a requested preview size to [1, MaxPreviewRows]
func ClampPreviewRows(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPreviewRows {
		return MaxPreviewRows
	}
	return n
}

// Profiler computes profile tables for a dataset. It holds no dataset state.
type Profiler struct {
	logger *internal.Logger
}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{logger: internal.DefaultLogger.WithComponent("Profiler")}
}

// BasicInfo reports the shape, column names, storage dtypes and inferred kinds
func (p *Profiler) BasicInfo(d *dataset.Dataset) domainstats.BasicInfo {
	info := domainstats.BasicInfo{
		Rows:        d.NumRows(),
		Columns:     d.NumCols(),
		ColumnNames: d.ColumnNames(),
		DTypes:      make(map[string]string, d.NumCols()),
		Kinds:       make(map[string]dataset.ColumnKind, d.NumCols()),
	}
	if info.ColumnNames == nil {
		info.ColumnNames = []string{}
	}
	for _, c := range d.Columns() {
		info.DTypes[c.Name] = c.DType
		info.Kinds[c.Name] = c.Kind
	}
	return info
}

// Preview returns the first n rows; negative n yields no rows
func (p *Profiler) Preview(d *dataset.Dataset, n int) *dataset.Dataset {
	return d.Head(n)
}

// SummaryStatistics describes numeric columns and, separately, every other column.
// Either table is empty if the dataset has no column of that kind.
func (p *Profiler) SummaryStatistics(d *dataset.Dataset) ([]domainstats.NumericSummary, []domainstats.CategoricalSummary) {
	numeric := []domainstats.NumericSummary{}
	categorical := []domainstats.CategoricalSummary{}

	for _, c := range d.Columns() {
		if c.IsNumeric() {
			values, _ := d.Floats(c.Name)
			numeric = append(numeric, describeNumeric(c.Name, values))
			continue
		}
		values, present, _ := d.Strings(c.Name)
		categorical = append(categorical, describeCategorical(c.Name, values, present))
	}

	p.logger.Debug("described %d numeric and %d categorical columns", len(numeric), len(categorical))
	return numeric, categorical
}

// MissingReport counts missing cells per column; the percentage is rounded to 2 decimals
// and is 0 for a dataset without rows
func (p *Profiler) MissingReport(d *dataset.Dataset) []domainstats.MissingEntry {
	rows := d.NumRows()
	report := make([]domainstats.MissingEntry, 0, d.NumCols())
	for _, name := range d.ColumnNames() {
		count := d.MissingCount(name)
		percent := 0.0
		if rows > 0 {
			percent, _ = stats.Round(float64(count)/float64(rows)*100, 2)
		}
		report = append(report, domainstats.MissingEntry{
			Column:         name,
			MissingCount:   count,
			MissingPercent: percent,
		})
	}
	return report
}

// Profile computes every profile table at once
func (p *Profiler) Profile(d *dataset.Dataset) domainstats.ProfileReport {
	numeric, categorical := p.SummaryStatistics(d)
	report := domainstats.ProfileReport{
		Info:        p.BasicInfo(d),
		Numeric:     numeric,
		Categorical: categorical,
		Missing:     p.MissingReport(d),
		Correlation: p.CorrelationMatrix(d),
	}
	p.logger.Info("profiled %q (%d rows, %d columns)", d.Name(), report.Info.Rows, report.Info.Columns)
	return report
}
