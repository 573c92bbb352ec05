package app

import (
	"gobi/domain/chart"
	"gobi/domain/dataset"
	"gobi/domain/stats"
)

// Top-N slider bounds
const (
	MinTopN     = 3
	MaxTopN     = 20
	DefaultTopN = 5
)

// ClampTopN keeps a requested group count within the slider bounds
func ClampTopN(n int) int {
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// Status is the message shown under a dashboard action. OK is false for warnings.
type Status struct {
	Message string `json:"message"`
	OK      bool   `json:"ok"`
}

func okStatus(msg string) Status   { return Status{Message: msg, OK: true} }
func warnStatus(msg string) Status { return Status{Message: msg} }

// UploadResult is returned by Upload
type UploadResult struct {
	Status
	Info    *stats.BasicInfo `json:"info,omitempty"`
	Preview *dataset.Dataset `json:"preview,omitempty"`
}

// StatisticsResult is returned by Statistics
type StatisticsResult struct {
	Status
	Profile *stats.ProfileReport `json:"profile,omitempty"`
}

// ColumnHints feed the column selection widgets
type ColumnHints struct {
	All         []string `json:"all"`
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
	DateLike    []string `json:"date_like"`
}

// FilterRequest carries the loosely typed filter widget values
type FilterRequest struct {
	Column     string   `json:"column"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// FilterResult is returned by ApplyFilter
type FilterResult struct {
	Status
	Rows    *dataset.Dataset `json:"rows,omitempty"`
	Matched int              `json:"matched"`
	Total   int              `json:"total"`
}

// PlotResult is returned by Plot; Figure is nil when nothing could be drawn
type PlotResult struct {
	Status
	Figure *chart.Figure `json:"figure,omitempty"`
}

// InsightsRequest selects the columns for automated insights. Zero N, Z or Aggregation use
// the service defaults.
type InsightsRequest struct {
	Group       string  `json:"group"`
	Value       string  `json:"value"`
	N           int     `json:"n"`
	Aggregation string  `json:"aggregation,omitempty"`
	Z           float64 `json:"z,omitempty"`
}

// InsightsResult is returned by Insights
type InsightsResult struct {
	Status
	TopN     stats.TopNTable  `json:"top_n"`
	Outliers *dataset.Dataset `json:"outliers"`
}

// ReportResult is returned by Report
type ReportResult struct {
	Status
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
}
