// Package stats holds the result types of profiling and insight operations.
package stats

import (
	"gobi/domain/core"
	"gobi/domain/dataset"
)

// BasicInfo is the shape and column overview of a dataset
type BasicInfo struct {
	Rows        int                           `json:"rows"`
	Columns     int                           `json:"columns"`
	ColumnNames []string                      `json:"column_names"`
	DTypes      map[string]string             `json:"dtypes"`
	Kinds       map[string]dataset.ColumnKind `json:"kinds"`
}

// NumericSummary is one row of the numeric describe table
type NumericSummary struct {
	Column string     `json:"column"`
	Count  int        `json:"count"`
	Mean   core.Float `json:"mean"`
	Std    core.Float `json:"std"`
	Min    core.Float `json:"min"`
	Q25    core.Float `json:"25%"`
	Q50    core.Float `json:"50%"`
	Q75    core.Float `json:"75%"`
	Max    core.Float `json:"max"`
}

// CategoricalSummary is one row of the categorical describe table
type CategoricalSummary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Unique int    `json:"unique"`
	Top    string `json:"top,omitempty"`
	Freq   int    `json:"freq"`
}

// MissingEntry reports the missing cells of one column
type MissingEntry struct {
	Column         string  `json:"column"`
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percent"`
}

// ProfileReport bundles every profiling table for a dataset
type ProfileReport struct {
	Info        BasicInfo            `json:"info"`
	Numeric     []NumericSummary     `json:"numeric"`
	Categorical []CategoricalSummary `json:"categorical"`
	Missing     []MissingEntry       `json:"missing"`
	Correlation *CorrelationMatrix   `json:"correlation"`
}
