// Package chart describes chart requests and the Plotly-compatible figures built from them.
package chart

import (
	"fmt"
	"strings"

	"gobi/domain/stats"
)

// Kind selects the chart family
type Kind string

const (
	KindDistribution       Kind = "distribution"
	KindCategoryAggregate  Kind = "category_aggregate"
	KindCorrelationHeatmap Kind = "correlation_heatmap"
	KindTimeSeries         Kind = "time_series"
)

// Kinds lists every chart kind with its dashboard label
var Kinds = []struct {
	Kind  Kind
	Label string
}{
	{KindDistribution, "Distribution"},
	{KindCategoryAggregate, "Category Bar"},
	{KindCorrelationHeatmap, "Correlation Heatmap"},
	{KindTimeSeries, "Time Series"},
}

// ParseKind accepts a kind identifier or its dashboard label, case-insensitively
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k.Kind)) || strings.EqualFold(s, k.Label) {
			return k.Kind, nil
		}
	}
	return "", fmt.Errorf("unsupported visualization type %q", s)
}

// DistributionStyle selects between histogram and box plot
type DistributionStyle string

const (
	StyleHistogram DistributionStyle = "hist"
	StyleBox       DistributionStyle = "box"
)

// HistogramBins is the bin count of distribution histograms
const HistogramBins = 30

// Spec selects what to draw. Only the fields relevant to Kind are read.
type Spec struct {
	Kind        Kind              `json:"kind"`
	Column      string            `json:"column,omitempty"`
	Style       DistributionStyle `json:"style,omitempty"`
	Category    string            `json:"category,omitempty"`
	Value       string            `json:"value,omitempty"`
	DateColumn  string            `json:"date_column,omitempty"`
	Aggregation stats.Aggregation `json:"aggregation,omitempty"`
}

// Agg returns the aggregation, sum when unset
func (s Spec) Agg() stats.Aggregation {
	if s.Aggregation == "" {
		return stats.AggSum
	}
	return s.Aggregation
}
