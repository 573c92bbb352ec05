package stats

import (
	"fmt"
	"strings"

	"gobi/domain/core"
)

// Aggregation reduces the values of a group to one number
type Aggregation string

const (
	AggSum    Aggregation = "sum"
	AggMean   Aggregation = "mean"
	AggCount  Aggregation = "count"
	AggMedian Aggregation = "median"
)

// Aggregations lists the supported aggregations in display order
var Aggregations = []Aggregation{AggSum, AggMean, AggCount, AggMedian}

// ParseAggregation resolves a case-insensitive aggregation name; empty means sum
func ParseAggregation(s string) (Aggregation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return AggSum, nil
	}
	for _, a := range Aggregations {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aggregation %q", s)
}

// Valid reports whether a is one of Aggregations
func (a Aggregation) Valid() bool {
	for _, known := range Aggregations {
		if a == known {
			return true
		}
	}
	return false
}

// GroupValue is one aggregated group
type GroupValue struct {
	Key   string     `json:"key"`
	Value core.Float `json:"value"`
}

// TopNTable is the result of a top-N grouping
type TopNTable struct {
	GroupColumn string       `json:"group_column"`
	ValueColumn string       `json:"value_column"`
	Aggregation Aggregation  `json:"aggregation"`
	Rows        []GroupValue `json:"rows"`
}

// IsEmpty reports whether the table has no groups
func (t TopNTable) IsEmpty() bool {
	return len(t.Rows) == 0
}
