package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"gobi/domain/core"
	domainstats "gobi/domain/stats"
)

// describeNumeric summarises the non-missing values of a column. Undefined statistics are NaN.
func describeNumeric(name string, values []float64) domainstats.NumericSummary {
	present := Present(values)
	summary := domainstats.NumericSummary{
		Column: name,
		Count:  len(present),
		Mean:   core.NaN(),
		Std:    core.NaN(),
		Min:    core.NaN(),
		Q25:    core.NaN(),
		Q50:    core.NaN(),
		Q75:    core.NaN(),
		Max:    core.NaN(),
	}
	if len(present) == 0 {
		return summary
	}

	if mean, err := stats.Mean(present); err == nil {
		summary.Mean = core.Float(mean)
	}
	if len(present) > 1 {
		if std, err := stats.StandardDeviationSample(present); err == nil {
			summary.Std = core.Float(std)
		}
	}
	if min, err := stats.Min(present); err == nil {
		summary.Min = core.Float(min)
	}
	if max, err := stats.Max(present); err == nil {
		summary.Max = core.Float(max)
	}

	sorted := make([]float64, len(present))
	copy(sorted, present)
	sort.Float64s(sorted)
	summary.Q25 = core.Float(Quantile(sorted, 0.25))
	summary.Q50 = core.Float(Quantile(sorted, 0.50))
	summary.Q75 = core.Float(Quantile(sorted, 0.75))
	return summary
}

// describeCategorical counts non-missing values, distinct values and the most frequent one.
// Ties for the most frequent value go to the value seen first.
func describeCategorical(name string, values []string, present []bool) domainstats.CategoricalSummary {
	summary := domainstats.CategoricalSummary{Column: name}
	counts := make(map[string]int)
	var order []string
	for i, v := range values {
		if !present[i] {
			continue
		}
		summary.Count++
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	summary.Unique = len(order)
	for _, v := range order {
		if counts[v] > summary.Freq {
			summary.Top = v
			summary.Freq = counts[v]
		}
	}
	return summary
}

// Present drops NaN values
func Present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Quantile returns the q-th quantile of sorted values using linear interpolation
// between closest ranks, position (n-1)*q. NaN for empty input.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := float64(n-1) * q
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
