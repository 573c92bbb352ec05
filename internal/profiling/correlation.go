package profiling

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"gobi/domain/dataset"
	domainstats "gobi/domain/stats"
)

// CorrelationMatrix computes pairwise Pearson correlations between numeric columns.
// Each pair uses the rows where both values are present; fewer than two such rows or
// zero variance yields NaN. The matrix is empty when there are no numeric columns.
func (p *Profiler) CorrelationMatrix(d *dataset.Dataset) *domainstats.CorrelationMatrix {
	names := d.NumericColumns()
	m := domainstats.NewCorrelationMatrix(names)
	if len(names) == 0 {
		return m
	}

	columns := make([][]float64, len(names))
	for i, name := range names {
		columns[i], _ = d.Floats(name)
	}

	for i := range names {
		for j := i; j < len(names); j++ {
			m.Set(i, j, pairwiseCorrelation(columns[i], columns[j], i == j))
		}
	}
	return m
}

func pairwiseCorrelation(x, y []float64, diagonal bool) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	if diagonal {
		return 1
	}

	r := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, r))
}
