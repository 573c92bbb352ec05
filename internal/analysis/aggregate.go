// Package analysis derives automated insights: grouped aggregates, top-N groups and outliers.
package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"gobi/domain/core"
	"gobi/domain/dataset"
	domainstats "gobi/domain/stats"
)

// Aggregate reduces the present values of a group. The sum of nothing is 0; the mean and
// median of nothing are NaN.
func Aggregate(values []float64, agg domainstats.Aggregation) float64 {
	switch agg {
	case domainstats.AggCount:
		return float64(len(values))
	case domainstats.AggSum:
		if len(values) == 0 {
			return 0
		}
		sum, _ := stats.Sum(values)
		return sum
	case domainstats.AggMean:
		mean, err := stats.Mean(values)
		if err != nil {
			return math.NaN()
		}
		return mean
	case domainstats.AggMedian:
		median, err := stats.Median(values)
		if err != nil {
			return math.NaN()
		}
		return median
	}
	return math.NaN()
}

// Groups aggregates value per distinct group key, in ascending key order. Keys compare
// numerically when the group column is numeric. Rows with a missing key are dropped and
// missing values are left out of their group. A non-numeric value column only supports
// count. Returns nil when a column is absent or the request does not apply.
func Groups(d *dataset.Dataset, group, value string, agg domainstats.Aggregation) []domainstats.GroupValue {
	groupCol, ok := d.Column(group)
	if !ok {
		return nil
	}
	valueCol, ok := d.Column(value)
	if !ok {
		return nil
	}
	if !valueCol.IsNumeric() && agg != domainstats.AggCount {
		return nil
	}

	keys, keyPresent, _ := d.Strings(group)
	var numbers []float64
	var valuePresent []bool
	if valueCol.IsNumeric() {
		numbers, _ = d.Floats(value)
	} else {
		_, valuePresent, _ = d.Strings(value)
	}

	buckets := make(map[string][]float64)
	var order []string
	for i, key := range keys {
		if !keyPresent[i] {
			continue
		}
		if _, seen := buckets[key]; !seen {
			buckets[key] = []float64{}
			order = append(order, key)
		}
		switch {
		case numbers != nil:
			if !math.IsNaN(numbers[i]) {
				buckets[key] = append(buckets[key], numbers[i])
			}
		case valuePresent[i]:
			buckets[key] = append(buckets[key], 1)
		}
	}

	sortKeys(order, groupCol.IsNumeric())
	out := make([]domainstats.GroupValue, 0, len(order))
	for _, key := range order {
		out = append(out, domainstats.GroupValue{
			Key:   key,
			Value: core.Float(Aggregate(buckets[key], agg)),
		})
	}
	return out
}

func sortKeys(keys []string, numeric bool) {
	if !numeric {
		sort.Strings(keys)
		return
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.ParseFloat(keys[i], 64)
		b, errB := strconv.ParseFloat(keys[j], 64)
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
}
