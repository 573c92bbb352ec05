package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"gobi/domain/dataset"
	domainstats "gobi/domain/stats"
)

// DefaultOutlierZ is the z-score beyond which a value counts as an outlier
const DefaultOutlierZ = 2.5

// TopN returns the n groups with the largest aggregated value, largest first. Groups with
// equal values keep ascending key order and NaN values sort last. The table is empty when
// the dataset is empty, a column is absent or n is not positive.
func TopN(d *dataset.Dataset, group, value string, n int, agg domainstats.Aggregation) domainstats.TopNTable {
	table := domainstats.TopNTable{
		GroupColumn: group,
		ValueColumn: value,
		Aggregation: agg,
		Rows:        []domainstats.GroupValue{},
	}
	if d.IsEmpty() || n <= 0 {
		return table
	}

	groups := Groups(d, group, value, agg)
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Value.Float64(), groups[j].Value.Float64()
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
	if len(groups) > n {
		groups = groups[:n]
	}
	if groups != nil {
		table.Rows = groups
	}
	return table
}

// Outliers returns the rows of d whose value in column lies more than threshold population
// standard deviations from the mean. An empty dataset without columns signals an invalid
// request: column absent or non-numeric, or no rows. A column without spread yields the
// row-less subset with the dataset's columns.
func Outliers(d *dataset.Dataset, column string, threshold float64) *dataset.Dataset {
	if d == nil || d.IsEmpty() {
		return dataset.Empty("outliers")
	}
	col, ok := d.Column(column)
	if !ok || !col.IsNumeric() {
		return dataset.Empty("outliers")
	}

	values, _ := d.Floats(column)
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}

	none := d.Subset([]int{})
	mean, err := stats.Mean(present)
	if err != nil {
		return none
	}
	std, err := stats.StandardDeviationPopulation(present)
	if err != nil || std == 0 || math.IsNaN(std) {
		return none
	}

	rows := []int{}
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.Abs((v-mean)/std) > threshold {
			rows = append(rows, i)
		}
	}
	return d.Subset(rows)
}
