package charts

import (
	"math"

	"gobi/domain/core"
	"gobi/domain/dataset"
	domainstats "gobi/domain/stats"
	"gobi/internal/analysis"
)

// DayLayout formats the calendar days of a time series
const DayLayout = "2006-01-02"

// DailySeries aggregates value per calendar day of dateColumn, in ascending date order.
// Rows whose date is missing or unparseable are dropped. Returns nil when a column is
// absent, the value column cannot be aggregated or no dated rows remain.
func DailySeries(d *dataset.Dataset, dateColumn, value string, agg domainstats.Aggregation) []domainstats.GroupValue {
	if !d.HasColumn(dateColumn) {
		return nil
	}
	valueCol, ok := d.Column(value)
	if !ok || (!valueCol.IsNumeric() && agg != domainstats.AggCount) {
		return nil
	}

	raw, datePresent, _ := d.Strings(dateColumn)
	var numbers []float64
	var valuePresent []bool
	if valueCol.IsNumeric() {
		numbers, _ = d.Floats(value)
	} else {
		_, valuePresent, _ = d.Strings(value)
	}

	buckets := make(map[string][]float64)
	for i, cell := range raw {
		if !datePresent[i] {
			continue
		}
		t, ok := dataset.ParseDate(cell)
		if !ok {
			continue
		}
		day := dataset.CalendarDay(t).Format(DayLayout)
		if _, seen := buckets[day]; !seen {
			buckets[day] = []float64{}
		}
		switch {
		case numbers != nil:
			if !math.IsNaN(numbers[i]) {
				buckets[day] = append(buckets[day], numbers[i])
			}
		case valuePresent[i]:
			buckets[day] = append(buckets[day], 1)
		}
	}
	if len(buckets) == 0 {
		return nil
	}

	out := make([]domainstats.GroupValue, 0, len(buckets))
	for _, day := range sortedDays(buckets) {
		out = append(out, domainstats.GroupValue{
			Key:   day,
			Value: core.Float(analysis.Aggregate(buckets[day], agg)),
		})
	}
	return out
}

func floatRows(rows [][]float64) [][]core.Float {
	out := make([][]core.Float, len(rows))
	for i, row := range rows {
		out[i] = make([]core.Float, len(row))
		for j, v := range row {
			out[i][j] = core.Float(v)
		}
	}
	return out
}
