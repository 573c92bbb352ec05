// Package charts turns chart specs into Plotly figures and renders static PNGs.
package charts

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gobi/domain/chart"
	"gobi/domain/dataset"
	"gobi/internal"
	"gobi/internal/analysis"
	"gobi/internal/profiling"
)

// Builder builds figures from the dataset passed to each call
type Builder struct {
	profiler *profiling.Profiler
	logger   *internal.Logger
}

// NewBuilder creates a chart builder
func NewBuilder() *Builder {
	return &Builder{
		profiler: profiling.NewProfiler(),
		logger:   internal.DefaultLogger.WithComponent("Charts"),
	}
}

// Build dispatches on spec.Kind. The boolean is false when the inputs produce no chart.
func (b *Builder) Build(d *dataset.Dataset, spec chart.Spec) (*chart.Figure, bool) {
	if d.IsEmpty() {
		return nil, false
	}

	var (
		fig *chart.Figure
		ok  bool
	)
	switch spec.Kind {
	case chart.KindDistribution:
		fig, ok = b.Distribution(d, spec.Column, spec.Style)
	case chart.KindCategoryAggregate:
		fig, ok = b.CategoryAggregate(d, spec.Category, spec.Value, spec)
	case chart.KindCorrelationHeatmap:
		fig, ok = b.CorrelationHeatmap(d)
	case chart.KindTimeSeries:
		fig, ok = b.TimeSeries(d, spec.DateColumn, spec.Value, spec)
	}

	if ok {
		b.logger.Debug("built %s chart %q", spec.Kind, fig.Title())
	} else {
		b.logger.Debug("no %s chart for the selected columns", spec.Kind)
	}
	return fig, ok
}

// Distribution draws a histogram with a marginal box plot, or a box plot alone
func (b *Builder) Distribution(d *dataset.Dataset, column string, style chart.DistributionStyle) (*chart.Figure, bool) {
	values, ok := d.Floats(column)
	if !ok || d.IsEmpty() {
		return nil, false
	}
	values = profiling.Present(values)

	if style == chart.StyleBox {
		return &chart.Figure{
			Data: []chart.Trace{{
				Type:        chart.TraceBox,
				Name:        column,
				Orientation: "h",
				X:           chart.Numbers(values),
			}},
			Layout: chart.Layout{
				Title: chart.Text{Text: "Box Plot of " + column},
				XAxis: chart.AxisTitled(column),
			},
		}, true
	}

	hide := false
	return &chart.Figure{
		Data: []chart.Trace{
			{
				Type:   chart.TraceHistogram,
				Name:   column,
				X:      chart.Numbers(values),
				NBinsX: chart.HistogramBins,
				XAxis:  "x",
				YAxis:  "y",
			},
			{
				Type:        chart.TraceBox,
				Name:        column,
				Orientation: "h",
				X:           chart.Numbers(values),
				XAxis:       "x",
				YAxis:       "y2",
				ShowLegend:  &hide,
			},
		},
		Layout: chart.Layout{
			Title:  chart.Text{Text: "Distribution of " + column},
			XAxis:  chart.AxisTitled(column),
			YAxis:  &chart.Axis{Title: &chart.Text{Text: "count"}, Domain: []float64{0, 0.8}},
			YAxis2: &chart.Axis{Domain: []float64{0.82, 1}, ShowTickLabels: &hide},
		},
	}, true
}

// CategoryAggregate draws one bar per group of category, in ascending key order
func (b *Builder) CategoryAggregate(d *dataset.Dataset, category, value string, spec chart.Spec) (*chart.Figure, bool) {
	agg := spec.Agg()
	if !agg.Valid() {
		return nil, false
	}
	groups := analysis.Groups(d, category, value, agg)
	if len(groups) == 0 {
		return nil, false
	}

	keys := make([]string, len(groups))
	values := make([]float64, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
		values[i] = g.Value.Float64()
	}

	return &chart.Figure{
		Data: []chart.Trace{{
			Type: chart.TraceBar,
			Name: value,
			X:    chart.Labels(keys),
			Y:    chart.Numbers(values),
		}},
		Layout: chart.Layout{
			Title: chart.Text{Text: fmt.Sprintf("%s of %s by %s", agg, value, category)},
			XAxis: chart.AxisTitled(category),
			YAxis: chart.AxisTitled(value),
		},
	}, true
}

// CorrelationHeatmap draws the correlation matrix of the numeric columns; it needs at least two
func (b *Builder) CorrelationHeatmap(d *dataset.Dataset) (*chart.Figure, bool) {
	if len(d.NumericColumns()) < 2 {
		return nil, false
	}
	m := b.profiler.CorrelationMatrix(d)

	rows := m.Rows()
	z := make([][]float64, len(rows))
	text := make([][]string, len(rows))
	for i, row := range rows {
		z[i] = row
		text[i] = make([]string, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				text[i][j] = fmt.Sprintf("%.2f", v)
			}
		}
	}

	zmin, zmax := -1.0, 1.0
	return &chart.Figure{
		Data: []chart.Trace{{
			Type:         chart.TraceHeatmap,
			X:            chart.Labels(m.Columns),
			Y:            chart.Labels(m.Columns),
			Z:            floatRows(z),
			Text:         text,
			TextTemplate: "%{text}",
			ColorScale:   "RdBu",
			ZMin:         &zmin,
			ZMax:         &zmax,
		}},
		Layout: chart.Layout{
			Title: chart.Text{Text: "Correlation Heatmap (numeric features)"},
		},
	}, true
}

// TimeSeries aggregates value per calendar day of dateColumn and draws a line in date order.
// Cells that do not parse as dates are dropped.
func (b *Builder) TimeSeries(d *dataset.Dataset, dateColumn, value string, spec chart.Spec) (*chart.Figure, bool) {
	if !spec.Agg().Valid() {
		return nil, false
	}
	points := DailySeries(d, dateColumn, value, spec.Agg())
	if len(points) == 0 {
		return nil, false
	}

	days := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		days[i] = p.Key
		values[i] = p.Value.Float64()
	}

	return &chart.Figure{
		Data: []chart.Trace{{
			Type: chart.TraceScatter,
			Mode: "lines",
			Name: value,
			X:    chart.Labels(days),
			Y:    chart.Numbers(values),
		}},
		Layout: chart.Layout{
			Title: chart.Text{Text: fmt.Sprintf("%s of %s over time", spec.Agg(), value)},
			XAxis: &chart.Axis{Title: &chart.Text{Text: "date"}, Type: "date"},
			YAxis: chart.AxisTitled(value),
		},
	}, true
}

// DateLikeColumns lists columns whose name mentions a date or whose values are dates
func DateLikeColumns(d *dataset.Dataset) []string {
	names := []string{}
	for _, c := range d.Columns() {
		if strings.Contains(strings.ToLower(c.Name), "date") || c.Kind == dataset.KindDatetime {
			names = append(names, c.Name)
		}
	}
	return names
}

// sortedDays returns the keys of a day-keyed map in ascending order
func sortedDays[V any](m map[string]V) []string {
	days := make([]string, 0, len(m))
	for day := range m {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
