package charts

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"gobi/domain/chart"
	"gobi/internal/errors"
)

const (
	DefaultPNGWidth  = 1024
	DefaultPNGHeight = 512
)

// RenderPNG draws a bar, line or histogram figure as a PNG. Box plots and heatmaps have no
// static rendering and fail with UNSUPPORTED_FORMAT.
func RenderPNG(w io.Writer, fig *chart.Figure, width, height int) error {
	if fig == nil || len(fig.Data) == 0 {
		return errors.New(errors.CodeRenderError, "nothing to render")
	}
	if width <= 0 {
		width = DefaultPNGWidth
	}
	if height <= 0 {
		height = DefaultPNGHeight
	}

	trace := fig.Data[0]
	var err error
	switch trace.Type {
	case chart.TraceBar:
		err = renderBars(w, fig.Title(), barValues(trace), width, height)
	case chart.TraceHistogram:
		err = renderBars(w, fig.Title(), histogramValues(trace), width, height)
	case chart.TraceScatter:
		err = renderLine(w, fig.Title(), trace, width, height)
	default:
		return errors.UnsupportedFormat(fmt.Sprintf("%s charts cannot be rendered as PNG", trace.Type))
	}
	if err != nil {
		return &errors.AppError{Code: errors.CodeRenderError, Message: "failed to render chart", Cause: err}
	}
	return nil
}

func barValues(trace chart.Trace) []gochart.Value {
	if trace.X == nil {
		return nil
	}
	labels := trace.X.Labels
	ys := trace.Y.Floats()
	bars := make([]gochart.Value, 0, len(ys))
	for i, y := range ys {
		if math.IsNaN(y) || i >= len(labels) {
			continue
		}
		bars = append(bars, gochart.Value{Label: labels[i], Value: y})
	}
	return bars
}

// histogramValues bins server-side; every fifth bin is labelled to keep the axis readable
func histogramValues(trace chart.Trace) []gochart.Value {
	bins := Histogram(trace.X.Floats(), chart.HistogramBins)
	bars := make([]gochart.Value, len(bins))
	for i, bin := range bins {
		label := ""
		if i%5 == 0 || len(bins) == 1 {
			label = strconv.FormatFloat(bin.Lo, 'g', 4, 64)
		}
		bars[i] = gochart.Value{Label: label, Value: float64(bin.Count)}
	}
	return bars
}

func renderBars(w io.Writer, title string, bars []gochart.Value, width, height int) error {
	if len(bars) == 0 {
		return fmt.Errorf("no bars to draw")
	}
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	if lo == hi {
		hi = lo + 1
	}

	barWidth := width / (len(bars) * 2)
	if barWidth < 4 {
		barWidth = 4
	}
	if barWidth > 60 {
		barWidth = 60
	}
	bc := gochart.BarChart{
		Title:      title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: lo, Max: hi}},
		Bars:       bars,
	}
	return bc.Render(gochart.PNG, w)
}

func renderLine(w io.Writer, title string, trace chart.Trace, width, height int) error {
	if trace.X == nil {
		return fmt.Errorf("no points to draw")
	}
	var times []time.Time
	var ys []float64
	values := trace.Y.Floats()
	for i, label := range trace.X.Labels {
		if i >= len(values) || math.IsNaN(values[i]) {
			continue
		}
		t, err := time.Parse(DayLayout, label)
		if err != nil {
			continue
		}
		times = append(times, t)
		ys = append(ys, values[i])
	}
	if len(times) == 0 {
		return fmt.Errorf("no points to draw")
	}
	// go-chart needs two x values for a range
	if len(times) == 1 {
		times = append(times, times[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	ch := gochart.Chart{
		Title:      title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12}},
		Width:      width,
		Height:     height,
		XAxis:      gochart.XAxis{Name: "date", ValueFormatter: gochart.TimeDateValueFormatter},
		YAxis:      gochart.YAxis{Name: trace.Name},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: trace.Name, XValues: times, YValues: ys},
		},
	}
	return ch.Render(gochart.PNG, w)
}
