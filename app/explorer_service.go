// Package app orchestrates the explorer operations behind the dashboard, the API and the CLI.
package app

import (
	"context"
	"fmt"
	"io"

	"gobi/domain/chart"
	"gobi/domain/dataset"
	"gobi/domain/stats"
	"gobi/internal"
	"gobi/internal/analysis"
	"gobi/internal/charts"
	datasetsvc "gobi/internal/dataset"
	"gobi/internal/errors"
	"gobi/internal/metrics"
	"gobi/internal/profiling"
	"gobi/internal/report"
	"gobi/internal/session"
	"gobi/ports"
)

// ExplorerConfig holds the tunable defaults of the service
type ExplorerConfig struct {
	PreviewRows int
	OutlierZ    float64
	TopN        int
}

// DefaultExplorerConfig returns the dashboard defaults
func DefaultExplorerConfig() ExplorerConfig {
	return ExplorerConfig{
		PreviewRows: profiling.DefaultPreviewRows,
		OutlierZ:    analysis.DefaultOutlierZ,
		TopN:        DefaultTopN,
	}
}

// ExplorerService runs explorer operations against one session
type ExplorerService struct {
	loader   ports.DatasetLoader
	exporter ports.DatasetExporter
	session  *session.Session
	profiler *profiling.Profiler
	charts   *charts.Builder
	metrics  *metrics.Registry
	config   ExplorerConfig
	logger   *internal.Logger
}

// NewExplorerService creates an explorer service. A nil registry disables metrics.
func NewExplorerService(loader ports.DatasetLoader, exporter ports.DatasetExporter, sess *session.Session, reg *metrics.Registry, config ExplorerConfig) *ExplorerService {
	if sess == nil {
		sess = session.New()
	}
	return &ExplorerService{
		loader:   loader,
		exporter: exporter,
		session:  sess,
		profiler: profiling.NewProfiler(),
		charts:   charts.NewBuilder(),
		metrics:  reg,
		config:   config,
		logger:   internal.DefaultLogger.WithComponent("Explorer"),
	}
}

// Session returns the session the service works on
func (s *ExplorerService) Session() *session.Session {
	return s.session
}

// Upload loads an uploaded file and makes it the current dataset. On failure the session is
// left untouched and the returned status carries the cause.
func (s *ExplorerService) Upload(ctx context.Context, name string, r io.Reader, previewRows int) (*UploadResult, error) {
	done := s.metrics.Track("upload")
	d, err := s.loader.LoadReader(ctx, name, r)
	return s.install(d, err, previewRows, done)
}

// LoadFile loads a file from local storage and makes it the current dataset
func (s *ExplorerService) LoadFile(ctx context.Context, path string) (*UploadResult, error) {
	done := s.metrics.Track("upload")
	d, err := s.loader.Load(ctx, path)
	return s.install(d, err, s.config.PreviewRows, done)
}

func (s *ExplorerService) install(d *dataset.Dataset, err error, previewRows int, done func(string)) (*UploadResult, error) {
	if err != nil {
		done(metrics.OutcomeError)
		s.logger.Warn("load failed: %v", err)
		return &UploadResult{Status: warnStatus(warningPrefix + err.Error())}, err
	}

	s.session.Replace(d)
	s.metrics.SetDatasetRows(d.NumRows())
	done(metrics.OutcomeOK)

	if previewRows <= 0 {
		previewRows = s.config.PreviewRows
	}
	info := s.profiler.BasicInfo(d)
	return &UploadResult{
		Status:  okStatus(MsgLoaded),
		Info:    &info,
		Preview: s.profiler.Preview(d, profiling.ClampPreviewRows(previewRows)),
	}, nil
}

// Info returns the shape of the current dataset, nil before an upload
func (s *ExplorerService) Info() *stats.BasicInfo {
	d := s.session.Current()
	if d == nil {
		return nil
	}
	info := s.profiler.BasicInfo(d)
	return &info
}

// Preview returns the first rows of the current dataset, nil before an upload
func (s *ExplorerService) Preview(n int) *dataset.Dataset {
	d := s.session.Current()
	if d == nil {
		return nil
	}
	return s.profiler.Preview(d, profiling.ClampPreviewRows(n))
}

// Statistics profiles the current dataset
func (s *ExplorerService) Statistics() StatisticsResult {
	done := s.metrics.Track("statistics")
	d := s.session.Current()
	if d.IsEmpty() {
		done(metrics.OutcomeWarning)
		return StatisticsResult{Status: warnStatus(MsgNoDataTab)}
	}

	profile := s.profiler.Profile(d)
	done(metrics.OutcomeOK)
	return StatisticsResult{Status: okStatus(MsgStatsComputed), Profile: &profile}
}

// Columns returns the column hints for the selection widgets
func (s *ExplorerService) Columns() ColumnHints {
	hints := ColumnHints{All: []string{}, Numeric: []string{}, Categorical: []string{}, DateLike: []string{}}
	d := s.session.Current()
	if d.IsEmpty() {
		return hints
	}
	hints.All = d.ColumnNames()
	hints.Numeric = d.NumericColumns()
	for _, c := range d.Columns() {
		if !c.IsNumeric() {
			hints.Categorical = append(hints.Categorical, c.Name)
		}
	}
	hints.DateLike = charts.DateLikeColumns(d)
	if len(hints.DateLike) == 0 {
		hints.DateLike = hints.All
	}
	return hints
}

// Categories lists the filter choices of a non-numeric column
func (s *ExplorerService) Categories(column string) []string {
	d := s.session.Current()
	if d == nil {
		return []string{}
	}
	return datasetsvc.CategoryChoices(d, column)
}

// ApplyFilter filters the current dataset and keeps the result for download
func (s *ExplorerService) ApplyFilter(req FilterRequest) FilterResult {
	done := s.metrics.Track("filter")
	d := s.session.Current()
	if d.IsEmpty() {
		done(metrics.OutcomeWarning)
		return FilterResult{Status: warnStatus(MsgNoData)}
	}
	if req.Column == "" {
		done(metrics.OutcomeWarning)
		return FilterResult{Status: warnStatus(MsgSelectColumn), Total: d.NumRows()}
	}

	spec := datasetsvc.SpecFor(d, req.Column, req.Min, req.Max, req.Categories)
	filtered := datasetsvc.Filter(d, req.Column, spec)
	s.session.SetFiltered(filtered)
	done(metrics.OutcomeOK)

	return FilterResult{
		Status:  okStatus(fmt.Sprintf(MsgFilteredRows, filtered.NumRows(), d.NumRows())),
		Rows:    filtered,
		Matched: filtered.NumRows(),
		Total:   d.NumRows(),
	}
}

// DownloadFiltered exports the last filtered view, or the whole dataset when no filter was
// applied. It returns "" when there is nothing to write. The previous export is removed once
// the new one exists.
func (s *ExplorerService) DownloadFiltered(ctx context.Context) (string, error) {
	done := s.metrics.Track("download")
	path, err := s.exporter.Export(ctx, s.session.View())
	if err != nil {
		done(metrics.OutcomeError)
		return "", err
	}
	if path == "" {
		done(metrics.OutcomeEmpty)
		return "", nil
	}

	if previous := s.session.SwapExport(path); previous != "" && previous != path {
		if err := s.exporter.Remove(previous); err != nil {
			s.logger.Warn("could not remove previous export %s: %v", previous, err)
		}
	}
	done(metrics.OutcomeOK)
	return path, nil
}

// Plot builds a figure for the current dataset
func (s *ExplorerService) Plot(spec chart.Spec) PlotResult {
	done := s.metrics.Track("plot")
	result := s.plot(spec)
	if result.Figure == nil {
		done(metrics.OutcomeWarning)
	} else {
		done(metrics.OutcomeOK)
	}
	return result
}

func (s *ExplorerService) plot(spec chart.Spec) PlotResult {
	d := s.session.Current()
	if d.IsEmpty() {
		return PlotResult{Status: warnStatus(MsgNoData)}
	}

	if spec.Kind == chart.KindCategoryAggregate || spec.Kind == chart.KindTimeSeries {
		agg, err := stats.ParseAggregation(string(spec.Aggregation))
		if err != nil {
			return PlotResult{Status: warnStatus(fmt.Sprintf(MsgUnknownAggregation, spec.Aggregation))}
		}
		spec.Aggregation = agg
	}

	var missing, failed, created string
	switch spec.Kind {
	case chart.KindDistribution:
		if spec.Column == "" {
			missing = MsgSelectNumeric
		}
		failed = MsgPlotFailed
		created = fmt.Sprintf(MsgPlotCreated, "Distribution", spec.Column)
	case chart.KindCategoryAggregate:
		if spec.Category == "" || spec.Value == "" {
			missing = MsgSelectCategoryPair
		}
		failed = MsgBarFailed
		created = fmt.Sprintf(MsgBarCreated, spec.Agg(), spec.Value, spec.Category)
	case chart.KindCorrelationHeatmap:
		failed = MsgHeatmapFailed
		created = MsgHeatmapCreated
	case chart.KindTimeSeries:
		if spec.DateColumn == "" || spec.Value == "" {
			missing = MsgSelectDatePair
		}
		failed = MsgTimeSeriesFailed
		created = fmt.Sprintf(MsgTimeSeriesCreated, spec.Agg(), spec.Value)
	default:
		return PlotResult{Status: warnStatus(MsgUnsupportedPlot)}
	}
	if missing != "" {
		return PlotResult{Status: warnStatus(missing)}
	}

	fig, ok := s.charts.Build(d, spec)
	if !ok {
		return PlotResult{Status: warnStatus(failed)}
	}
	return PlotResult{Status: okStatus(created), Figure: fig}
}

// PlotPNG renders the figure for spec as a PNG. Requests that draw nothing fail with a
// validation error carrying the dashboard message.
func (s *ExplorerService) PlotPNG(spec chart.Spec, w io.Writer, width, height int) error {
	done := s.metrics.Track("plot_png")
	result := s.plot(spec)
	if result.Figure == nil {
		done(metrics.OutcomeWarning)
		return errors.ValidationError(result.Message)
	}
	if err := charts.RenderPNG(w, result.Figure, width, height); err != nil {
		done(metrics.OutcomeError)
		return err
	}
	done(metrics.OutcomeOK)
	return nil
}

// Insights computes the top-N groups and the z-score outliers of the current dataset
func (s *ExplorerService) Insights(req InsightsRequest) InsightsResult {
	done := s.metrics.Track("insights")
	d := s.session.Current()
	if d.IsEmpty() {
		done(metrics.OutcomeWarning)
		return InsightsResult{
			Status:   warnStatus(MsgNoDataInsights),
			TopN:     stats.TopNTable{Rows: []stats.GroupValue{}},
			Outliers: dataset.Empty("outliers"),
		}
	}

	agg, err := stats.ParseAggregation(req.Aggregation)
	if err != nil {
		agg = stats.AggSum
	}
	n := req.N
	if n == 0 {
		n = s.config.TopN
	}
	z := req.Z
	if z <= 0 {
		z = s.config.OutlierZ
	}

	top := analysis.TopN(d, req.Group, req.Value, n, agg)
	outliers := analysis.Outliers(d, req.Value, z)
	if top.IsEmpty() && outliers.IsEmpty() {
		done(metrics.OutcomeWarning)
		return InsightsResult{Status: warnStatus(MsgNoInsights), TopN: top, Outliers: outliers}
	}

	done(metrics.OutcomeOK)
	return InsightsResult{
		Status:   okStatus(fmt.Sprintf(MsgInsights, req.Group, req.Value)),
		TopN:     top,
		Outliers: outliers,
	}
}

// Report renders the profile of the current dataset as Markdown and HTML
func (s *ExplorerService) Report() ReportResult {
	done := s.metrics.Track("report")
	d := s.session.Current()
	if d.IsEmpty() {
		done(metrics.OutcomeWarning)
		return ReportResult{Status: warnStatus(MsgNoDataTab)}
	}

	profile := s.profiler.Profile(d)
	md := report.Markdown(d.Name(), &profile)
	done(metrics.OutcomeOK)
	return ReportResult{
		Status:   okStatus(MsgReportCreated),
		Markdown: md,
		HTML:     string(report.HTML(d.Name(), md)),
	}
}
