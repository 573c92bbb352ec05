package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gobi/adapters/excel"
	"gobi/app"
	"gobi/domain/chart"
	"gobi/domain/dataset"
	"gobi/domain/stats"
	"gobi/internal/analysis"
	"gobi/internal/charts"
	datasetsvc "gobi/internal/dataset"
	"gobi/internal/errors"
	"gobi/internal/profiling"
	"gobi/internal/report"
	"gobi/internal/testkit"
)

func newExplorer(exportDir string) *app.ExplorerService {
	return app.NewExplorerService(excel.NewLoader(), datasetsvc.NewTempCSVExporter(exportDir), nil, nil, app.DefaultExplorerConfig())
}

// load opens path in a fresh explorer session
func load(ctx context.Context, path, exportDir string) (*app.ExplorerService, error) {
	explorer := newExplorer(exportDir)
	if _, err := explorer.LoadFile(ctx, path); err != nil {
		return nil, err
	}
	return explorer, nil
}

// warn returns the status message as an error when it is a warning
func warn(s app.Status) error {
	if s.OK {
		return nil
	}
	return errors.ValidationError(s.Message)
}

func newProfileCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "profile FILE...",
		Short: "Profile one or more CSV/Excel files",
		Long: `Load every file concurrently and print a profile report per file, in argument order.

Example: gobi profile sales.csv inventory.xlsx --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd.Context(), cmd.OutOrStdout(), args, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown|json")
	return cmd
}

func runProfile(ctx context.Context, w io.Writer, paths []string, format string) error {
	if format != "markdown" && format != "json" {
		return errors.InvalidInput(fmt.Sprintf("unknown format %q", format))
	}

	loader := excel.NewLoader()
	datasets := make([]*dataset.Dataset, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			d, err := loader.Load(ctx, path)
			if err != nil {
				return errors.Wrapf(err, "%s", path)
			}
			datasets[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	profiler := profiling.NewProfiler()
	if format == "json" {
		reports := make([]stats.ProfileReport, len(datasets))
		for i, d := range datasets {
			reports[i] = profiler.Profile(d)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for i, d := range datasets {
		p := profiler.Profile(d)
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, report.Markdown(filepath.Base(paths[i]), &p))
	}
	return nil
}

func newFilterCmd() *cobra.Command {
	var (
		column     string
		minVal     float64
		maxVal     float64
		categories []string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "filter FILE",
		Short: "Filter rows by one column and write them as CSV",
		Long: `Keep rows whose numeric value lies in [--min, --max] or whose value is one of --category.

Example: gobi filter sales.csv --column region --category east --category west --out east_west.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.FilterRequest{Column: column, Categories: categories}
			if cmd.Flags().Changed("min") {
				req.Min = dataset.Bound(minVal)
			}
			if cmd.Flags().Changed("max") {
				req.Max = dataset.Bound(maxVal)
			}
			return runFilter(cmd.Context(), cmd.OutOrStdout(), args[0], req, out)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Column to filter on")
	cmd.Flags().Float64Var(&minVal, "min", 0, "Lower bound for numeric columns")
	cmd.Flags().Float64Var(&maxVal, "max", 0, "Upper bound for numeric columns")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Allowed value for non-numeric columns (repeatable)")
	cmd.Flags().StringVar(&out, "out", "", "Output CSV path (default: a new file in the export directory)")
	return cmd
}

func runFilter(ctx context.Context, w io.Writer, path string, req app.FilterRequest, out string) error {
	exportDir := os.TempDir()
	if out != "" {
		exportDir = filepath.Dir(out)
	}
	explorer, err := load(ctx, path, exportDir)
	if err != nil {
		return err
	}

	res := explorer.ApplyFilter(req)
	if err := warn(res.Status); err != nil {
		return err
	}
	fmt.Fprintln(w, res.Message)

	written, err := explorer.DownloadFiltered(ctx)
	if err != nil {
		return err
	}
	if written == "" {
		return nil
	}
	if out != "" {
		if err := os.Rename(written, out); err != nil {
			return errors.ExportError(err)
		}
		written = out
	}
	fmt.Fprintln(w, written)
	return nil
}

func newInsightsCmd() *cobra.Command {
	var req app.InsightsRequest

	cmd := &cobra.Command{
		Use:   "insights FILE",
		Short: "Show the top-N groups and z-score outliers",
		Long: `Group rows by --group, rank groups by the aggregated --value and list rows whose
--value lies more than --z population standard deviations from the mean.

Example: gobi insights sales.csv --group region --value revenue --n 5 --agg mean`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsights(cmd.Context(), cmd.OutOrStdout(), args[0], req)
		},
	}

	cmd.Flags().StringVar(&req.Group, "group", "", "Column to group by")
	cmd.Flags().StringVar(&req.Value, "value", "", "Numeric column to aggregate and scan for outliers")
	cmd.Flags().IntVar(&req.N, "n", app.DefaultTopN, "Number of groups to show")
	cmd.Flags().StringVar(&req.Aggregation, "agg", string(stats.AggSum), "Aggregation: sum|mean|count|median")
	cmd.Flags().Float64Var(&req.Z, "z", analysis.DefaultOutlierZ, "Outlier z-score threshold")
	return cmd
}

func runInsights(ctx context.Context, w io.Writer, path string, req app.InsightsRequest) error {
	if _, err := stats.ParseAggregation(req.Aggregation); err != nil {
		return errors.InvalidInput(err.Error())
	}
	explorer, err := load(ctx, path, os.TempDir())
	if err != nil {
		return err
	}

	res := explorer.Insights(req)
	if err := warn(res.Status); err != nil {
		return err
	}
	fmt.Fprintln(w, res.Message)

	fmt.Fprintf(w, "\nTop %d groups (%s of %s by %s)\n", req.N, res.TopN.Aggregation, res.TopN.ValueColumn, res.TopN.GroupColumn)
	for i, row := range res.TopN.Rows {
		fmt.Fprintf(w, "%2d. %-20s %s\n", i+1, row.Key, row.Value.Format(4))
	}

	fmt.Fprintf(w, "\nPotential outliers: %d\n", res.Outliers.NumRows())
	if res.Outliers.NumRows() > 0 {
		fmt.Fprintln(w, strings.Join(res.Outliers.ColumnNames(), "\t"))
		for _, record := range res.Outliers.Records()[1:] {
			fmt.Fprintln(w, strings.Join(record, "\t"))
		}
	}
	return nil
}

func newChartCmd() *cobra.Command {
	var (
		kind          string
		spec          chart.Spec
		agg           string
		style         string
		out           string
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "chart FILE",
		Short: "Build a chart as Plotly JSON or PNG",
		Long: `Build a distribution, category bar, correlation heatmap or time series chart.
The output format follows the --out extension: .json writes the Plotly figure, .png renders it.

Example: gobi chart sales.csv --kind "Category Bar" --category region --value revenue --agg mean --out bar.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := chart.ParseKind(kind)
			if err != nil {
				return errors.InvalidInput(err.Error())
			}
			a, err := stats.ParseAggregation(agg)
			if err != nil {
				return errors.InvalidInput(err.Error())
			}
			spec.Kind = k
			spec.Aggregation = a
			spec.Style = chart.DistributionStyle(style)
			return runChart(cmd.Context(), cmd.OutOrStdout(), args[0], spec, out, width, height)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(chart.KindDistribution), "Chart kind or label")
	cmd.Flags().StringVar(&spec.Column, "column", "", "Numeric column for distribution charts")
	cmd.Flags().StringVar(&style, "style", string(chart.StyleHistogram), "Distribution style: hist|box")
	cmd.Flags().StringVar(&spec.Category, "category", "", "Category column for bar charts")
	cmd.Flags().StringVar(&spec.Value, "value", "", "Numeric value column for bar and time series charts")
	cmd.Flags().StringVar(&spec.DateColumn, "date", "", "Date column for time series charts")
	cmd.Flags().StringVar(&agg, "agg", string(stats.AggSum), "Aggregation: sum|mean|count|median")
	cmd.Flags().StringVar(&out, "out", "chart.json", "Output file (.json or .png)")
	cmd.Flags().IntVar(&width, "width", charts.DefaultPNGWidth, "PNG width in pixels")
	cmd.Flags().IntVar(&height, "height", charts.DefaultPNGHeight, "PNG height in pixels")
	return cmd
}

func runChart(ctx context.Context, w io.Writer, path string, spec chart.Spec, out string, width, height int) error {
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".json" && ext != ".png" {
		return errors.UnsupportedFormat(fmt.Sprintf("unsupported chart output %q, use .json or .png", out))
	}
	explorer, err := load(ctx, path, os.TempDir())
	if err != nil {
		return err
	}

	res := explorer.Plot(spec)
	if err := warn(res.Status); err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "failed to create chart output")
	}
	defer f.Close()

	if ext == ".png" {
		err = charts.RenderPNG(f, res.Figure, width, height)
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		err = enc.Encode(res.Figure)
	}
	if err != nil {
		os.Remove(out)
		return err
	}
	fmt.Fprintln(w, res.Message)
	fmt.Fprintln(w, out)
	return nil
}

func newSampleCmd() *cobra.Command {
	config := testkit.DefaultSalesConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a generated sales dataset",
		Long: `Write deterministic sales data (orders with region, product, channel, units and revenue)
as CSV or XLSX depending on the --out extension.

Example: gobi sample --rows 1000 --seed 7 --out sales.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd.OutOrStdout(), config, out)
		},
	}

	cmd.Flags().IntVar(&config.Rows, "rows", config.Rows, "Number of order lines")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed for deterministic output")
	cmd.Flags().Float64Var(&config.MissingRate, "missing-rate", config.MissingRate, "Share of cells left empty")
	cmd.Flags().Float64Var(&config.OutlierRate, "outlier-rate", config.OutlierRate, "Share of rows with an inflated revenue")
	cmd.Flags().StringVar(&out, "out", "sales.csv", "Output file (.csv or .xlsx)")
	return cmd
}

func runSample(w io.Writer, config testkit.SalesGeneratorConfig, out string) error {
	records := testkit.NewSalesDataGenerator(config).Records()

	var err error
	switch strings.ToLower(filepath.Ext(out)) {
	case ".csv":
		err = testkit.WriteCSV(out, records)
	case ".xlsx":
		err = testkit.WriteXLSX(out, records)
	default:
		return errors.UnsupportedFormat(fmt.Sprintf("unsupported sample output %q, use .csv or .xlsx", out))
	}
	if err != nil {
		return errors.Wrap(err, "failed to write sample")
	}
	fmt.Fprintf(w, "wrote %d rows to %s\n", len(records)-1, out)
	return nil
}
