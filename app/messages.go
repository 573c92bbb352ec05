package app

// Dashboard status messages
const (
	MsgLoaded          = "✅ Data loaded successfully."
	MsgStatsComputed   = "✅ Statistics computed."
	MsgNoDataTab       = "⚠️ Please upload data first in the Data Upload tab."
	MsgNoData          = "⚠️ Please upload data first."
	MsgNoDataInsights  = "⚠️ Please upload/filter data first."
	MsgSelectColumn    = "⚠️ Please select a column."
	MsgFilteredRows    = "Filtered rows: %d (out of %d)"
	MsgNothingToExport = "⚠️ No filtered rows to download."

	MsgSelectNumeric      = "⚠️ Select a numeric column."
	MsgPlotFailed         = "⚠️ Could not create plot."
	MsgPlotCreated        = "✅ %s plot created for '%s'."
	MsgSelectCategoryPair = "⚠️ Select category and value columns."
	MsgBarFailed          = "⚠️ Could not create bar plot."
	MsgBarCreated         = "✅ Bar chart created: %s of %s by %s."
	MsgHeatmapFailed      = "⚠️ Need at least 2 numeric columns for a heatmap."
	MsgHeatmapCreated     = "✅ Correlation heatmap created."
	MsgSelectDatePair     = "⚠️ Select date and value columns."
	MsgTimeSeriesFailed   = "⚠️ Could not create time series plot. Check date column."
	MsgTimeSeriesCreated  = "✅ Time series of %s %s over time."
	MsgUnsupportedPlot    = "⚠️ Unsupported visualization type."
	MsgUnknownAggregation = "⚠️ Unknown aggregation '%s'. Choose sum, mean, count or median."

	MsgNoInsights = "⚠️ No insights available. Check column choices."
	MsgInsights   = "✅ Insights based on '%s' and '%s'."

	MsgReportCreated = "✅ Report generated."
)

// warningPrefix marks soft failures in status messages
const warningPrefix = "⚠️ "
