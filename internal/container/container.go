package container

import (
	"context"
	"fmt"

	"gobi/adapters/excel"
	"gobi/app"
	"gobi/internal"
	"gobi/internal/config"
	datasetsvc "gobi/internal/dataset"
	"gobi/internal/metrics"
	"gobi/internal/session"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	Loader   *excel.Loader
	Exporter *datasetsvc.TempCSVExporter
	Metrics  *metrics.Registry // nil when metrics are disabled

	// Exploration
	Session  *session.Session
	Explorer *app.ExplorerService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.LogLevel != "" {
		internal.DefaultLogger.SetLevel(internal.ParseLogLevel(cfg.LogLevel))
	}

	c := &Container{
		Config:   cfg,
		Loader:   excel.NewLoader(),
		Exporter: datasetsvc.NewTempCSVExporter(cfg.Data.ExportDir),
		Session:  session.New(),
	}
	if cfg.Metrics.Enabled {
		c.Metrics = metrics.NewRegistry()
	}

	c.Explorer = app.NewExplorerService(c.Loader, c.Exporter, c.Session, c.Metrics, app.ExplorerConfig{
		PreviewRows: cfg.Data.PreviewRows,
		OutlierZ:    cfg.Insights.OutlierZ,
		TopN:        cfg.Insights.TopN,
	})
	return c, nil
}

// Preload loads DATA_FILE into the session when one is configured
func (c *Container) Preload(ctx context.Context) error {
	if c.Config.Data.File == "" {
		return nil
	}
	if _, err := c.Explorer.LoadFile(ctx, c.Config.Data.File); err != nil {
		return err
	}
	return nil
}

// Shutdown removes the last export of the session
func (c *Container) Shutdown(ctx context.Context) error {
	if last := c.Session.SwapExport(""); last != "" {
		return c.Exporter.Remove(last)
	}
	return nil
}
