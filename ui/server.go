// Package ui serves the browser dashboard and its JSON endpoints.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"gobi/app"
	"gobi/domain/chart"
	"gobi/domain/stats"
	"gobi/internal"
	"gobi/internal/metrics"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// Options configures the dashboard server
type Options struct {
	Mode           string
	MaxUploadBytes int64
	PreviewRows    int
}

// Server is the dashboard web server
type Server struct {
	router    *gin.Engine
	explorer  *app.ExplorerService
	metrics   *metrics.Registry
	templates *template.Template
	options   Options
	logger    *internal.Logger
}

// NewServer creates the dashboard server. A nil registry disables /metrics.
func NewServer(explorer *app.ExplorerService, reg *metrics.Registry, options Options) (*Server, error) {
	if options.Mode != "" {
		gin.SetMode(options.Mode)
	}
	if options.MaxUploadBytes <= 0 {
		options.MaxUploadBytes = 50 << 20
	}

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.Default()
	router.MaxMultipartMemory = options.MaxUploadBytes

	s := &Server{
		router:    router,
		explorer:  explorer,
		metrics:   reg,
		templates: templates,
		options:   options,
		logger:    internal.DefaultLogger.WithComponent("UI"),
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := s.router.Group("/api")
	api.POST("/upload", s.handleUpload)
	api.GET("/info", s.handleInfo)
	api.GET("/preview", s.handlePreview)
	api.GET("/statistics", s.handleStatistics)
	api.GET("/columns", s.handleColumns)
	api.GET("/categories", s.handleCategories)
	api.POST("/filter", s.handleFilter)
	api.GET("/filter/download", s.handleDownload)
	api.POST("/plot", s.handlePlot)
	api.POST("/plot.png", s.handlePlotPNG)
	api.POST("/insights", s.handleInsights)
	api.GET("/report", s.handleReport)
	api.GET("/report.html", s.handleReportHTML)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("starting dashboard on http://%s", addr)
	return s.router.Run(addr)
}

// indexData feeds the dashboard template
type indexData struct {
	Kinds        []chartKind
	Aggregations []stats.Aggregation
	PreviewRows  int
	MinTopN      int
	MaxTopN      int
	DefaultTopN  int
	MaxUploadMB  int64
}

type chartKind struct {
	ID    chart.Kind
	Label string
}

func (s *Server) handleIndex(c *gin.Context) {
	data := indexData{
		Aggregations: stats.Aggregations,
		PreviewRows:  s.options.PreviewRows,
		MinTopN:      app.MinTopN,
		MaxTopN:      app.MaxTopN,
		DefaultTopN:  app.DefaultTopN,
		MaxUploadMB:  s.options.MaxUploadBytes >> 20,
	}
	if data.PreviewRows <= 0 {
		data.PreviewRows = 5
	}
	for _, k := range chart.Kinds {
		data.Kinds = append(data.Kinds, chartKind{ID: k.Kind, Label: k.Label})
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", data); err != nil {
		s.logger.Error("template error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed"})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{"status": "ok", "session": s.explorer.Session().ID().String()}
	if d := s.explorer.Session().Current(); d != nil {
		body["dataset"] = d.Name()
		body["rows"] = d.NumRows()
	}
	c.JSON(http.StatusOK, body)
}
