// Package api exposes the explorer operations as a versioned JSON API.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gobi/app"
	"gobi/internal"
	"gobi/internal/metrics"
)

// Handler serves the /v1 API over one explorer session
type Handler struct {
	explorer  *app.ExplorerService
	metrics   *metrics.Registry
	maxUpload int64
	logger    *internal.Logger
}

// NewHandler creates the API handler. A nil registry disables /metrics.
func NewHandler(explorer *app.ExplorerService, reg *metrics.Registry, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = 50 << 20
	}
	return &Handler{
		explorer:  explorer,
		metrics:   reg,
		maxUpload: maxUpload,
		logger:    internal.DefaultLogger.WithComponent("API"),
	}
}

// Routes builds the chi router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Post("/datasets", h.uploadDataset)
		r.Get("/info", h.info)
		r.Get("/preview", h.preview)
		r.Get("/statistics", h.statistics)
		r.Get("/columns", h.columns)
		r.Get("/columns/{column}/categories", h.categories)
		r.Post("/filter", h.filter)
		r.Get("/filter/export", h.exportFiltered)
		r.Post("/charts", h.chart)
		r.Post("/insights", h.insights)
		r.Get("/report", h.report)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"session": h.explorer.Session().ID().String(),
	})
}
