package api

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"gobi/adapters/excel"
	"gobi/app"
	"gobi/domain/chart"
	"gobi/internal/charts"
	"gobi/internal/errors"
)

func (h *Handler) uploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	file, header, err := r.FormFile("dataset")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			render.Render(w, r, &ErrResponse{
				Err:            err,
				HTTPStatusCode: http.StatusRequestEntityTooLarge,
				AppCode:        errors.CodeInvalidInput,
				ErrorText:      fmt.Sprintf("File exceeds the %dMB limit", h.maxUpload>>20),
			})
			return
		}
		render.Render(w, r, ErrFromAppError(errors.New(errors.CodeLoadError, excel.MsgNoFile)))
		return
	}
	defer file.Close()

	rows, _ := strconv.Atoi(r.FormValue("preview_rows"))
	res, err := h.explorer.Upload(r.Context(), header.Filename, file, rows)
	if err != nil {
		render.Render(w, r, ErrFromAppError(err))
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, res)
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	info := h.explorer.Info()
	if info == nil {
		render.JSON(w, r, app.Status{Message: app.MsgNoDataTab})
		return
	}
	render.JSON(w, r, info)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("n"))
	if err != nil {
		n = app.DefaultExplorerConfig().PreviewRows
	}
	preview := h.explorer.Preview(n)
	if preview == nil {
		render.JSON(w, r, app.Status{Message: app.MsgNoDataTab})
		return
	}
	render.JSON(w, r, preview)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.explorer.Statistics())
}

func (h *Handler) columns(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.explorer.Columns())
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	column := chi.URLParam(r, "column")
	render.JSON(w, r, map[string]interface{}{"column": column, "choices": h.explorer.Categories(column)})
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) {
	var req app.FilterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	render.JSON(w, r, h.explorer.ApplyFilter(req))
}

// exportFiltered streams the filtered view as CSV; 204 when there are no rows
func (h *Handler) exportFiltered(w http.ResponseWriter, r *http.Request) {
	path, err := h.explorer.DownloadFiltered(r.Context())
	if err != nil {
		render.Render(w, r, ErrFromAppError(err))
		return
	}
	if path == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		render.Render(w, r, ErrFromAppError(errors.ExportError(err)))
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeContent(w, r, filepath.Base(path), time.Time{}, f)
}

// chartRequest is a chart spec; Format "png" renders an image instead of the figure JSON
type chartRequest struct {
	chart.Spec
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if kind, err := chart.ParseKind(string(req.Kind)); err == nil {
		req.Kind = kind
	}

	if req.Format != "png" && r.URL.Query().Get("format") != "png" {
		render.JSON(w, r, h.explorer.Plot(req.Spec))
		return
	}

	if req.Width <= 0 {
		req.Width = charts.DefaultPNGWidth
	}
	if req.Height <= 0 {
		req.Height = charts.DefaultPNGHeight
	}
	var buf bytes.Buffer
	if err := h.explorer.PlotPNG(req.Spec, &buf, req.Width, req.Height); err != nil {
		render.Render(w, r, ErrFromAppError(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	var req app.InsightsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	render.JSON(w, r, h.explorer.Insights(req))
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	res := h.explorer.Report()
	if r.URL.Query().Get("format") == "html" && res.OK {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(res.HTML))
		return
	}
	render.JSON(w, r, res)
}
