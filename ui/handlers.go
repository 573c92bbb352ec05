package ui

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"gobi/adapters/excel"
	"gobi/app"
	"gobi/domain/chart"
	"gobi/internal/charts"
	"gobi/internal/errors"
)

// writeError maps an AppError code onto an HTTP status and replies {"error", "code"}
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeUnsupportedFormat, errors.CodeLoadError, errors.CodeValidationError, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.options.MaxUploadBytes)

	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.logger.Warn("upload rejected: larger than %d bytes", s.options.MaxUploadBytes)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("File exceeds the %dMB limit", s.options.MaxUploadBytes>>20),
				"code":  errors.CodeInvalidInput,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": excel.MsgNoFile, "code": errors.CodeLoadError})
		return
	}
	defer file.Close()

	rows := s.options.PreviewRows
	if v, err := strconv.Atoi(c.PostForm("preview_rows")); err == nil {
		rows = v
	}

	res, err := s.explorer.Upload(c.Request.Context(), header.Filename, file, rows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.GetCode(err), "message": res.Message})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleInfo(c *gin.Context) {
	info := s.explorer.Info()
	if info == nil {
		c.JSON(http.StatusOK, app.Status{Message: app.MsgNoDataTab})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handlePreview(c *gin.Context) {
	preview := s.explorer.Preview(queryInt(c, "n", s.options.PreviewRows))
	if preview == nil {
		c.JSON(http.StatusOK, app.Status{Message: app.MsgNoDataTab})
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (s *Server) handleStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.explorer.Statistics())
}

func (s *Server) handleColumns(c *gin.Context) {
	c.JSON(http.StatusOK, s.explorer.Columns())
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"column": c.Query("column"), "choices": s.explorer.Categories(c.Query("column"))})
}

func (s *Server) handleFilter(c *gin.Context) {
	var req app.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidInput(err.Error()))
		return
	}
	c.JSON(http.StatusOK, s.explorer.ApplyFilter(req))
}

func (s *Server) handleDownload(c *gin.Context) {
	path, err := s.explorer.DownloadFiltered(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if path == "" {
		c.JSON(http.StatusOK, app.Status{Message: app.MsgNothingToExport})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// plotRequest is a chart spec plus the PNG size
type plotRequest struct {
	chart.Spec
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

func (s *Server) bindPlot(c *gin.Context) (plotRequest, bool) {
	var req plotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidInput(err.Error()))
		return req, false
	}
	if kind, err := chart.ParseKind(string(req.Kind)); err == nil {
		req.Kind = kind
	}
	return req, true
}

func (s *Server) handlePlot(c *gin.Context) {
	req, ok := s.bindPlot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.explorer.Plot(req.Spec))
}

func (s *Server) handlePlotPNG(c *gin.Context) {
	req, ok := s.bindPlot(c)
	if !ok {
		return
	}
	if req.Width <= 0 {
		req.Width = charts.DefaultPNGWidth
	}
	if req.Height <= 0 {
		req.Height = charts.DefaultPNGHeight
	}

	c.Header("Content-Type", "image/png")
	if err := s.explorer.PlotPNG(req.Spec, c.Writer, req.Width, req.Height); err != nil {
		c.Header("Content-Type", "application/json; charset=utf-8")
		writeError(c, err)
	}
}

func (s *Server) handleInsights(c *gin.Context) {
	var req app.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.InvalidInput(err.Error()))
		return
	}
	if req.N == 0 {
		req.N = app.DefaultTopN
	}
	req.N = app.ClampTopN(req.N)
	c.JSON(http.StatusOK, s.explorer.Insights(req))
}

func (s *Server) handleReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.explorer.Report())
}

func (s *Server) handleReportHTML(c *gin.Context) {
	res := s.explorer.Report()
	if !res.OK {
		c.JSON(http.StatusOK, res.Status)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(res.HTML))
}
