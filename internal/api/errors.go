package api

import (
	"net/http"

	"github.com/go-chi/render"

	"gobi/internal/errors"
)

// ErrResponse implements the render.Renderer interface for API errors
type ErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	AppCode        string `json:"code"`
	ErrorText      string `json:"error"`
}

// Render implements the render.Renderer interface
func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// ErrFromAppError picks the HTTP status for err's code
func ErrFromAppError(err error) *ErrResponse {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeUnsupportedFormat, errors.CodeLoadError, errors.CodeValidationError, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	return &ErrResponse{Err: err, HTTPStatusCode: status, AppCode: code, ErrorText: err.Error()}
}

// ErrInvalidRequest wraps a request decoding failure
func ErrInvalidRequest(err error) *ErrResponse {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		AppCode:        errors.CodeInvalidInput,
		ErrorText:      err.Error(),
	}
}
