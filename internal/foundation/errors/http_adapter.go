package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HTTPErrorAdapter writes classified errors as JSON responses.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter. A nil logger uses slog.Default.
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// HTTPErrorResponse is the JSON error payload.
type HTTPErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// StatusCodeFor maps an error's category to an HTTP status. Unknown errors map to 500.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch GetCategory(err) {
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryValidation, CategoryConfig:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as JSON with the mapped status code.
func (a *HTTPErrorAdapter) WriteError(w http.ResponseWriter, err error) {
	status := a.StatusCodeFor(err)
	resp := HTTPErrorResponse{Error: err.Error()}
	if c, ok := AsClassified(err); ok {
		resp.Error = c.Message()
		resp.Code = string(c.Category())
		if len(c.Context()) > 0 {
			resp.Details = c.Context()
		}
	}
	if status >= http.StatusInternalServerError {
		a.logger.Error("HTTP request failed", "status", status, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
