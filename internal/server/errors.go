package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bjaus/report"
	"github.com/bjaus/report/internal/logging"
)

var (
	errUnsupportedMediaType = errors.New("unsupported media type")
	errBodyTooLarge         = errors.New("request body too large")
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorCodes maps errors to machine-readable codes, most specific first.
var errorCodes = []struct {
	err  error
	code string
}{
	{report.ErrMissingValue, "missing_value"},
	{report.ErrMissingColumnIdentifier, "missing_column_identifier"},
	{report.ErrInvalidColumnDescriptor, "invalid_column_descriptor"},
	{report.ErrInvalidDataShape, "invalid_data_shape"},
	{report.ErrInvalidSortDirective, "invalid_sort_directive"},
	{report.ErrEmptyColumnSet, "empty_column_set"},
	{report.ErrInvalidConfig, "invalid_config"},
	{report.ErrInvalidTemplate, "invalid_template"},
	{report.ErrUnsupportedOutput, "unsupported_output"},
	{errUnsupportedMediaType, "unsupported_media_type"},
	{errBodyTooLarge, "body_too_large"},
}

func errorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, report.ErrUnsupportedOutput):
		return http.StatusNotFound
	case errors.Is(err, errUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case report.IsConfigError(err), errors.Is(err, report.ErrInvalidTemplate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes it as a JSON error response.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errorCode(err)

	logger := logging.WithFields(r.Context(), "path", r.URL.Path, "status", status, "code", code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("request rejected", "error", err)
	}

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Code: code})
}
