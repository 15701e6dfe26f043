package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nao1215/calcsite/internal/calculator"
	"github.com/nao1215/calcsite/internal/history"
	"github.com/nao1215/calcsite/internal/rates"
)

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v before writing any header. A value that cannot be
// encoded is answered with a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"` + http.StatusText(status) + `"}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n')) //nolint:errcheck // headers are already sent
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, calculator.ErrUnknownCalculator):
		return http.StatusNotFound
	case errors.Is(err, calculator.ErrMissingInput),
		errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, rates.ErrUnknownCurrency),
		errors.Is(err, history.ErrInvalidEntry):
		return http.StatusBadRequest
	case errors.Is(err, calculator.ErrRateUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError writes err with the status statusOf picks. Internal
// errors are logged and answered with a generic message.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, err.Error())
}
