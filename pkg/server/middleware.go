package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/observability"
)

// requestLogger emits one structured log line per request and feeds the
// HTTP observability hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration)
	})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status and writes the user-facing
// message. The machine-readable code rides along for API clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

// statusForError picks the HTTP status for an error code. Not-found
// codes map to 404, render and storage failures to 500, and every other
// coded error is a client mistake worth a 400. Uncoded errors are
// internal by definition.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound,
		errors.ErrCodeDocumentNotFound,
		errors.ErrCodePresetNotFound,
		errors.ErrCodeFontNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRender,
		errors.ErrCodeConvert,
		errors.ErrCodeStorage,
		errors.ErrCodeInternal:
		return http.StatusInternalServerError
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
