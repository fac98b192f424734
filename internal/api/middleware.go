package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/auspexlabs/imager/pkg/errors"
	"github.com/auspexlabs/imager/pkg/pipeline"
)

// requestHeaderID is the response header carrying the request id.
const requestHeaderID = "X-Request-Id"

// requestID tags every request with a fresh uuid, echoed in the response
// headers and attached to log lines.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestHeaderID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestHeaderID, id)
		next.ServeHTTP(w, r)
	})
}

// statusWriter records the response status for request logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request with method, path, status, and
// elapsed time.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"request_id", w.Header().Get(requestHeaderID),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// recoverer converts panics into the JSON failure envelope so a rendering
// bug never tears down the connection without a response.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "path", r.URL.Path)
				writeJSON(w, http.StatusInternalServerError, pipeline.Fail(
					apperrors.New(apperrors.ErrCodeInternal, "internal error: %v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
