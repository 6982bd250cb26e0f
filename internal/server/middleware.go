package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/halvard/deckard/pkg/observability"
)

// requestLogger logs one line per request with method, path, status, and
// duration, tagged with the chi request ID.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)
			next.ServeHTTP(ww, r)
			observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
