package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"playstore-dashboard/utils"
)

// requestLogger logs one line per request through the application logger.
func requestLogger(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("[http] %s %s %d %dB %s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start).Round(time.Microsecond))
		})
	}
}
