package middleware

import (
	"net/http"
	"time"

	"finance-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one line per request and stores a logger tagged with
// the request id in the request context.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := log.With(logger.FieldRequestID, chimw.GetReqID(r.Context()))
			next.ServeHTTP(ww, r.WithContext(logger.IntoContext(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				logger.FieldMethod, r.Method,
				logger.FieldPath, r.URL.Path,
				logger.FieldStatus, status,
				logger.FieldBytes, ww.BytesWritten(),
				logger.FieldDuration, time.Since(start).Milliseconds(),
			}
			switch {
			case status >= http.StatusInternalServerError:
				reqLog.Error("http: request", args...)
			case status >= http.StatusBadRequest:
				reqLog.Warn("http: request", args...)
			default:
				reqLog.Info("http: request", args...)
			}
		})
	}
}
