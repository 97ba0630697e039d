package api

import (
	"log/slog"
	"net/http"
	"time"

	"marketplace/infrastructure"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs method, path, status and latency for every request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("latency", time.Since(start)),
		)
	})
}

// Recover turns panics into a generic 500 so no stack trace ever
// reaches a client.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				slog.Error("panic while handling request",
					slog.String("path", r.URL.Path),
					slog.Any("panic", p),
				)
				infrastructure.WriteJSON(w, http.StatusInternalServerError,
					map[string]string{"message": "something went wrong!"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
