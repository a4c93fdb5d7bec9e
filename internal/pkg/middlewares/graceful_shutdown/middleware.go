package graceful_shutdown

import (
	"net/http"
	"sync/atomic"

	"relay/internal/pkg/httpjson"
)

// Middleware отвечает 503 на новые запросы после начала остановки.
// Запросы, которые уже выполняются, дорабатывают штатно.
func Middleware(isShuttingDown *atomic.Bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() {
				_ = httpjson.WriteDetail(w, http.StatusServiceUnavailable, "Service is shutting down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
