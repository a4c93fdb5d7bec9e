package rate_limiter

import (
	"net/http"
	"strconv"

	"relay/internal/pkg/httpjson"
	"relay/pkg/logger"
)

type rejectResponse struct {
	Detail string `json:"detail"`
}

// Middleware отклоняет запрос с 429, если limiter не выдал токен.
// limit попадает в заголовок X-RateLimit-Limit.
func Middleware(log handlerLogger, limit int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := httpjson.RouteTemplate(r)
			rateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			log.Warn("rate limit exceeded",
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("Retry-After", "1")
			err := httpjson.Write(w, http.StatusTooManyRequests, rejectResponse{
				Detail: "Rate limit exceeded. Try again later.",
			})
			if err != nil {
				log.Error("failed to write rate limit response",
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				)
			}
		})
	}
}
