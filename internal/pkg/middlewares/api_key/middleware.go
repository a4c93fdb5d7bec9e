package api_key

import (
	"crypto/subtle"
	"net/http"

	"relay/internal/pkg/httpjson"
	"relay/pkg/logger"
)

const Header = "X-API-Key"

// Middleware пропускает запрос дальше только при совпадении X-API-Key с секретом.
// Пустой секрет не совпадает ни с чем.
func Middleware(log handlerLogger, secret string) func(http.Handler) http.Handler {
	expected := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get(Header))
			if len(expected) == 0 || subtle.ConstantTimeCompare(provided, expected) != 1 {
				log.Warn("unauthorized request",
					logger.NewField("remote_addr", r.RemoteAddr),
					logger.NewField("path", r.URL.Path),
					logger.NewField("key_present", len(provided) > 0),
				)
				if err := httpjson.WriteDetail(w, http.StatusUnauthorized, "Unauthorized"); err != nil {
					log.Error("encode JSON response", logger.NewField("error", err))
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
