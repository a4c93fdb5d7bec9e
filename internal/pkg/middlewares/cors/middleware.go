package cors

import (
	"net/http"
	"strconv"
	"time"
)

const (
	allowedMethods  = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"
	preflightMaxAge = 10 * time.Minute
)

// Middleware разрешает запросы с любого Origin вместе с cookies и заголовками.
// Origin возвращается как есть, потому что "*" браузер не принимает при credentials.
// Preflight запросы обрабатываются здесь и дальше не передаются, поэтому middleware
// должен оборачивать весь роутер, а не отдельные маршруты.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		header := w.Header()
		header.Add("Vary", "Origin")
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")

		if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
			next.ServeHTTP(w, r)
			return
		}

		header.Set("Access-Control-Allow-Methods", allowedMethods)
		if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
			header.Set("Access-Control-Allow-Headers", requested)
		}
		header.Set("Access-Control-Max-Age", strconv.Itoa(int(preflightMaxAge.Seconds())))
		w.WriteHeader(http.StatusOK)
	})
}
