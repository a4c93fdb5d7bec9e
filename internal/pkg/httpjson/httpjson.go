// Package httpjson - общие мелочи HTTP-слоя: запись JSON-ответов и имя маршрута для метрик.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type DetailResponse struct {
	Detail string `json:"detail"`
}

func Write(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func WriteDetail(w http.ResponseWriter, status int, detail string) error {
	return Write(w, status, DetailResponse{Detail: detail})
}

// RouteTemplate возвращает шаблон mux-маршрута, чтобы не раздувать кардинальность меток.
// Вне mux возвращается сырой путь.
func RouteTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}
