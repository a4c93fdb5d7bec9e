package root_get

import (
	"net/http"

	"relay/internal/pkg/httpjson"
	"relay/pkg/logger"
)

const (
	serviceName = "Telegram Bot Webhook Server"
	version     = "1.0.0"
)

type endpoints struct {
	OrderUpdate string `json:"order_update"`
	Health      string `json:"health"`
}

type response struct {
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Endpoints endpoints `json:"endpoints"`
}

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	handlerLog := log.With()

	return &Handler{
		log: handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := response{
		Service: serviceName,
		Version: version,
		Endpoints: endpoints{
			OrderUpdate: "/api/order-update",
			Health:      "/health",
		},
	}

	if err := httpjson.Write(w, http.StatusOK, res); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
