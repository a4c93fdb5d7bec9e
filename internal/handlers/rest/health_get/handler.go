package health_get

import (
	"net/http"
	"sync/atomic"

	"relay/internal/pkg/httpjson"
	"relay/pkg/logger"
)

const serviceName = "telegram-bot-webhook"

type response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Handler struct {
	log            handlerLogger
	isShuttingDown *atomic.Bool
}

func New(log handlerLogger, isShuttingDown *atomic.Bool) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:            handlerLog,
		isShuttingDown: isShuttingDown,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, response{Status: "healthy", Service: serviceName}
	if h.isShuttingDown.Load() {
		status, body = http.StatusServiceUnavailable, response{Status: "shutting_down", Service: serviceName}
	}

	if err := httpjson.Write(w, status, body); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
