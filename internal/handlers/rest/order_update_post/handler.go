package order_update_post

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"relay/internal/entities"
	"relay/internal/pkg/httpjson"
	"relay/pkg/logger"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "order_update_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("Invalid request body: %s", err))
		return
	}
	if err := req.validate(); err != nil {
		h.writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != nil && *req.Timestamp != "" {
		// формат уже проверен в validate
		timestamp, _ = parseTimestamp(*req.Timestamp)
	}

	log := h.log.With(
		logger.NewField("order_id", *req.OrderID),
		logger.NewField("telegram_user_id", *req.TelegramUserID),
		logger.NewField("status", *req.Status),
		logger.NewField("timestamp", timestamp.Format(time.RFC3339)),
	)
	log.Info("order update received")

	outcome := h.service.Notify(r.Context(), entities.NotificationRequest{
		TelegramUserID: *req.TelegramUserID,
		OrderID:        *req.OrderID,
		Status:         entities.OrderStatusType(*req.Status),
		ProductName:    req.ProductName,
	})
	if !outcome.Success {
		log.Error("failed to send notification",
			logger.NewField("reason", outcome.Reason.String()),
			logger.NewField("message", outcome.Message),
		)
		h.writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Failed to send notification: %s", outcome.Message))
		return
	}

	err := httpjson.Write(w, http.StatusOK, response{
		Success:        true,
		Message:        outcome.Message,
		OrderID:        *req.OrderID,
		TelegramUserID: *req.TelegramUserID,
	})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) writeDetail(w http.ResponseWriter, status int, detail string) {
	if err := httpjson.WriteDetail(w, status, detail); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
