package send_message_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"relay/internal/pkg/httpjson"
	"relay/pkg/logger"
)

const maxBodyBytes = 1 << 20

type request struct {
	TelegramUserID *int64  `json:"telegram_user_id"`
	Message        *string `json:"message"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "send_message_post"))

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
	if req.TelegramUserID == nil {
		h.writeDetail(w, http.StatusUnprocessableEntity, "telegram_user_id is required")
		return
	}
	if req.Message == nil || *req.Message == "" {
		h.writeDetail(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	outcome := h.service.SendDirect(r.Context(), *req.TelegramUserID, *req.Message)
	if !outcome.Success {
		h.log.With(
			logger.NewField("telegram_user_id", *req.TelegramUserID),
			logger.NewField("reason", outcome.Reason.String()),
		).Error("failed to send message")
		h.writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Failed to send message: %s", outcome.Message))
		return
	}

	err := httpjson.Write(w, http.StatusOK, response{Success: true, Message: outcome.Message})
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
