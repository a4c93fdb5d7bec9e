package payment_click_post

import (
	"net/http"

	"relay/internal/pkg/httpjson"
	"relay/internal/service/payment"
	"relay/pkg/logger"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(logger.NewField("handler", "payment_click_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP всегда отвечает 200: результат обработки Click читает из поля error.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var resp payment.ClickResponse
	if err := r.ParseForm(); err != nil {
		h.log.With(logger.NewField("error", err)).Warn("click callback: unreadable form")
		resp = payment.ClickBadRequest()
	} else if req, err := parseForm(r.PostForm); err != nil {
		h.log.With(logger.NewField("error", err)).Warn("click callback: invalid form")
		resp = payment.ClickBadRequest()
	} else {
		resp = h.service.HandleClick(r.Context(), req)
	}

	if err := httpjson.Write(w, http.StatusOK, resp); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
