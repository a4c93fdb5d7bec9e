package payment_payme_post

import (
	"bytes"
	"encoding/json"
	"io"
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
	handlerLog := log.With(logger.NewField("handler", "payment_payme_post"))

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP отвечает 200 и на ошибки: JSON-RPC передает их в поле error.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp payment.PaymeResponse

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.With(logger.NewField("error", err)).Warn("payme callback: unreadable body")
		resp = payment.PaymeParseError(nil)
	} else if req, err := decodeRequest(body); err != nil {
		h.log.With(logger.NewField("error", err)).Warn("payme callback: malformed body")
		resp = payment.PaymeParseError(requestID(body))
	} else {
		login, password, ok := r.BasicAuth()
		resp = h.service.HandlePayme(r.Context(), payment.PaymeCredentials{
			Login:    login,
			Password: password,
			Present:  ok,
		}, req)
	}

	if err := httpjson.Write(w, http.StatusOK, resp); err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func decodeRequest(body []byte) (payment.PaymeRequest, error) {
	var req payment.PaymeRequest
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return payment.PaymeRequest{}, err
	}
	return req, nil
}

// requestID достает id из тела, которое не прошло строгий разбор.
func requestID(body []byte) json.RawMessage {
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.ID
}
