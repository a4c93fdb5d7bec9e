package payment

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"relay/pkg/logger"
)

const (
	ClickActionPrepare  = 0
	ClickActionComplete = 1
)

// Коды ответа Click. 0 - успех, отрицательные - отказ.
const (
	ClickCodeSuccess       = 0
	ClickCodeSignFailed    = -1
	ClickCodeAlreadyPaid   = -4
	ClickCodeOrderNotFound = -5
	ClickCodeUpdateFailed  = -7
	ClickCodeBadRequest    = -8
)

const (
	clickNoteSuccess       = "Success"
	clickNoteSignFailed    = "SIGN CHECK FAILED!"
	clickNoteAlreadyPaid   = "Already paid"
	clickNoteOrderNotFound = "Order not found"
	clickNoteUpdateFailed  = "Failed to update user"
	clickNoteBadRequest    = "Error in request from click"
)

// ClickRequest - поля формы обратного вызова Click.
type ClickRequest struct {
	ClickTransID      int64
	ServiceID         int64
	ClickPaydocID     *int64
	MerchantTransID   string
	MerchantPrepareID *int64
	Amount            decimal.Decimal
	// RawAmount - сумма в том виде, в каком ее прислал Click; участвует в подписи.
	RawAmount         string
	Action            int
	Error             int
	ErrorNote         string
	SignTime          string
	SignString        string
}

// ClickResponse сериализуется ровно в два поля, как требует Click.
type ClickResponse struct {
	Error     int    `json:"error"`
	ErrorNote string `json:"error_note"`
}

func (r ClickRequest) Validate() error {
	if r.ClickTransID <= 0 {
		return ErrMissingTransactionID
	}
	if strings.TrimSpace(r.MerchantTransID) == "" {
		return ErrMissingOrderID
	}
	if r.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if r.Action == ClickActionComplete && r.MerchantPrepareID == nil {
		return ErrMissingPrepareID
	}
	if r.SignString == "" {
		return ErrMissingSignature
	}
	return nil
}

// ClickBadRequest - ответ на форму, которую не удалось разобрать.
func ClickBadRequest() ClickResponse {
	return recordClick(ClickResponse{Error: ClickCodeBadRequest, ErrorNote: clickNoteBadRequest})
}

// HandleClick обрабатывает prepare и complete. Заказ меняется только на complete без ошибки
// и только если он еще ждет оплаты; повтор получает отказ "Already paid".
func (s *Service) HandleClick(ctx context.Context, req ClickRequest) ClickResponse {
	log := s.log.With(
		logger.NewField("provider", providerClick),
		logger.NewField("click_trans_id", req.ClickTransID),
		logger.NewField("order_id", req.MerchantTransID),
		logger.NewField("action", req.Action),
	)

	if err := req.Validate(); err != nil {
		log.Warn("click callback rejected", logger.NewField("error", err))
		return ClickBadRequest()
	}
	if req.ServiceID != s.click.ServiceID {
		log.Warn("click callback rejected: unknown service", logger.NewField("service_id", req.ServiceID))
		return recordClick(ClickResponse{Error: ClickCodeSignFailed, ErrorNote: clickNoteSignFailed})
	}
	if !s.validClickSignature(req) {
		log.Warn("click callback rejected: signature mismatch")
		return recordClick(ClickResponse{Error: ClickCodeSignFailed, ErrorNote: clickNoteSignFailed})
	}

	if req.Error < 0 {
		log.Info("click reported payment failure",
			logger.NewField("error_code", req.Error),
			logger.NewField("error_note", req.ErrorNote),
		)
		return recordClick(ClickResponse{Error: req.Error, ErrorNote: req.ErrorNote})
	}

	if req.Action != ClickActionComplete || req.Error != 0 {
		return recordClick(ClickResponse{Error: ClickCodeSuccess, ErrorNote: clickNoteSuccess})
	}

	result, err := s.markPaid(ctx, req.MerchantTransID)
	switch {
	case err != nil:
		log.Error("click payment not applied", logger.NewField("error", err))
		return recordClick(ClickResponse{Error: ClickCodeUpdateFailed, ErrorNote: clickNoteUpdateFailed})
	case !result.Found:
		return recordClick(ClickResponse{Error: ClickCodeOrderNotFound, ErrorNote: clickNoteOrderNotFound})
	case !result.Applied:
		return recordClick(ClickResponse{Error: ClickCodeAlreadyPaid, ErrorNote: clickNoteAlreadyPaid})
	}

	log.Info("click payment applied")
	s.notifyPaid(ctx, log, req.MerchantTransID)
	return recordClick(ClickResponse{Error: ClickCodeSuccess, ErrorNote: clickNoteSuccess})
}

// ClickSignature считает md5 от полей запроса и секретного ключа в порядке, заданном Click.
// merchant_prepare_id участвует только в complete.
func ClickSignature(req ClickRequest, secretKey string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(req.ClickTransID, 10))
	b.WriteString(strconv.FormatInt(req.ServiceID, 10))
	b.WriteString(secretKey)
	b.WriteString(req.MerchantTransID)
	if req.Action == ClickActionComplete && req.MerchantPrepareID != nil {
		b.WriteString(strconv.FormatInt(*req.MerchantPrepareID, 10))
	}
	b.WriteString(req.RawAmount)
	b.WriteString(strconv.Itoa(req.Action))
	b.WriteString(req.SignTime)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func (s *Service) validClickSignature(req ClickRequest) bool {
	expected := ClickSignature(req, s.click.SecretKey)
	got := strings.ToLower(strings.TrimSpace(req.SignString))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

func recordClick(resp ClickResponse) ClickResponse {
	paymentCallbacksTotal.WithLabelValues(providerClick, strconv.Itoa(resp.Error)).Inc()
	return resp
}
