package payment

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"strconv"
	"strings"

	"relay/internal/entities"
	"relay/pkg/logger"
)

const (
	PaymeMethodPerformTransaction = "PerformTransaction"

	// PaymeStatePerformed - транзакция проведена.
	PaymeStatePerformed = 2
)

// Коды ошибок протокола Payme.
const (
	PaymeCodeParseError     = -32700
	PaymeCodeInvalidRequest = -32600
	PaymeCodeSystemError    = -32400
	PaymeCodeUnauthorized   = -32504
	PaymeCodeCannotPerform  = -31008
	PaymeCodeInvalidAccount = -31050
)

const (
	paymeMessageParseError    = "Parse error"
	paymeMessageMissingMethod = "Method is required"
	paymeMessageMissingTxID   = "Transaction id is required"
	paymeMessageSystemError   = "System error"
	paymeMessageUnauthorized  = "Insufficient privilege to perform this method"
	paymeMessageCannotPerform = "Unable to perform operation"
	paymeMessageOrderNotFound = "Order not found"
	paymeDataOrderIDField     = "order_id"
)

type PaymeRequest struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  PaymeParams     `json:"params"`
}

// PaymeParams покрывает параметры всех методов Payme. Конверт запроса разбирается
// строго, params - нет: состав account задается настройками кассы.
type PaymeParams struct {
	ID       string        `json:"id,omitempty"`
	Time     int64         `json:"time,omitempty"`
	Amount   int64         `json:"amount,omitempty"`
	Account  *PaymeAccount `json:"account,omitempty"`
	Reason   *int          `json:"reason,omitempty"`
	From     int64         `json:"from,omitempty"`
	To       int64         `json:"to,omitempty"`
	Password string        `json:"password,omitempty"`
}

func (p *PaymeParams) UnmarshalJSON(data []byte) error {
	type plain PaymeParams
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = PaymeParams(v)
	return nil
}

type PaymeAccount struct {
	OrderID string `json:"order_id"`
}

type PaymeResponse struct {
	ID     json.RawMessage `json:"id"`
	Result any             `json:"result,omitempty"`
	Error  *PaymeError     `json:"error,omitempty"`
}

type PaymeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

type PaymePerformResult struct {
	Transaction string `json:"transaction"`
	PerformTime int64  `json:"perform_time"`
	State       int    `json:"state"`
}

type PaymeStubResult struct {
	Success bool `json:"success"`
}

// PaymeCredentials - данные HTTP Basic авторизации запроса.
type PaymeCredentials struct {
	Login    string
	Password string
	Present  bool
}

// PaymeParseError - ответ на тело, которое не удалось разобрать как JSON-RPC.
// id может быть nil, если его не удалось прочитать.
func PaymeParseError(id json.RawMessage) PaymeResponse {
	return paymeFailure(id, PaymeCodeParseError, paymeMessageParseError, "")
}

// HandlePayme проверяет авторизацию и выполняет метод. PerformTransaction отвечает
// успехом только если заказ оплачен этим вызовом или уже был оплачен ранее.
func (s *Service) HandlePayme(ctx context.Context, creds PaymeCredentials, req PaymeRequest) PaymeResponse {
	log := s.log.With(
		logger.NewField("provider", providerPayme),
		logger.NewField("method", req.Method),
	)

	if !s.authorizedPayme(creds) {
		log.Warn("payme callback rejected: unauthorized")
		return paymeFailure(req.ID, PaymeCodeUnauthorized, paymeMessageUnauthorized, "")
	}
	if strings.TrimSpace(req.Method) == "" {
		return paymeFailure(req.ID, PaymeCodeInvalidRequest, paymeMessageMissingMethod, "")
	}

	if req.Method != PaymeMethodPerformTransaction {
		return recordPayme(PaymeResponse{ID: req.ID, Result: PaymeStubResult{Success: true}}, 0)
	}
	return s.performTransaction(ctx, log, req)
}

func (s *Service) performTransaction(ctx context.Context, log logger.Logger, req PaymeRequest) PaymeResponse {
	txID := strings.TrimSpace(req.Params.ID)
	if txID == "" {
		return paymeFailure(req.ID, PaymeCodeInvalidRequest, paymeMessageMissingTxID, "")
	}

	var orderID string
	if req.Params.Account != nil {
		orderID = strings.TrimSpace(req.Params.Account.OrderID)
	}
	if orderID == "" {
		return paymeFailure(req.ID, PaymeCodeInvalidAccount, paymeMessageOrderNotFound, paymeDataOrderIDField)
	}

	log = log.With(
		logger.NewField("transaction_id", txID),
		logger.NewField("order_id", orderID),
	)

	result, err := s.markPaid(ctx, orderID)
	switch {
	case err != nil:
		log.Error("payme payment not applied", logger.NewField("error", err))
		return paymeFailure(req.ID, PaymeCodeSystemError, paymeMessageSystemError, "")
	case !result.Found:
		return paymeFailure(req.ID, PaymeCodeInvalidAccount, paymeMessageOrderNotFound, paymeDataOrderIDField)
	case !result.Applied && result.CurrentStatus != entities.OrderPending:
		log.Warn("payme payment rejected: order is not awaiting payment",
			logger.NewField("current", result.CurrentStatus.String()),
		)
		return paymeFailure(req.ID, PaymeCodeCannotPerform, paymeMessageCannotPerform, "")
	}

	if result.Applied {
		log.Info("payme payment applied")
	}

	// perform_time берется из updated_at: его выставил переход в pending,
	// поэтому повтор вызова получает то же время, что и первый.
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		log.Error("payme perform time unavailable", logger.NewField("error", err))
		return paymeFailure(req.ID, PaymeCodeSystemError, paymeMessageSystemError, "")
	}

	if result.Applied {
		s.sendPaidNotice(ctx, log, order)
	}

	return recordPayme(PaymeResponse{
		ID: req.ID,
		Result: PaymePerformResult{
			Transaction: txID,
			PerformTime: order.UpdatedAt.UnixMilli(),
			State:       PaymeStatePerformed,
		},
	}, 0)
}

func (s *Service) authorizedPayme(creds PaymeCredentials) bool {
	if !creds.Present || s.payme.MerchantKey == "" {
		return false
	}
	loginOK := subtle.ConstantTimeCompare([]byte(creds.Login), []byte(s.payme.Login))
	keyOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(s.payme.MerchantKey))
	return loginOK&keyOK == 1
}

func paymeFailure(id json.RawMessage, code int, message, data string) PaymeResponse {
	return recordPayme(PaymeResponse{
		ID:    id,
		Error: &PaymeError{Code: code, Message: message, Data: data},
	}, code)
}

func recordPayme(resp PaymeResponse, code int) PaymeResponse {
	paymentCallbacksTotal.WithLabelValues(providerPayme, strconv.Itoa(code)).Inc()
	return resp
}
