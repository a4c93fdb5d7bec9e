//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_payme_post_test
package payment_payme_post

import (
	"context"

	"relay/internal/service/payment"
	"relay/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	HandlePayme(ctx context.Context, creds payment.PaymeCredentials, req payment.PaymeRequest) payment.PaymeResponse
}
