//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_click_post_test
package payment_click_post

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
	HandleClick(ctx context.Context, req payment.ClickRequest) payment.ClickResponse
}
