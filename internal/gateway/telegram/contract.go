//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=telegram_test
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}
