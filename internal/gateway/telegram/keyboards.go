package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"relay/internal/entities"
)

const (
	contactButtonText       = "📱 Telefon raqamni yuborish"
	mainMenuPlaceholder     = "Buyurtma berish uchun tugmani bosing"
	contactInputPlaceholder = "Raqamingizni yuborish uchun pastdagi tugmani bosing"
	browserOrderButtonText  = "🍔 Buyurtma berish (Browserda)"
)

func replyMarkup(reply entities.ChatReply) any {
	switch reply.Keyboard {
	case entities.KeyboardRequestContact:
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(contactButtonText)),
		)
		kb.ResizeKeyboard = true
		kb.OneTimeKeyboard = true
		kb.InputFieldPlaceholder = contactInputPlaceholder
		return kb
	case entities.KeyboardMainMenu:
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(entities.OrderButtonText)),
		)
		kb.ResizeKeyboard = true
		kb.InputFieldPlaceholder = mainMenuPlaceholder
		return kb
	case entities.KeyboardRemove:
		return tgbotapi.NewRemoveKeyboard(true)
	case entities.KeyboardOrderLink:
		text := reply.LinkText
		if text == "" {
			text = browserOrderButtonText
		}
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(text, reply.LinkURL)),
		)
	default:
		return nil
	}
}
