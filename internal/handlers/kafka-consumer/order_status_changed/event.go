package order_status_changed

import (
	"errors"
	"strings"
)

var errIncompleteEvent = errors.New("order_id, telegram_user_id and status are required")

// statusChangedEvent повторяет тело POST /api/order-update.
type statusChangedEvent struct {
	OrderID        string  `json:"order_id"`
	TelegramUserID int64   `json:"telegram_user_id"`
	Status         string  `json:"status"`
	ProductName    *string `json:"product_name"`
	OrderType      *string `json:"order_type"`
	Timestamp      string  `json:"timestamp"`
}

func (e statusChangedEvent) validate() error {
	if strings.TrimSpace(e.OrderID) == "" || e.TelegramUserID == 0 || strings.TrimSpace(e.Status) == "" {
		return errIncompleteEvent
	}
	return nil
}
