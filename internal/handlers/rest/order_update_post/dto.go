package order_update_post

import (
	"errors"
	"strings"
	"time"

	"relay/internal/entities"
)

// localTimestampLayout - ISO8601 без смещения, такое время считается UTC.
const localTimestampLayout = "2006-01-02T15:04:05.999999999"

var (
	errMissingOrderID    = errors.New("order_id is required")
	errMissingTelegramID = errors.New("telegram_user_id is required")
	errMissingStatus     = errors.New("status is required")
	errInvalidTimestamp  = errors.New("timestamp must be an ISO8601 date-time")
	errInvalidOrderType  = errors.New("order_type must be one of: delivery, takeaway, preorder")
)

type request struct {
	OrderID        *string `json:"order_id"`
	TelegramUserID *int64  `json:"telegram_user_id"`
	Status         *string `json:"status"`
	Timestamp      *string `json:"timestamp"`
	ProductName    *string `json:"product_name"`
	OrderType      *string `json:"order_type"`
}

func (r request) validate() error {
	if r.OrderID == nil || strings.TrimSpace(*r.OrderID) == "" {
		return errMissingOrderID
	}
	if r.TelegramUserID == nil {
		return errMissingTelegramID
	}
	if r.Status == nil || strings.TrimSpace(*r.Status) == "" {
		return errMissingStatus
	}
	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, err := parseTimestamp(*r.Timestamp); err != nil {
			return errInvalidTimestamp
		}
	}
	if r.OrderType != nil && !entities.OrderType(*r.OrderType).IsValid() {
		return errInvalidOrderType
	}
	return nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.UTC(), nil
	}
	return time.ParseInLocation(localTimestampLayout, raw, time.UTC)
}

type response struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	OrderID        string `json:"order_id"`
	TelegramUserID int64  `json:"telegram_user_id"`
}
