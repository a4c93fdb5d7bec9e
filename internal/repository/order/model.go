package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderDB struct {
	ID             string
	Status         string
	TelegramUserID int64
	ProductName    *string
	OrderType      *string
	TotalPrice     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
