package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID             string
	Status         OrderStatusType
	TelegramUserID int64
	ProductName    *string
	OrderType      *OrderType
	TotalPrice     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type OrderStatusType string

const (
	OrderPendingPayment OrderStatusType = "pending_payment"
	OrderPending        OrderStatusType = "pending"
	OrderConfirmed      OrderStatusType = "confirmed"
	OrderReady          OrderStatusType = "ready"
	OrderDelivering     OrderStatusType = "delivering"
	OrderDelivered      OrderStatusType = "delivered"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderPendingPayment, OrderPending, OrderConfirmed,
		OrderReady, OrderDelivering, OrderDelivered:
		return true
	}
	return false
}

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypePreorder OrderType = "preorder"
)

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDelivery, OrderTypeTakeaway, OrderTypePreorder:
		return true
	}
	return false
}

// TransitionResult описывает исход условной смены статуса заказа.
// CurrentStatus - статус заказа после операции, пустой если заказ не найден.
type TransitionResult struct {
	Applied       bool
	Found         bool
	CurrentStatus OrderStatusType
}
