package entities

type NotificationRequest struct {
	TelegramUserID int64
	OrderID        string
	Status         OrderStatusType
	ProductName    *string
}

type DeliveryReason string

const (
	ReasonOK             DeliveryReason = "ok"
	ReasonUserBlocked    DeliveryReason = "user_blocked"
	ReasonBadRequest     DeliveryReason = "bad_request"
	ReasonTransportError DeliveryReason = "transport_error"
	ReasonInvalidStatus  DeliveryReason = "invalid_status"
)

func (r DeliveryReason) String() string {
	return string(r)
}

type DeliveryOutcome struct {
	Success bool
	Reason  DeliveryReason
	Message string
}
