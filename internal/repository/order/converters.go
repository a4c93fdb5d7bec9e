package order

import "relay/internal/entities"

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	order := &entities.Order{
		ID:             o.ID,
		Status:         entities.OrderStatusType(o.Status),
		TelegramUserID: o.TelegramUserID,
		ProductName:    o.ProductName,
		TotalPrice:     o.TotalPrice,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.OrderType != nil {
		orderType := entities.OrderType(*o.OrderType)
		order.OrderType = &orderType
	}
	return order
}
