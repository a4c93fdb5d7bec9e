package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"relay/internal/entities"
	service "relay/internal/service/order"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// CompareAndSetStatus - единственная запись статуса заказа. Строка меняется только если
// ее текущий статус равен expected; false означает, что заказа нет или статус другой.
func (r *Repository) CompareAndSetStatus(
	ctx context.Context,
	orderID string,
	expected, next entities.OrderStatusType,
) (bool, error) {
	query, args, err := qb.
		Update("orders").
		Set("status", next.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID, "status": expected.String()}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build order status update: %w", err)
	}

	var id string
	err = r.querier.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("unexpected order repository update status error: %w", err)
	}

	return true, nil
}

func (r *Repository) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	query, args, err := qb.
		Select("id", "status", "telegram_user_id", "product_name", "order_type", "total_price", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order select: %w", err)
	}

	var orderDB OrderDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&orderDB.ID,
		&orderDB.Status,
		&orderDB.TelegramUserID,
		&orderDB.ProductName,
		&orderDB.OrderType,
		&orderDB.TotalPrice,
		&orderDB.CreatedAt,
		&orderDB.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	return ToDomain(&orderDB), nil
}
