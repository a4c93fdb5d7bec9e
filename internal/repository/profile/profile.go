package profile

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"relay/internal/entities"
	"relay/internal/repository"
	service "relay/internal/service/registration"
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

func (r *Repository) Create(ctx context.Context, p entities.Profile) (*entities.Profile, error) {
	query, args, err := qb.
		Insert("profiles").
		Columns("telegram_id", "full_name", "phone", "username").
		Values(p.TelegramID, p.FullName, p.Phone, p.Username).
		Suffix("RETURNING telegram_id, full_name, phone, username, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build profile insert: %w", err)
	}

	var profileDB ProfileDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&profileDB.TelegramID,
		&profileDB.FullName,
		&profileDB.Phone,
		&profileDB.Username,
		&profileDB.CreatedAt,
	)
	if err != nil {
		// в serializable транзакции параллельная вставка того же telegram_id
		// приходит как serialization failure, а не unique violation
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) ||
			repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, service.ErrProfileExists
		}
		return nil, fmt.Errorf("unexpected profile repository create error: %w", err)
	}

	return ToDomain(&profileDB), nil
}

func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*entities.Profile, error) {
	query, args, err := qb.
		Select("telegram_id", "full_name", "phone", "username", "created_at").
		From("profiles").
		Where(sq.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build profile select: %w", err)
	}

	var profileDB ProfileDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&profileDB.TelegramID,
		&profileDB.FullName,
		&profileDB.Phone,
		&profileDB.Username,
		&profileDB.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrProfileNotFound
		}
		return nil, fmt.Errorf("unexpected profile repository get error: %w", err)
	}

	return ToDomain(&profileDB), nil
}
