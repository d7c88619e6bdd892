package purchase_repo

import (
	"context"
	"errors"

	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "purchases"
	colID          = "id"
	colPlayerID    = "player_id"
	colItemID      = "item_id"
	colPrice       = "price"
	colPurchasedAt = "purchased_at"

	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPurchaseRepository(dbc *pgxpool.Pool) repository.PurchaseRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreatePurchase - сохраняет покупку. Повторная покупка того же предмета - ErrAlreadyExists
func (r *repo) CreatePurchase(ctx context.Context, purchase *model.Purchase) error {
	query := psql.Insert(table).
		Columns(colID, colPlayerID, colItemID, colPrice, colPurchasedAt).
		Values(purchase.ID, purchase.PlayerID, purchase.ItemID, purchase.Price, purchase.PurchasedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrAlreadyExists
		}
		return err
	}

	return nil
}

// ListPurchases - история покупок игрока, новые первыми
func (r *repo) ListPurchases(ctx context.Context, playerID string) ([]model.Purchase, error) {
	query := psql.Select(colID, colPlayerID, colItemID, colPrice, colPurchasedAt).
		From(table).
		Where(sq.Eq{colPlayerID: playerID}).
		OrderBy(colPurchasedAt + " DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Purchase{}
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.ItemID, &p.Price, &p.PurchasedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	return list, rows.Err()
}

// HasPurchase - покупал ли игрок предмет
func (r *repo) HasPurchase(ctx context.Context, playerID, itemID string) (bool, error) {
	query := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(sq.Eq{colPlayerID: playerID, colItemID: itemID}).
		Suffix(")")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}
