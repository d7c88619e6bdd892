package spin_repo

import (
	"context"
	"encoding/json"
	"errors"

	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "spins"
	colID            = "id"
	colPlayerID      = "player_id"
	colNonce         = "nonce"
	colTotalRotation = "total_rotation"
	colSegment       = "segment"
	colCredited      = "credited"
	colStatus        = "status"
	colCreatedAt     = "created_at"
	colRevealAt      = "reveal_at"

	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// segmentJSON сегмент хранится целиком, чтобы история не зависела от правок конфига
type segmentJSON struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Prize  string `json:"prize"`
	Color  string `json:"color"`
	Reward int    `json:"reward"`
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSpinRepository(dbc *pgxpool.Pool) repository.SpinRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetLastSpin - последнее вращение игрока (с максимальным nonce).
// Возвращает nil, если игрок еще не крутил колесо
func (r *repo) GetLastSpin(ctx context.Context, playerID string) (*model.Spin, error) {
	query := psql.Select(colID, colPlayerID, colNonce, colTotalRotation, colSegment,
		colCredited, colStatus, colCreatedAt, colRevealAt).
		From(table).
		Where(sq.Eq{colPlayerID: playerID}).
		OrderBy(colNonce + " DESC").
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		spin    model.Spin
		nonce   int64
		segJSON []byte
		status  string
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&spin.ID, &spin.PlayerID, &nonce, &spin.TotalRotation, &segJSON,
		&spin.Credited, &status, &spin.CreatedAt, &spin.RevealAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	spin.Nonce = uint64(nonce)

	var seg segmentJSON
	if err := json.Unmarshal(segJSON, &seg); err != nil {
		return nil, err
	}
	spin.Segment = model.Segment{
		ID:           seg.ID,
		Label:        seg.Label,
		Prize:        seg.Prize,
		Color:        seg.Color,
		RewardAmount: seg.Reward,
	}
	spin.Status = model.SpinStatus(status)

	return &spin, nil
}

// CreateSpin - сохраняет новое вращение. Повтор nonce для игрока - ErrAlreadyExists
func (r *repo) CreateSpin(ctx context.Context, spin *model.Spin) error {
	segJSON, err := json.Marshal(segmentJSON{
		ID:     spin.Segment.ID,
		Label:  spin.Segment.Label,
		Prize:  spin.Segment.Prize,
		Color:  spin.Segment.Color,
		Reward: spin.Segment.RewardAmount,
	})
	if err != nil {
		return err
	}

	query := psql.Insert(table).
		Columns(colID, colPlayerID, colNonce, colTotalRotation, colSegment,
			colCredited, colStatus, colCreatedAt, colRevealAt).
		Values(spin.ID, spin.PlayerID, int64(spin.Nonce), spin.TotalRotation, segJSON,
			spin.Credited, string(spin.Status), spin.CreatedAt, spin.RevealAt)

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

// UpdateSpin - обновляет статус и начисленную сумму
func (r *repo) UpdateSpin(ctx context.Context, spin *model.Spin) error {
	query := psql.Update(table).
		Set(colStatus, string(spin.Status)).
		Set(colCredited, spin.Credited).
		Where(sq.Eq{colID: spin.ID, colPlayerID: spin.PlayerID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
