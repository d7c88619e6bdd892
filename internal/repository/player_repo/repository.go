package player_repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table             = "players"
	colID             = "id"
	colName           = "name"
	colCoins          = "coins"
	colLevel          = "level"
	colExperience     = "experience"
	colMaxExperience  = "max_experience"
	colDailyStreak    = "daily_streak"
	colTotalSpins     = "total_spins"
	colLastLogin      = "last_login"
	colLastBonusClaim = "last_bonus_claim"
	colBoosts         = "boosts"
	colCreatedAt      = "created_at"

	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPlayerRepository(dbc *pgxpool.Pool) repository.PlayerRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreatePlayer - создает игрока в БД
func (r *repo) CreatePlayer(ctx context.Context, player *model.Player) error {
	boosts, err := json.Marshal(nonNilBoosts(player.Boosts))
	if err != nil {
		return err
	}

	query := psql.Insert(table).
		Columns(colID, colName, colCoins, colLevel, colExperience, colMaxExperience,
			colDailyStreak, colTotalSpins, colLastLogin, colLastBonusClaim, colBoosts, colCreatedAt).
		Values(player.ID, player.Name, player.Coins, player.Level, player.Experience, player.MaxExperience,
			player.DailyStreak, player.TotalSpins, player.LastLogin, nullTime(player.LastBonusClaim), boosts, player.CreatedAt)

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

// GetPlayer - возвращает игрока по ID
func (r *repo) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	query := psql.Select(colID, colName, colCoins, colLevel, colExperience, colMaxExperience,
		colDailyStreak, colTotalSpins, colLastLogin, colLastBonusClaim, colBoosts, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id})

	// Внутри транзакции блокируем строку до конца транзакции
	if _, ok := r.getter.DefaultTrOrDB(ctx, r.dbc).(pgx.Tx); ok {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		player     model.Player
		lastBonus  *time.Time
		boostsJSON []byte
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&player.ID, &player.Name, &player.Coins, &player.Level, &player.Experience, &player.MaxExperience,
		&player.DailyStreak, &player.TotalSpins, &player.LastLogin, &lastBonus, &boostsJSON, &player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if lastBonus != nil {
		player.LastBonusClaim = *lastBonus
	}
	if len(boostsJSON) > 0 {
		if err := json.Unmarshal(boostsJSON, &player.Boosts); err != nil {
			return nil, err
		}
	}

	return &player, nil
}

// UpdatePlayer - сохраняет изменяемые поля игрока
func (r *repo) UpdatePlayer(ctx context.Context, player *model.Player) error {
	boosts, err := json.Marshal(nonNilBoosts(player.Boosts))
	if err != nil {
		return err
	}

	query := psql.Update(table).
		Set(colName, player.Name).
		Set(colCoins, player.Coins).
		Set(colLevel, player.Level).
		Set(colExperience, player.Experience).
		Set(colMaxExperience, player.MaxExperience).
		Set(colDailyStreak, player.DailyStreak).
		Set(colTotalSpins, player.TotalSpins).
		Set(colLastLogin, player.LastLogin).
		Set(colLastBonusClaim, nullTime(player.LastBonusClaim)).
		Set(colBoosts, boosts).
		Where(sq.Eq{colID: player.ID})

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

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNilBoosts(b []model.Boost) []model.Boost {
	if b == nil {
		return []model.Boost{}
	}
	return b
}
