package repository

import (
	"context"
	"errors"

	"fortune_wheel/internal/model"
)

var (
	ErrNotFound      = errors.New("repository: not found")
	ErrAlreadyExists = errors.New("repository: already exists")
)

type PlayerRepository interface {
	CreatePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	UpdatePlayer(ctx context.Context, player *model.Player) error
}

type SpinRepository interface {
	// GetLastSpin возвращает nil без ошибки, если игрок еще не крутил колесо
	GetLastSpin(ctx context.Context, playerID string) (*model.Spin, error)
	CreateSpin(ctx context.Context, spin *model.Spin) error
	UpdateSpin(ctx context.Context, spin *model.Spin) error
}

type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase *model.Purchase) error
	// ListPurchases история покупок игрока, новые первыми
	ListPurchases(ctx context.Context, playerID string) ([]model.Purchase, error)
	HasPurchase(ctx context.Context, playerID, itemID string) (bool, error)
}

type WheelStatsRepository interface {
	UpdateStats(segmentID string, credited int)
	Stats() model.WheelStats
}
