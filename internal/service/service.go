package service

import (
	"context"
	"errors"

	"fortune_wheel/internal/model"
)

var (
	ErrUnauthorized      = errors.New("player id not found in context")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidName       = errors.New("invalid player name")
	ErrInvalidAmount     = errors.New("reward amount must not be negative")
	ErrSpinInProgress    = errors.New("spin in progress")
	ErrNoSpin            = errors.New("no spins yet")
	ErrNoPendingSpin     = errors.New("no pending spin")
	ErrBonusClaimed      = errors.New("daily bonus already claimed today")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrItemNotFound      = errors.New("item not found")
	ErrItemUnavailable   = errors.New("item is not available")
	ErrItemOwned         = errors.New("item already purchased")
	ErrInsufficientCoins = errors.New("not enough coins")
)

type WheelService interface {
	Config() model.WheelInfo
	Spin(ctx context.Context) (*model.Spin, error)
	Result(ctx context.Context) (*model.Spin, error)
	Cancel(ctx context.Context) error
	Stats() model.WheelStats
	Close()
}

// PlayerService единственный владелец состояния игрока:
// монеты, опыт и бонусы меняются только через его команды
type PlayerService interface {
	Register(ctx context.Context, name string) (*model.AuthData, error)
	Authenticate(accessToken string) (playerID string, err error)
	Profile(ctx context.Context) (*model.Profile, error)
	ClaimDailyBonus(ctx context.Context) (*model.BonusClaim, error)
	ApplySpinReward(ctx context.Context, playerID string, amount int) (credited int, err error)
	PurchaseItem(ctx context.Context, playerID string, item model.ShopItem) (*model.PurchaseResult, error)
}

type ShopService interface {
	Items(category model.Category) ([]model.ShopItem, error)
	Purchase(ctx context.Context, itemID string) (*model.PurchaseResult, error)
	Purchases(ctx context.Context) ([]model.Purchase, error)
}
