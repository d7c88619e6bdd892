package shop

import (
	"context"
	"fmt"

	"fortune_wheel/internal/config"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
)

type serv struct {
	cfg          config.ShopConfig
	players      service.PlayerService
	purchaseRepo repository.PurchaseRepository
}

// NewShopService магазин призов. Состояние игрока при покупке меняет PlayerService
func NewShopService(
	cfg config.ShopConfig,
	players service.PlayerService,
	purchaseRepo repository.PurchaseRepository,
) service.ShopService {
	return &serv{
		cfg:          cfg,
		players:      players,
		purchaseRepo: purchaseRepo,
	}
}

// Items каталог, отфильтрованный по категории. Пустая категория значит все
func (s *serv) Items(category model.Category) ([]model.ShopItem, error) {
	switch category {
	case "", model.CategoryAll:
		return append([]model.ShopItem(nil), s.cfg.Items()...), nil
	case model.CategoryPowerUp, model.CategoryCosmetic, model.CategoryPremium:
	default:
		return nil, service.ErrUnknownCategory
	}

	res := make([]model.ShopItem, 0)
	for _, item := range s.cfg.Items() {
		if item.Category == category {
			res = append(res, item)
		}
	}
	return res, nil
}

func (s *serv) Purchase(ctx context.Context, itemID string) (*model.PurchaseResult, error) {
	const op = "shop.Purchase"

	playerID, ok := middleware.PlayerIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	item, ok := s.item(itemID)
	if !ok {
		return nil, service.ErrItemNotFound
	}
	if !item.Available {
		return nil, service.ErrItemUnavailable
	}

	res, err := s.players.PurchaseItem(ctx, playerID, item)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Purchases история покупок, новые первыми
func (s *serv) Purchases(ctx context.Context) ([]model.Purchase, error) {
	const op = "shop.Purchases"

	playerID, ok := middleware.PlayerIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	list, err := s.purchaseRepo.ListPurchases(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *serv) item(id string) (model.ShopItem, bool) {
	for _, item := range s.cfg.Items() {
		if item.ID == id {
			return item, true
		}
	}
	return model.ShopItem{}, false
}
