package converter

import (
	"time"

	"fortune_wheel/internal/api/dto/shop"
	"fortune_wheel/internal/model"
)

func ToItemsResponse(items []model.ShopItem) []shop.Item {
	res := make([]shop.Item, len(items))
	for i, item := range items {
		res[i] = shop.Item{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    string(item.Category),
			Icon:        item.Icon,
			Available:   item.Available,
			Limited:     item.Limited,
		}
		if item.Effect != nil {
			res[i].Effect = &shop.ItemEffect{
				Multiplier:      item.Effect.Multiplier,
				MinReward:       item.Effect.MinReward,
				Spins:           item.Effect.Spins,
				DurationSeconds: int64(item.Effect.Duration / time.Second),
			}
		}
	}
	return res
}

func ToPurchaseResponse(res model.PurchaseResult) shop.PurchaseResponse {
	out := shop.PurchaseResponse{
		Purchase: toPurchase(res.Purchase),
		Balance:  res.Balance,
	}
	if res.Boost != nil {
		out.Boost = &shop.Boost{
			ItemID:     res.Boost.ItemID,
			Multiplier: res.Boost.Multiplier,
			MinReward:  res.Boost.MinReward,
			SpinsLeft:  res.Boost.SpinsLeft,
			ExpiresAt:  timePtr(res.Boost.ExpiresAt),
		}
	}
	return out
}

func ToPurchasesResponse(list []model.Purchase) []shop.Purchase {
	res := make([]shop.Purchase, len(list))
	for i, p := range list {
		res[i] = toPurchase(p)
	}
	return res
}

func toPurchase(p model.Purchase) shop.Purchase {
	return shop.Purchase{
		ID:          p.ID,
		ItemID:      p.ItemID,
		Price:       p.Price,
		PurchasedAt: p.PurchasedAt,
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
