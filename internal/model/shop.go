package model

import "time"

type Category string

const (
	CategoryAll      Category = "all"
	CategoryPowerUp  Category = "powerup"
	CategoryCosmetic Category = "cosmetic"
	CategoryPremium  Category = "premium"
)

type ItemEffect struct {
	Multiplier int
	MinReward  int // Награда вращения не ниже этой суммы
	Spins      int
	Duration   time.Duration
}

type ShopItem struct {
	ID          string
	Name        string
	Description string
	Price       int
	Category    Category
	Icon        string
	Available   bool
	Limited     bool
	Effect      *ItemEffect
}

type Purchase struct {
	ID          string
	PlayerID    string
	ItemID      string
	Price       int
	PurchasedAt time.Time
}

type PurchaseResult struct {
	Purchase Purchase
	Balance  int
	Boost    *Boost
}
