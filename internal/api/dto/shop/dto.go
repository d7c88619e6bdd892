package shop

import "time"

type ItemEffect struct {
	Multiplier      int   `json:"multiplier"`
	MinReward       int   `json:"min_reward,omitempty"`
	Spins           int   `json:"spins,omitempty"`
	DurationSeconds int64 `json:"duration_seconds,omitempty"`
}

type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       int         `json:"price"`
	Category    string      `json:"category"`
	Icon        string      `json:"icon"`
	Available   bool        `json:"available"`
	Limited     bool        `json:"limited"`
	Effect      *ItemEffect `json:"effect,omitempty"`
}

type PurchaseRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type Purchase struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	Price       int       `json:"price"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type Boost struct {
	ItemID     string     `json:"item_id"`
	Multiplier int        `json:"multiplier"`
	MinReward  int        `json:"min_reward,omitempty"`
	SpinsLeft  int        `json:"spins_left,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type PurchaseResponse struct {
	Purchase Purchase `json:"purchase"`
	Balance  int      `json:"balance"` // Баланс после покупки
	Boost    *Boost   `json:"boost,omitempty"`
}
