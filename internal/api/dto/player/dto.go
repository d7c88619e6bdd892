package player

import "time"

type RegisterRequest struct {
	Name string `json:"name" validate:"required,max=32"` // Имя гостя
}

type RegisterResponse struct {
	PlayerID    string `json:"player_id"`
	AccessToken string `json:"access_token"`
}

type Boost struct {
	ItemID     string     `json:"item_id"`
	Multiplier int        `json:"multiplier"`
	MinReward  int        `json:"min_reward,omitempty"` // Гарантированный минимум награды
	SpinsLeft  int        `json:"spins_left,omitempty"` // 0 - без ограничения по вращениям
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type DailyBonus struct {
	Day     int  `json:"day"` // 1-7
	Reward  int  `json:"reward"`
	Claimed bool `json:"claimed"`
	Current bool `json:"current"`
}

type ProfileResponse struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Coins             int          `json:"coins"`
	Level             int          `json:"level"`
	Experience        int          `json:"experience"`
	MaxExperience     int          `json:"max_experience"`
	ExperiencePercent float64      `json:"experience_percent"`
	DailyStreak       int          `json:"daily_streak"`
	TotalSpins        int          `json:"total_spins"`
	LastLogin         time.Time    `json:"last_login"`
	Boosts            []Boost      `json:"boosts"`
	DailyBonuses      []DailyBonus `json:"daily_bonuses"`
}

type BonusClaimResponse struct {
	Day     int `json:"day"`
	Reward  int `json:"reward"`
	Streak  int `json:"streak"`  // Дней подряд
	Balance int `json:"balance"` // Баланс после
}
