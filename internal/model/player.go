package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Player struct {
	ID             string
	Name           string
	Coins          int
	Level          int
	Experience     int
	MaxExperience  int
	DailyStreak    int
	TotalSpins     int
	LastLogin      time.Time
	LastBonusClaim time.Time // Нулевое значение - бонус ни разу не забирали
	Boosts         []Boost
	CreatedAt      time.Time
}

// Boost активный эффект предмета из магазина: множитель и гарантированный минимум награды.
// SpinsLeft == 0 - ограничения по вращениям нет, ExpiresAt.IsZero() - по времени нет
type Boost struct {
	ItemID     string    `json:"item_id"`
	Multiplier int       `json:"multiplier"`
	MinReward  int       `json:"min_reward,omitempty"`
	SpinsLeft  int       `json:"spins_left"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type DailyBonus struct {
	Day     int
	Reward  int
	Claimed bool
	Current bool
}

type Profile struct {
	Player            Player
	ExperiencePercent float64
	DailyBonuses      []DailyBonus
}

type BonusClaim struct {
	Day     int
	Reward  int
	Streak  int
	Balance int
}

type AuthData struct {
	PlayerID    string
	AccessToken string
}

type PlayerClaims struct {
	jwt.RegisteredClaims
}
