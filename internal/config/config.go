package config

import (
	"time"

	"fortune_wheel/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type AppConfig interface {
	Env() string
	Storage() string
	GameConfigPath() string
	// FairServerSeed сид генератора вращений, пустой - сгенерировать при старте
	FairServerSeed() string
}

type WheelConfig interface {
	Segments() []model.Segment
	// SpinDuration длительность анимации вращения, она же задержка раскрытия результата
	SpinDuration() time.Duration
}

type ProfileConfig interface {
	StartingCoins() int
	ExperiencePerSpin() int
	ExperiencePerLevel() int
	CreditSpinRewards() bool
	DailyRewards() []int
}

type ShopConfig interface {
	Items() []model.ShopItem
}

type HTTPConfig interface {
	Address() string
	Timeout() time.Duration
	IdleTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}
