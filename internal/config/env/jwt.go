package env

import (
	"fmt"
	"time"

	"fortune_wheel/internal/config"

	"github.com/caarlos0/env/v11"
)

type jwtConfig struct {
	SecretKey string        `env:"ACCESS_TOKEN,required"`
	Duration  time.Duration `env:"ACCESS_TOKEN_DURATION" envDefault:"720h"`
}

func NewJWTConfig() (config.JWTConfig, error) {
	var cfg jwtConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("access token config: %w", err)
	}

	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("invalid access token duration: %s", cfg.Duration)
	}

	return &cfg, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.SecretKey)
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.Duration
}
