package env

import (
	"fmt"

	"fortune_wheel/internal/config"

	"github.com/caarlos0/env/v11"
)

type appConfig struct {
	EnvName    string `env:"ENV" envDefault:"local"`
	StorageKey string `env:"STORAGE" envDefault:"memory"`
	GamePath   string `env:"GAME_CONFIG" envDefault:"config.yaml"`
	ServerSeed string `env:"FAIR_SERVER_SEED"`
}

func NewAppConfig() (config.AppConfig, error) {
	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse app env: %w", err)
	}

	switch cfg.EnvName {
	case config.EnvLocal, config.EnvDev, config.EnvProd:
	default:
		return nil, fmt.Errorf("unknown env %q", cfg.EnvName)
	}

	switch cfg.StorageKey {
	case config.StorageMemory, config.StoragePostgres:
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.StorageKey)
	}

	return &cfg, nil
}

func (c *appConfig) Env() string {
	return c.EnvName
}

func (c *appConfig) Storage() string {
	return c.StorageKey
}

func (c *appConfig) GameConfigPath() string {
	return c.GamePath
}

func (c *appConfig) FairServerSeed() string {
	return c.ServerSeed
}
