package env

import (
	"fmt"
	"net"
	"time"

	"fortune_wheel/internal/config"

	"github.com/caarlos0/env/v11"
)

type httpConfig struct {
	Host        string        `env:"HTTP_HOST" envDefault:"localhost"`
	Port        string        `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"5s"`
	Idle        time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	var cfg httpConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse http env: %w", err)
	}
	return &cfg, nil
}

func (c *httpConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *httpConfig) Timeout() time.Duration {
	return c.ReadTimeout
}

func (c *httpConfig) IdleTimeout() time.Duration {
	return c.Idle
}
